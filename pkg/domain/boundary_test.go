// Package domain_test checks the import direction between layers.
package domain_test

import (
	"go/build"
	"strings"
	"testing"
)

func checkImports(t *testing.T, dirs []string, forbidden []string, withTests bool) {
	t.Helper()
	for _, dir := range dirs {
		t.Run(dir, func(t *testing.T) {
			pkg, err := build.ImportDir(dir, build.IgnoreVendor)
			if err != nil {
				t.Skipf("Skipping %s: %v", dir, err)
				return
			}

			imports := pkg.Imports
			if withTests {
				imports = append(imports, pkg.TestImports...)
			}
			for _, imp := range imports {
				for _, f := range forbidden {
					if strings.Contains(imp, f) {
						t.Errorf("package %s imports forbidden dependency: %s", dir, imp)
					}
				}
			}
		})
	}
}

// TestNoDomainInfrastructureDependencies ensures the domain layer stays free of I/O adapters.
func TestNoDomainInfrastructureDependencies(t *testing.T) {
	checkImports(t,
		[]string{"errors", "history", "layer"},
		[]string{"/infrastructure/", "/service/", "os/exec", "net/http", "go.etcd.io/bbolt", "github.com/xuri/excelize"},
		true,
	)
}

// TestLayerDependencyDirection ensures infrastructure never reaches up into the service layer.
func TestLayerDependencyDirection(t *testing.T) {
	checkImports(t,
		[]string{
			"../infrastructure/filesystem",
			"../infrastructure/observability",
			"../infrastructure/persistence/history",
			"../infrastructure/tabular",
		},
		[]string{"/service/", "/api", "github.com/mark3labs/mcp-go"},
		false,
	)
}
