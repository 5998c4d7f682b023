package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/homolo/homolo-mcp/pkg/service/builder"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	aliasesPath = ""
	financial = builder.FinancialRequest{
		SheetName:  layer.DefaultFinancialSheet,
		ParentName: layer.DefaultFinancialParentName,
		Pad:        layer.DefaultPad,
	}
	personal = builder.PersonalRequest{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := Execute(context.Background(), args)
	return out.String(), err
}

func TestFinancialCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fin.csv")
	require.NoError(t, os.WriteFile(input, []byte("codigo,descripcion,valor\n1,Ventas,100\n"), 0o600))
	output := filepath.Join(dir, "capa10")

	out, err := run(t, "financial", "-i", input, "-o", output, "--parent", "10", "--pad", "3")
	require.NoError(t, err)
	assert.Equal(t, output+".xlsx", strings.TrimSpace(out))
	assert.FileExists(t, output+".xlsx")
}

func TestPersonalCommand(t *testing.T) {
	dir := t.TempDir()
	roles := filepath.Join(dir, "roles.csv")
	employees := filepath.Join(dir, "empleados.csv")
	require.NoError(t, os.WriteFile(roles, []byte("codigo,rol\n1,Gerente\n"), 0o600))
	require.NoError(t, os.WriteFile(employees, []byte("id,nombre,costo,rol\nE1,Ana,1000,Gerente\n"), 0o600))
	output := filepath.Join(dir, "capa20.xlsx")

	out, err := run(t, "personal", "--roles", roles, "--empleados", employees, "-o", output)
	require.NoError(t, err)
	assert.Equal(t, output, strings.TrimSpace(out))
	assert.FileExists(t, output)
}

func TestFinancialCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "financial", "-i", filepath.Join(dir, "missing.csv"), "-o", filepath.Join(dir, "x"), "--parent", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error building financial layer")

	aliases := filepath.Join(dir, "aliases.yaml")
	require.NoError(t, os.WriteFile(aliases, []byte("financial: [not, a, map]\n"), 0o600))
	_, err = run(t, "financial", "--aliases", aliases, "-i", "a.csv", "-o", "b", "--parent", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading aliases")
}
