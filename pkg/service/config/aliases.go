package config

import (
	"fmt"
	"os"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"gopkg.in/yaml.v3"
)

// AliasOverrides is the layout of the MCP_ALIASES_FILE document:
//
//	financial:
//	  cuenta: code
//	roles:
//	  puesto: role
//	employees:
//	  sueldo: cost
type AliasOverrides struct {
	Financial map[string]string `yaml:"financial"`
	Roles     map[string]string `yaml:"roles"`
	Employees map[string]string `yaml:"employees"`
}

// LoadAliases returns the default alias tables extended with the overrides
// in path. An empty path yields the defaults.
func LoadAliases(path string) (layer.AliasSet, error) {
	defaults := layer.DefaultAliases()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return layer.AliasSet{}, errors.New(errors.CodeIoError, "config", fmt.Sprintf("failed to read aliases file %s", path), err)
	}

	var overrides AliasOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return layer.AliasSet{}, errors.New(errors.CodeConfigurationInvalid, "config", fmt.Sprintf("failed to parse aliases file %s", path), err)
	}
	return defaults.Extend(overrides.Financial, overrides.Roles, overrides.Employees), nil
}
