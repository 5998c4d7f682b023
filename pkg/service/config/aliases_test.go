package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAliases_EmptyPath(t *testing.T) {
	set, err := LoadAliases("")
	require.NoError(t, err)
	assert.Equal(t, layer.DefaultAliases(), set)
}

func TestLoadAliases_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	doc := "financial:\n  Cuenta: CODE\nroles:\n  puesto: role\nemployees:\n  sueldo: cost\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	set, err := LoadAliases(path)
	require.NoError(t, err)

	assert.Equal(t, "code", set.Financial["cuenta"])
	assert.Equal(t, "role", set.Roles["puesto"])
	assert.Equal(t, "cost", set.Employees["sueldo"])
	// built-ins survive
	assert.Equal(t, "value", set.Financial["importe"])
}

func TestLoadAliases_Errors(t *testing.T) {
	_, err := LoadAliases(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeIoError))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("financial: [unclosed"), 0o600))
	_, err = LoadAliases(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigurationInvalid))
}
