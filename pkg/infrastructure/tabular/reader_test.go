package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"in.csv":  FormatCSV,
		"in.TXT":  FormatCSV,
		"in.xlsx": FormatExcel,
		"in.xlsm": FormatExcel,
		"in.xls":  FormatLegacyExcel,
		"in.xlsb": FormatLegacyExcel,
		"in.json": FormatUnknown,
		"in":      FormatUnknown,
	}
	for name, want := range tests {
		assert.Equal(t, want, DetectFormat(name), name)
	}
}

func TestRead_CommaCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "in.csv", "code,description,value\n43,Detalle 1,100\n\n44,\"Detalle, 2\"\n")

	table, err := Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "description", "value"}, table.Header)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"43", "Detalle 1", "100"}, table.Records[0])
	assert.Equal(t, []string{"44", "Detalle, 2", ""}, table.Records[1], "short rows are padded")
}

func TestRead_SemicolonCSVWithBOM(t *testing.T) {
	path := writeFile(t, t.TempDir(), "in.txt", "\xEF\xBB\xBFcodigo;descripcion;importe\n43;Detalle 1;1,5\n")

	table, err := Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"codigo", "descripcion", "importe"}, table.Header)
	assert.Equal(t, [][]string{{"43", "Detalle 1", "1,5"}}, table.Records)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "in.json"), "")
	assert.True(t, errors.HasCode(err, errors.CodeUnsupportedFormat))

	_, err = Read(filepath.Join(dir, "missing.csv"), "")
	assert.True(t, errors.HasCode(err, errors.CodeFileNotFound))

	legacy := writeFile(t, dir, "old.xls", "binary")
	_, err = Read(legacy, "")
	assert.True(t, errors.HasCode(err, errors.CodeUnsupportedFormat))
}

func TestReadAny_TreatsUnknownAsCSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "roles.dat", "code,role\n1,Gerente\n")

	table, err := ReadAny(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "role"}, table.Header)
	assert.Len(t, table.Records, 1)
}

func TestRead_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", "")

	table, err := Read(path, "")
	require.NoError(t, err)
	assert.Empty(t, table.Header)
	assert.Empty(t, table.Records)
}
