package tabular

import (
	"path/filepath"
	"testing"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteLayer_ThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.xlsx")
	rows := []layer.Row{
		{Parent: "10.01", Symbol: "10.01", Name: "Datos que fluyen"},
		{Parent: "10.01", Symbol: "10.01.43", Name: "Detalle 1", InputCost: "100.5"},
		{Parent: "10.01", Symbol: "10.01.44", Name: "Detalle 2", InputCost: "n/a"},
	}

	require.NoError(t, WriteLayer(path, "Resultados", rows))

	table, err := Read(path, "Resultados")
	require.NoError(t, err)
	assert.Equal(t, layer.Columns, table.Header)
	require.Len(t, table.Records, 3)
	assert.Equal(t, []string{"10.01", "10.01", "Datos que fluyen", ""}, table.Records[0])
	assert.Equal(t, []string{"10.01", "10.01.43", "Detalle 1", "100.5"}, table.Records[1])
	assert.Equal(t, "n/a", table.Records[2][3])
}

func TestWriteLayer_NumericCostsAreNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteLayer(path, "20 Personal", []layer.Row{{Parent: "20", Symbol: "20.1", Name: "Ana", InputCost: "1500"}}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cellType, err := f.GetCellType("20 Personal", "D2")
	require.NoError(t, err)
	assert.NotContains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, cellType)
	assert.Equal(t, []string{"20 Personal"}, f.GetSheetList())
}

func TestRead_ExcelDefaultsToFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"code", "role"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "Gerente"}))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "role"}, table.Header)
	assert.Equal(t, [][]string{{"1", "Gerente"}}, table.Records)

	_, err = Read(path, "Missing")
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
}

func TestRead_ExcelKeepsStoredNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styled.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"codigo", "valor"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1043, 1234.5}))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "B2", style))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1043", "1234.5"}}, table.Records)
}

func TestWriteLayer_RequiresSheetName(t *testing.T) {
	err := WriteLayer(filepath.Join(t.TempDir(), "out.xlsx"), "", nil)
	assert.True(t, errors.HasCode(err, errors.CodeMissingParameter))
}
