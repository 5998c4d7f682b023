package tabular

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/xuri/excelize/v2"
)

func readExcel(path, sheet string) (*layer.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeIoError, "tabular", fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.CodeValidationFailed, "tabular", fmt.Sprintf("workbook %s has no sheets", path), nil)
		}
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, errors.New(errors.CodeNotFound, "tabular",
			fmt.Sprintf("worksheet %q not found in %s (available: %s)", sheet, path, strings.Join(f.GetSheetList(), ", ")), nil)
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.New(errors.CodeIoError, "tabular", fmt.Sprintf("failed to read worksheet %q", sheet), err)
	}
	return newTable(raw), nil
}

// WriteLayer writes rows to a new workbook at path with a single sheet
// named sheetName. Numeric input costs are stored as numbers.
func WriteLayer(path, sheetName string, rows []layer.Row) error {
	if sheetName == "" {
		return errors.New(errors.CodeMissingParameter, "tabular", "sheet name is required", nil)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(errors.CodeIoError, "tabular", fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return errors.New(errors.CodeInvalidParameter, "tabular", fmt.Sprintf("invalid sheet name %q", sheetName), err)
	}

	header := make([]interface{}, len(layer.Columns))
	for i, c := range layer.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.New(errors.CodeIoError, "tabular", "failed to write header", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.New(errors.CodeInternalError, "tabular", "failed to address row", err)
		}
		values := []interface{}{row.Parent, row.Symbol, row.Name, cellValue(row.InputCost)}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return errors.New(errors.CodeIoError, "tabular", fmt.Sprintf("failed to write row %d", i+2), err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.New(errors.CodeIoError, "tabular", fmt.Sprintf("failed to save workbook %s", path), err)
	}
	return nil
}

// cellValue stores numbers as numbers and leaves blanks empty.
func cellValue(v string) interface{} {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return n
	}
	return v
}
