// Package tabular reads input grids from CSV and Excel files and writes
// layer workbooks.
package tabular

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
)

// Format is an input file family.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatExcel       Format = "excel"
	FormatLegacyExcel Format = "legacy_excel"
	FormatUnknown     Format = "unknown"
)

// DetectFormat classifies path by extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatExcel
	case ".xls", ".xlsb":
		return FormatLegacyExcel
	case ".csv", ".txt":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// Read loads a table from a CSV or Excel file. sheet selects the worksheet
// of a workbook; empty means the first one. Unknown extensions are rejected.
func Read(path, sheet string) (*layer.Table, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, errors.New(errors.CodeUnsupportedFormat, "tabular",
			fmt.Sprintf("unsupported format: %s", filepath.Ext(path)), nil)
	}
	return read(path, sheet, format)
}

// ReadAny is like Read but treats every non-workbook file as CSV.
func ReadAny(path, sheet string) (*layer.Table, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		format = FormatCSV
	}
	return read(path, sheet, format)
}

func read(path, sheet string, format Format) (*layer.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeFileNotFound, "tabular", fmt.Sprintf("file not found: %s", path), err)
		}
		return nil, errors.New(errors.CodeIoError, "tabular", fmt.Sprintf("cannot access %s", path), err)
	}

	switch format {
	case FormatExcel:
		return readExcel(path, sheet)
	case FormatLegacyExcel:
		return nil, errors.New(errors.CodeUnsupportedFormat, "tabular",
			fmt.Sprintf("legacy workbook format %s is not supported, save the file as .xlsx", filepath.Ext(path)), nil)
	default:
		return readCSV(path)
	}
}

// newTable builds a Table from raw rows: the first non-blank row is the
// header, blank rows are dropped and records are padded to header width.
func newTable(raw [][]string) *layer.Table {
	t := &layer.Table{}
	for _, row := range raw {
		if isBlank(row) {
			continue
		}
		if t.Header == nil {
			t.Header = row
			continue
		}
		if len(row) < len(t.Header) {
			padded := make([]string, len(t.Header))
			copy(padded, row)
			row = padded
		}
		t.Records = append(t.Records, row)
	}
	if t.Header == nil {
		t.Header = []string{}
	}
	return t
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
