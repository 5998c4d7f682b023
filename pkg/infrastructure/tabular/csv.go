package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(path string) (*layer.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeIoError, "tabular", fmt.Sprintf("failed to read %s", path), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	raw, err := parseCSV(data, ',')
	if err != nil || needsSemicolon(raw) {
		raw, err = parseCSV(data, ';')
	}
	if err != nil {
		return nil, errors.New(errors.CodeValidationFailed, "tabular", fmt.Sprintf("failed to parse %s as CSV", path), err)
	}
	return newTable(raw), nil
}

func parseCSV(data []byte, delimiter rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// needsSemicolon reports whether a comma parse produced a single-column
// header that still contains semicolons.
func needsSemicolon(raw [][]string) bool {
	for _, row := range raw {
		if isBlank(row) {
			continue
		}
		return len(row) == 1 && strings.Contains(row[0], ";")
	}
	return false
}
