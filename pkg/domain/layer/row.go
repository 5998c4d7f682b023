// Package layer builds hierarchical accounting layers from tabular inputs.
//
// A layer is a flat list of rows whose dotted symbols encode the hierarchy
// (for example 10.01 -> 10.01.43). Every layer shares the same four output
// columns so that downstream consumers can stack layers into one workbook.
package layer

import "strings"

// Output column names, in order.
const (
	ColumnParent    = "parent"
	ColumnSymbol    = "symbol"
	ColumnName      = "name"
	ColumnInputCost = "input_cost"
)

// Columns is the header written for every layer.
var Columns = []string{ColumnParent, ColumnSymbol, ColumnName, ColumnInputCost}

// Row is a single output line of a layer.
type Row struct {
	Parent    string `json:"parent"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	InputCost string `json:"input_cost"`
}

// Values returns the row in Columns order.
func (r Row) Values() []string {
	return []string{r.Parent, r.Symbol, r.Name, r.InputCost}
}

// Table is a raw input grid: a header line followed by records.
// Records are padded to the header width by the readers.
type Table struct {
	Header  []string
	Records [][]string
}

// column returns the value of column idx in record, or "" when out of range.
func column(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// renameHeader maps every header cell through normalize and aliases and
// returns the resulting names together with the index of the first column
// carrying each name.
func renameHeader(header []string, normalize func(string) string, aliases Aliases) ([]string, map[string]int) {
	names := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := normalize(h)
		name := key
		if canonical, ok := aliases[key]; ok {
			name = canonical
		}
		names[i] = name
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return names, index
}

func missingColumns(index map[string]int, required ...string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
