package layer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
)

// Defaults for the financial layer.
const (
	DefaultFinancialSheet      = "Resultados"
	DefaultFinancialParentName = "Datos que fluyen"
	DefaultPad                 = 2
)

// FinancialEntry is one normalized input line of the financial layer.
type FinancialEntry struct {
	Code        string
	Description string
	Value       string
}

// FinancialOptions controls BuildFinancial.
type FinancialOptions struct {
	Parent           string
	Pad              int
	IncludeParentRow bool
	ParentName       string
}

// DefaultFinancialOptions returns the options used when a caller only supplies the parent.
func DefaultFinancialOptions(parent string) FinancialOptions {
	return FinancialOptions{
		Parent:           parent,
		Pad:              DefaultPad,
		IncludeParentRow: true,
		ParentName:       DefaultFinancialParentName,
	}
}

func financialKey(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// NormalizeFinancial maps the input header onto code, description and value
// and extracts those three columns. Unknown columns are ignored.
func NormalizeFinancial(t *Table, aliases Aliases) ([]FinancialEntry, error) {
	if t == nil {
		return nil, errors.New(errors.CodeValidationFailed, "layer", "input table is empty", nil)
	}
	names, index := renameHeader(t.Header, financialKey, aliases)
	if missing := missingColumns(index, "code", "description", "value"); len(missing) > 0 {
		return nil, errors.New(errors.CodeMissingColumns, "layer",
			fmt.Sprintf("missing required columns: %s. present: %s", quoteList(missing), quoteList(names)), nil)
	}

	codeIdx, descIdx, valueIdx := index["code"], index["description"], index["value"]
	entries := make([]FinancialEntry, 0, len(t.Records))
	for _, rec := range t.Records {
		entries = append(entries, FinancialEntry{
			Code:        column(rec, codeIdx),
			Description: column(rec, descIdx),
			Value:       column(rec, valueIdx),
		})
	}
	return entries, nil
}

// BuildFinancial turns normalized entries into layer rows under opts.Parent.
func BuildFinancial(entries []FinancialEntry, opts FinancialOptions) ([]Row, error) {
	if strings.TrimSpace(opts.Parent) == "" {
		return nil, errors.New(errors.CodeMissingParameter, "layer", "parent code is required", nil)
	}

	rows := make([]Row, 0, len(entries)+1)
	if opts.IncludeParentRow {
		rows = append(rows, Row{
			Parent: opts.Parent,
			Symbol: opts.Parent,
			Name:   opts.ParentName,
		})
	}
	for _, e := range entries {
		rows = append(rows, Row{
			Parent:    opts.Parent,
			Symbol:    opts.Parent + "." + FormatCode(strings.TrimSpace(e.Code), opts.Pad),
			Name:      strings.TrimSpace(e.Description),
			InputCost: e.Value,
		})
	}
	return rows, nil
}

// FormatCode zero-pads a numeric code to pad digits after truncating any
// fractional part ("43.0" -> "43", "7" -> "07"). Codes that are not finite
// numbers are returned unchanged.
func FormatCode(code string, pad int) string {
	f, err := strconv.ParseFloat(code, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return code
	}
	return zfill(strconv.FormatInt(int64(f), 10), pad)
}

// zfill left-pads s with zeros to width, keeping a leading sign in front.
func zfill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	return sign + strings.Repeat("0", width-len(sign)-len(s)) + s
}
