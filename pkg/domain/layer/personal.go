package layer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
)

// Defaults for the personnel layer.
const (
	DefaultPersonalParent = "20"
	DefaultPersonalSheet  = "20 Personal"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonAlnum      = regexp.MustCompile(`[^0-9A-Za-z]`)
)

// Role is a personnel role with its join keys.
type Role struct {
	Code    string
	Name    string
	RoleKey string
	CodeKey string
}

// Employee is a person assigned to a role either by role name or by role code.
type Employee struct {
	ID      string
	Name    string
	Cost    string
	RoleKey string
	CodeKey string
}

// NormalizeHeader trims, lower-cases and collapses inner whitespace.
func NormalizeHeader(h string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), " ")
}

func codeKey(s string) string {
	return nonAlnum.ReplaceAllString(strings.TrimSpace(s), "")
}

// LoadRoles extracts roles from a table with code and role columns.
func LoadRoles(t *Table, aliases Aliases) ([]Role, error) {
	if t == nil {
		return nil, errors.New(errors.CodeValidationFailed, "layer", "roles table is empty", nil)
	}
	names, index := renameHeader(t.Header, NormalizeHeader, aliases)
	for _, col := range []string{"code", "role"} {
		if _, ok := index[col]; !ok {
			return nil, errors.New(errors.CodeMissingColumns, "layer",
				fmt.Sprintf("[roles] missing required column: %s. columns: %s", col, quoteList(names)), nil)
		}
	}

	roles := make([]Role, 0, len(t.Records))
	for _, rec := range t.Records {
		code := strings.TrimSpace(column(rec, index["code"]))
		name := strings.TrimSpace(column(rec, index["role"]))
		roles = append(roles, Role{
			Code:    code,
			Name:    name,
			RoleKey: strings.ToLower(name),
			CodeKey: codeKey(code),
		})
	}
	return roles, nil
}

// LoadEmployees extracts employees from a table with id, name and cost
// columns. The optional role column links by role name, the optional cargo
// column links by role code.
func LoadEmployees(t *Table, aliases Aliases) ([]Employee, error) {
	if t == nil {
		return nil, errors.New(errors.CodeValidationFailed, "layer", "employees table is empty", nil)
	}
	names, index := renameHeader(t.Header, NormalizeHeader, aliases)
	for _, col := range []string{"id", "name", "cost"} {
		if _, ok := index[col]; !ok {
			return nil, errors.New(errors.CodeMissingColumns, "layer",
				fmt.Sprintf("[employees] missing required column: %s. columns: %s", col, quoteList(names)), nil)
		}
	}
	roleIdx, hasRole := index["role"]
	cargoIdx, hasCargo := index["cargo"]

	employees := make([]Employee, 0, len(t.Records))
	for _, rec := range t.Records {
		e := Employee{
			ID:   column(rec, index["id"]),
			Name: column(rec, index["name"]),
			Cost: column(rec, index["cost"]),
		}
		if hasRole {
			e.RoleKey = strings.ToLower(strings.TrimSpace(column(rec, roleIdx)))
		}
		if hasCargo {
			e.CodeKey = codeKey(column(rec, cargoIdx))
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// BuildPersonal emits one header row per role followed by the employees
// assigned to it. Employees are matched by role code when any employee
// carries one, otherwise by role name.
func BuildPersonal(roles []Role, employees []Employee, parentCode string) []Row {
	if parentCode == "" {
		parentCode = DefaultPersonalParent
	}

	byCode := false
	for _, e := range employees {
		if e.CodeKey != "" {
			byCode = true
			break
		}
	}

	sorted := SortRoles(roles)
	rows := make([]Row, 0, len(sorted)+len(employees))
	for _, r := range sorted {
		roleSymbol := parentCode + "." + r.Code
		rows = append(rows, Row{
			Parent: parentCode,
			Symbol: roleSymbol,
			Name:   r.Name,
		})
		for _, e := range employees {
			matched := e.RoleKey == r.RoleKey
			if byCode {
				matched = e.CodeKey == r.CodeKey
			}
			if !matched {
				continue
			}
			rows = append(rows, Row{
				Parent:    roleSymbol,
				Symbol:    roleSymbol + "." + strings.TrimSpace(e.ID),
				Name:      strings.TrimSpace(e.Name),
				InputCost: e.Cost,
			})
		}
	}
	return rows
}

// SortRoles orders roles by code: integer codes ascending by value first,
// then the remaining codes lexicographically. Ties keep input order.
func SortRoles(roles []Role) []Role {
	sorted := make([]Role, len(roles))
	copy(sorted, roles)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, aErr := strconv.Atoi(sorted[i].Code)
		b, bErr := strconv.Atoi(sorted[j].Code)
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return sorted[i].Code < sorted[j].Code
		}
	})
	return sorted
}
