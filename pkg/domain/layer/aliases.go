package layer

import (
	"maps"
	"strings"
)

// Aliases maps a normalized input header to its canonical column name.
type Aliases map[string]string

// Merge returns a copy of a with the entries of extra added on top.
// Keys and values of extra are normalized to lower case.
func (a Aliases) Merge(extra map[string]string) Aliases {
	out := maps.Clone(a)
	if out == nil {
		out = Aliases{}
	}
	for k, v := range extra {
		out[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// AliasSet groups the alias tables of every input kind.
type AliasSet struct {
	Financial Aliases
	Roles     Aliases
	Employees Aliases
}

// DefaultAliases returns the built-in alias tables.
func DefaultAliases() AliasSet {
	return AliasSet{
		Financial: Aliases{
			"codigo":      "code",
			"code":        "code",
			"descripcion": "description",
			"description": "description",
			"valor":       "value",
			"value":       "value",
			"input_cost":  "value",
			"importe":     "value",
			"monto":       "value",
		},
		Roles: Aliases{
			"codigo":     "code",
			"código":     "code",
			"rol":        "role",
			"nombre rol": "role",
		},
		Employees: Aliases{
			"nombre":   "name",
			"empleado": "name",
			"costo":    "cost",
			"valor":    "cost",
			"salario":  "cost",
			"rol":      "role",
		},
	}
}

// Extend returns a copy of s with the given overrides merged in.
func (s AliasSet) Extend(financial, roles, employees map[string]string) AliasSet {
	return AliasSet{
		Financial: s.Financial.Merge(financial),
		Roles:     s.Roles.Merge(roles),
		Employees: s.Employees.Merge(employees),
	}
}
