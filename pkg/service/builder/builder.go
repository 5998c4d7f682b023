// Package builder runs the layer pipelines: read the inputs, normalize,
// build the rows and write the workbook.
package builder

import (
	"path/filepath"
	"strings"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/homolo/homolo-mcp/pkg/infrastructure/filesystem"
	"github.com/homolo/homolo-mcp/pkg/infrastructure/tabular"
)

// FinancialRequest are the inputs of the financial layer build.
type FinancialRequest struct {
	InputPath   string
	OutputPath  string
	Parent      string
	Sheet       string
	SheetName   string
	ParentName  string
	NoParentRow bool
	Pad         int
}

// PersonalRequest are the inputs of the personnel layer build.
type PersonalRequest struct {
	RolesPath      string
	EmployeesPath  string
	OutputPath     string
	RolesSheet     string
	EmployeesSheet string
}

// Result describes a written layer workbook.
type Result struct {
	Output string `json:"output"`
	Rows   int    `json:"rows"`
}

// Builder resolves paths and runs layer builds.
type Builder struct {
	aliases   layer.AliasSet
	baseDir   string
	outputDir string
}

// New creates a Builder. Relative inputs resolve against baseDir and
// relative outputs against outputDir; empty means the working directory.
func New(aliases layer.AliasSet, baseDir, outputDir string) *Builder {
	return &Builder{aliases: aliases, baseDir: baseDir, outputDir: outputDir}
}

// ResolveInput returns the absolute path of an input file.
func (b *Builder) ResolveInput(p string) string {
	return filesystem.Resolve(b.baseDir, p)
}

// ResolveOutput returns the absolute path of an output workbook, adding
// .xlsx when p has no extension.
func (b *Builder) ResolveOutput(p string) string {
	if filepath.Ext(p) == "" {
		p += ".xlsx"
	}
	return filesystem.Resolve(b.outputDir, p)
}

// Financial builds layer 10 from a single code/description/value table.
func (b *Builder) Financial(req FinancialRequest) (Result, error) {
	if err := requireParams(map[string]string{
		"input_path":  req.InputPath,
		"output_path": req.OutputPath,
		"parent":      req.Parent,
	}, "input_path", "output_path", "parent"); err != nil {
		return Result{}, err
	}
	if req.Pad < 0 {
		return Result{}, errors.New(errors.CodeInvalidParameter, "builder", "pad must not be negative", nil)
	}
	sheetName := strings.TrimSpace(req.SheetName)
	if sheetName == "" {
		sheetName = layer.DefaultFinancialSheet
	}

	result := Result{Output: b.ResolveOutput(strings.TrimSpace(req.OutputPath))}

	table, err := tabular.Read(b.ResolveInput(strings.TrimSpace(req.InputPath)), strings.TrimSpace(req.Sheet))
	if err != nil {
		return result, err
	}
	entries, err := layer.NormalizeFinancial(table, b.aliases.Financial)
	if err != nil {
		return result, err
	}
	opts := layer.DefaultFinancialOptions(strings.TrimSpace(req.Parent))
	opts.Pad = req.Pad
	opts.IncludeParentRow = !req.NoParentRow
	opts.ParentName = req.ParentName
	rows, err := layer.BuildFinancial(entries, opts)
	if err != nil {
		return result, err
	}
	if err := tabular.WriteLayer(result.Output, sheetName, rows); err != nil {
		return result, err
	}
	result.Rows = len(rows)
	return result, nil
}

// Personal builds layer 20 from a roles table and an employees table.
func (b *Builder) Personal(req PersonalRequest) (Result, error) {
	if err := requireParams(map[string]string{
		"roles_path":     req.RolesPath,
		"empleados_path": req.EmployeesPath,
		"output_path":    req.OutputPath,
	}, "roles_path", "empleados_path", "output_path"); err != nil {
		return Result{}, err
	}

	result := Result{Output: b.ResolveOutput(strings.TrimSpace(req.OutputPath))}

	rolesTable, err := tabular.ReadAny(b.ResolveInput(strings.TrimSpace(req.RolesPath)), strings.TrimSpace(req.RolesSheet))
	if err != nil {
		return result, err
	}
	roles, err := layer.LoadRoles(rolesTable, b.aliases.Roles)
	if err != nil {
		return result, err
	}
	employeesTable, err := tabular.ReadAny(b.ResolveInput(strings.TrimSpace(req.EmployeesPath)), strings.TrimSpace(req.EmployeesSheet))
	if err != nil {
		return result, err
	}
	employees, err := layer.LoadEmployees(employeesTable, b.aliases.Employees)
	if err != nil {
		return result, err
	}

	rows := layer.BuildPersonal(roles, employees, layer.DefaultPersonalParent)
	if err := tabular.WriteLayer(result.Output, layer.DefaultPersonalSheet, rows); err != nil {
		return result, err
	}
	result.Rows = len(rows)
	return result, nil
}

func requireParams(values map[string]string, order ...string) error {
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			return errors.New(errors.CodeMissingParameter, "builder", "missing required parameter: "+name, nil)
		}
	}
	return nil
}
