package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/history"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/homolo/homolo-mcp/pkg/service/builder"
)

// layerRun carries the bookkeeping of one layer build.
type layerRun struct {
	tool   string
	deps   ToolDependencies
	run    history.Run
	logger *slog.Logger
}

func startLayerRun(tool string, deps ToolDependencies) *layerRun {
	id := uuid.New().String()
	return &layerRun{
		tool: tool,
		deps: deps,
		run: history.Run{
			ID:        id,
			Tool:      tool,
			Inputs:    map[string]string{},
			StartedAt: time.Now().UTC(),
		},
		logger: deps.Logger.With("tool", tool, "run_id", id),
	}
}

// finish records the run in the history store and metrics and converts the
// outcome into a tool result.
func (r *layerRun) finish(ctx context.Context, output string, rows int, runErr error) *mcp.CallToolResult {
	r.run.Duration = time.Since(r.run.StartedAt)
	r.run.Output = output
	r.run.Rows = rows
	r.run.Status = history.StatusSucceeded
	if runErr != nil {
		r.run.Status = history.StatusFailed
		r.run.Error = runErr.Error()
		r.run.Rows = 0
	}

	r.deps.Metrics.ObserveTool(r.tool, runErr == nil, r.run.Duration, r.run.Rows)
	if err := r.deps.Store.Record(context.WithoutCancel(ctx), r.run); err != nil {
		r.logger.Warn("Failed to record run", "error", err)
	}

	if runErr != nil {
		r.logger.Error("Layer build failed", "error", runErr, "code", errors.CodeOf(runErr))
		return errorResult(runErr)
	}
	r.logger.Info("Layer build completed", "output", output, "rows", rows, "duration", r.run.Duration)
	return jsonResult(LayerResult{OK: true, Output: output, Rows: rows, RunID: r.run.ID})
}

func newBuilder(deps ToolDependencies) *builder.Builder {
	return builder.New(deps.Aliases, deps.BaseDir, deps.OutputDir)
}

func createFinancialHandler(deps ToolDependencies) ToolHandler {
	b := newBuilder(deps)
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lr := startLayerRun("build_layer_10_financial", deps)
		res, err := buildFinancial(req, b, lr.run.Inputs)
		return lr.finish(ctx, res.Output, res.Rows, err), nil
	}
}

func buildFinancial(req mcp.CallToolRequest, b *builder.Builder, inputs map[string]string) (builder.Result, error) {
	inputPath, err := requiredString(req, "input_path")
	if err != nil {
		return builder.Result{}, err
	}
	outputPath, err := requiredString(req, "output_path")
	if err != nil {
		return builder.Result{}, err
	}
	parent, err := requiredString(req, "parent")
	if err != nil {
		return builder.Result{}, err
	}

	r := builder.FinancialRequest{
		InputPath:   inputPath,
		OutputPath:  outputPath,
		Parent:      parent,
		Sheet:       optionalString(req, "sheet", ""),
		SheetName:   optionalString(req, "sheet_name", layer.DefaultFinancialSheet),
		ParentName:  req.GetString("parent_name", layer.DefaultFinancialParentName),
		NoParentRow: req.GetBool("no_parent_row", false),
		Pad:         req.GetInt("pad", layer.DefaultPad),
	}
	inputs["input_path"] = b.ResolveInput(inputPath)
	inputs["parent"] = parent
	if r.Sheet != "" {
		inputs["sheet"] = r.Sheet
	}
	return b.Financial(r)
}

func createPersonalHandler(deps ToolDependencies) ToolHandler {
	b := newBuilder(deps)
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lr := startLayerRun("build_layer_20_personal", deps)
		res, err := buildPersonal(req, b, lr.run.Inputs)
		return lr.finish(ctx, res.Output, res.Rows, err), nil
	}
}

func buildPersonal(req mcp.CallToolRequest, b *builder.Builder, inputs map[string]string) (builder.Result, error) {
	rolesPath, err := requiredString(req, "roles_path")
	if err != nil {
		return builder.Result{}, err
	}
	employeesPath, err := requiredString(req, "empleados_path")
	if err != nil {
		return builder.Result{}, err
	}
	outputPath, err := requiredString(req, "output_path")
	if err != nil {
		return builder.Result{}, err
	}

	inputs["roles_path"] = b.ResolveInput(rolesPath)
	inputs["empleados_path"] = b.ResolveInput(employeesPath)
	return b.Personal(builder.PersonalRequest{
		RolesPath:      rolesPath,
		EmployeesPath:  employeesPath,
		OutputPath:     outputPath,
		RolesSheet:     optionalString(req, "roles_sheet", ""),
		EmployeesSheet: optionalString(req, "empleados_sheet", ""),
	})
}
