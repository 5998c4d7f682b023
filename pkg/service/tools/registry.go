package tools

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/homolo/homolo-mcp/pkg/domain/history"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/homolo/homolo-mcp/pkg/infrastructure/observability"
)

// ToolCategory defines the type of tool
type ToolCategory string

const (
	CategoryLayer   ToolCategory = "layer"
	CategoryUtility ToolCategory = "utility"
)

// ToolHandler is the signature mcp-go expects for tool callbacks.
type ToolHandler = server.ToolHandlerFunc

// ParamSpec describes one input parameter of a tool.
type ParamSpec struct {
	Name        string
	Type        string // string, boolean, integer
	Description string
	Required    bool
	Default     interface{}
}

// ToolConfig defines the configuration for a tool
type ToolConfig struct {
	Name        string
	Description string
	Category    ToolCategory
	Params      []ParamSpec

	NeedsStore  bool
	NeedsLogger bool

	Handler func(deps ToolDependencies) ToolHandler
}

// ToolDependencies holds all possible dependencies a tool might need
type ToolDependencies struct {
	Logger    *slog.Logger
	Store     history.Store
	Metrics   *observability.Metrics // optional
	Aliases   layer.AliasSet
	BaseDir   string
	OutputDir string
}

// All tool configurations in a single table
var toolConfigs = []ToolConfig{
	{
		Name:        "build_layer_10_financial",
		Description: "Build the financial layer (10) workbook from a CSV or Excel table with code, description and value columns",
		Category:    CategoryLayer,
		Params: []ParamSpec{
			{Name: "input_path", Type: "string", Required: true, Description: "Input CSV or Excel file. Relative paths resolve against the base directory"},
			{Name: "output_path", Type: "string", Required: true, Description: "Output .xlsx file. Relative paths resolve against the output directory"},
			{Name: "parent", Type: "string", Required: true, Description: "Parent symbol of every generated row"},
			{Name: "sheet", Type: "string", Description: "Worksheet to read from an Excel input; the first sheet when omitted"},
			{Name: "sheet_name", Type: "string", Default: layer.DefaultFinancialSheet, Description: "Name of the output worksheet"},
			{Name: "parent_name", Type: "string", Default: layer.DefaultFinancialParentName, Description: "Name written on the parent row"},
			{Name: "no_parent_row", Type: "boolean", Default: false, Description: "Omit the leading parent row"},
			{Name: "pad", Type: "integer", Default: layer.DefaultPad, Description: "Zero-padding width for numeric codes"},
		},
		NeedsStore:  true,
		NeedsLogger: true,
		Handler:     createFinancialHandler,
	},
	{
		Name:        "build_layer_20_personal",
		Description: "Build the personnel layer (20) workbook from a roles table and an employees table",
		Category:    CategoryLayer,
		Params: []ParamSpec{
			{Name: "roles_path", Type: "string", Required: true, Description: "Roles CSV or Excel file with code and role columns"},
			{Name: "empleados_path", Type: "string", Required: true, Description: "Employees CSV or Excel file with id, name and cost columns"},
			{Name: "output_path", Type: "string", Required: true, Description: "Output .xlsx file. Relative paths resolve against the output directory"},
			{Name: "roles_sheet", Type: "string", Description: "Worksheet of the roles workbook; the first sheet when omitted"},
			{Name: "empleados_sheet", Type: "string", Description: "Worksheet of the employees workbook; the first sheet when omitted"},
		},
		NeedsStore:  true,
		NeedsLogger: true,
		Handler:     createPersonalHandler,
	},
	{
		Name:        "file_list",
		Description: "List the entries of a directory on the server",
		Category:    CategoryUtility,
		Params: []ParamSpec{
			{Name: "dir_path", Type: "string", Default: ".", Description: "Directory to list. Relative paths resolve against the base directory"},
		},
		Handler: createFileListHandler,
	},
	{
		Name:        "run_history",
		Description: "Show the most recent layer builds, newest first",
		Category:    CategoryUtility,
		Params: []ParamSpec{
			{Name: "limit", Type: "integer", Default: 20, Description: "Maximum number of runs to return"},
		},
		NeedsStore: true,
		Handler:    createRunHistoryHandler,
	},
}

// GetToolConfigs returns all tool configurations
func GetToolConfigs() []ToolConfig {
	return toolConfigs
}

// GetToolConfig returns a specific tool configuration by name
func GetToolConfig(name string) (*ToolConfig, error) {
	for _, config := range toolConfigs {
		if config.Name == name {
			return &config, nil
		}
	}
	return nil, errors.Errorf("tool %s not found", name)
}

// BuildToolSchema creates the MCP input schema for a tool
func BuildToolSchema(config ToolConfig) mcp.ToolInputSchema {
	properties := make(map[string]interface{}, len(config.Params))
	required := []string{}

	for _, param := range config.Params {
		paramSchema := map[string]interface{}{
			"description": param.Description,
		}
		switch param.Type {
		case "boolean", "integer", "number":
			paramSchema["type"] = param.Type
		default:
			paramSchema["type"] = "string"
		}
		if param.Default != nil {
			paramSchema["default"] = param.Default
		}
		if param.Required {
			required = append(required, param.Name)
		}
		properties[param.Name] = paramSchema
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
