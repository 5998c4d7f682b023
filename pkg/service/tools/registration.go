package tools

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
)

// RegisterTools registers all tools based on their configurations
func RegisterTools(mcpServer *server.MCPServer, deps ToolDependencies) error {
	for _, config := range toolConfigs {
		if err := RegisterTool(mcpServer, config, deps); err != nil {
			return errors.Wrapf(err, "failed to register tool %s", config.Name)
		}
	}
	return nil
}

// RegisterTool registers a single tool based on its configuration
func RegisterTool(mcpServer *server.MCPServer, config ToolConfig, deps ToolDependencies) error {
	if err := validateDependencies(config, deps); err != nil {
		return errors.Wrapf(err, "invalid dependencies for tool %s", config.Name)
	}
	if config.Handler == nil {
		return errors.Errorf("tool %s has no handler", config.Name)
	}

	tool := mcp.Tool{
		Name:        config.Name,
		Description: config.Description,
		InputSchema: BuildToolSchema(config),
	}

	mcpServer.AddTool(tool, config.Handler(deps))

	if deps.Logger != nil {
		deps.Logger.Info("Registered tool", slog.String("name", config.Name), slog.String("category", string(config.Category)))
	}
	return nil
}

// validateDependencies ensures required dependencies are provided
func validateDependencies(config ToolConfig, deps ToolDependencies) error {
	if config.NeedsStore && deps.Store == nil {
		return errors.New("Store is required but not provided")
	}
	if config.NeedsLogger && deps.Logger == nil {
		return errors.New("Logger is required but not provided")
	}
	if config.Category == CategoryLayer && (deps.BaseDir == "" || deps.OutputDir == "") {
		return errors.New("BaseDir and OutputDir are required but not provided")
	}
	return nil
}
