package registrar

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/service/tools"
)

// Registrar registers tools and resources on an MCP server.
type Registrar struct {
	logger    *slog.Logger
	toolDeps  tools.ToolDependencies
	resources *ResourceRegistrar
}

// NewRegistrar creates a registrar for the given dependencies.
func NewRegistrar(logger *slog.Logger, toolDeps tools.ToolDependencies, info ServerInfo) *Registrar {
	if len(info.Tools) == 0 {
		for _, cfg := range tools.GetToolConfigs() {
			info.Tools = append(info.Tools, cfg.Name)
		}
	}
	return &Registrar{
		logger:    logger.With("component", "registrar"),
		toolDeps:  toolDeps,
		resources: NewResourceRegistrar(logger, toolDeps.Store, info),
	}
}

// RegisterAll registers every tool and resource.
func (r *Registrar) RegisterAll(mcpServer *server.MCPServer) error {
	if err := tools.RegisterTools(mcpServer, r.toolDeps); err != nil {
		return errors.New(errors.CodeToolExecutionFailed, "registrar", "failed to register tools", err)
	}
	if err := r.resources.RegisterAll(mcpServer); err != nil {
		return err
	}
	r.logger.Info("Registration complete", "tools", len(tools.GetToolConfigs()))
	return nil
}
