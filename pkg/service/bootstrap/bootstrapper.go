// Package bootstrap provides server initialization and setup logic
package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/history"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/homolo/homolo-mcp/pkg/infrastructure/observability"
	"github.com/homolo/homolo-mcp/pkg/service/config"
	"github.com/homolo/homolo-mcp/pkg/service/registrar"
	"github.com/homolo/homolo-mcp/pkg/service/tools"
)

// Bootstrapper handles server initialization and component registration
type Bootstrapper struct {
	logger    *slog.Logger
	config    *config.Config
	store     history.Store
	metrics   *observability.Metrics
	aliases   layer.AliasSet
	startedAt time.Time
}

// NewBootstrapper creates a new bootstrapper instance
func NewBootstrapper(
	logger *slog.Logger,
	cfg *config.Config,
	store history.Store,
	metrics *observability.Metrics,
	aliases layer.AliasSet,
) *Bootstrapper {
	return &Bootstrapper{
		logger:    logger.With("component", "bootstrapper"),
		config:    cfg,
		store:     store,
		metrics:   metrics,
		aliases:   aliases,
		startedAt: time.Now().UTC(),
	}
}

// InitializeDirectories creates necessary directories for the server
func (b *Bootstrapper) InitializeDirectories() error {
	if b.config.StorePath != "" {
		if err := os.MkdirAll(filepath.Dir(b.config.StorePath), 0o755); err != nil {
			return errors.New(errors.CodeIoError, "bootstrapper", fmt.Sprintf("failed to create storage directory %s", b.config.StorePath), err)
		}
	}

	if b.config.OutputDir != "" {
		if err := os.MkdirAll(b.config.OutputDir, 0o755); err != nil {
			return errors.New(errors.CodeIoError, "bootstrapper", fmt.Sprintf("failed to create output directory %s", b.config.OutputDir), err)
		}
	}

	return nil
}

// CreateMCPServer creates a new mcp-go server with capabilities
func (b *Bootstrapper) CreateMCPServer() *server.MCPServer {
	return server.NewMCPServer(
		b.config.ServiceName,
		b.config.ServiceVersion,
		server.WithResourceCapabilities(true, true),
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)
}

// RegisterComponents registers all tools and resources with the MCP server
func (b *Bootstrapper) RegisterComponents(mcpServer *server.MCPServer) error {
	if mcpServer == nil {
		return errors.New(errors.CodeInternalError, "bootstrapper", "mcp server not initialized", nil)
	}

	deps := tools.ToolDependencies{
		Logger:    b.logger.With("component", "tools"),
		Store:     b.store,
		Metrics:   b.metrics,
		Aliases:   b.aliases,
		BaseDir:   b.config.BaseDir,
		OutputDir: b.config.OutputDir,
	}
	info := registrar.ServerInfo{
		Name:        b.config.ServiceName,
		Version:     b.config.ServiceVersion,
		Transport:   b.config.Transport,
		BaseDir:     b.config.BaseDir,
		OutputDir:   b.config.OutputDir,
		AuthEnabled: b.config.AuthEnabled(),
		StartedAt:   b.startedAt,
	}
	if b.config.Transport == config.TransportHTTP {
		info.MountPath = b.config.MountPath
	}

	reg := registrar.NewRegistrar(b.logger, deps, info)
	if err := reg.RegisterAll(mcpServer); err != nil {
		return errors.New(errors.CodeToolExecutionFailed, "bootstrapper", "failed to register components", err)
	}
	return nil
}
