// Package service assembles the homolo MCP server from its configuration.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/homolo/homolo-mcp/pkg/api"
	"github.com/homolo/homolo-mcp/pkg/infrastructure/observability"
	historystore "github.com/homolo/homolo-mcp/pkg/infrastructure/persistence/history"
	"github.com/homolo/homolo-mcp/pkg/service/config"
)

type ServerFactory struct {
	logger *slog.Logger
	config *config.Config
}

func NewServerFactory(logger *slog.Logger, cfg *config.Config) *ServerFactory {
	return &ServerFactory{
		logger: logger,
		config: cfg,
	}
}

func (f *ServerFactory) CreateServer(ctx context.Context) (api.MCPServer, error) {
	f.logger.Info("Creating MCP server")

	deps, err := f.buildDependencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	server, err := NewMCPServerFromDeps(deps)
	if err != nil {
		_ = deps.Store.Close()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	f.logger.Info("MCP server created successfully")
	return server, nil
}

func (f *ServerFactory) buildDependencies(_ context.Context) (*Dependencies, error) {
	aliases, err := config.LoadAliases(f.config.AliasesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load column aliases: %w", err)
	}

	store, err := historystore.NewBoltStore(f.config.StorePath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}

	var metrics *observability.Metrics
	if f.config.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	deps := &Dependencies{
		Logger:  f.logger,
		Config:  f.config,
		Store:   store,
		Metrics: metrics,
		Aliases: aliases,
	}
	if err := deps.Validate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("dependency validation failed: %w", err)
	}
	return deps, nil
}

// InitializeServer builds a ready-to-start server from cfg.
func InitializeServer(logger *slog.Logger, cfg *config.Config) (api.MCPServer, error) {
	return NewServerFactory(logger, cfg).CreateServer(context.Background())
}
