package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/homolo/homolo-mcp/pkg/api"
	"github.com/homolo/homolo-mcp/pkg/domain/history"
	"github.com/homolo/homolo-mcp/pkg/domain/layer"
	"github.com/homolo/homolo-mcp/pkg/infrastructure/observability"
	"github.com/homolo/homolo-mcp/pkg/service/bootstrap"
	"github.com/homolo/homolo-mcp/pkg/service/config"
	"github.com/homolo/homolo-mcp/pkg/service/lifecycle"
	"github.com/homolo/homolo-mcp/pkg/service/transport"
	transporthttp "github.com/homolo/homolo-mcp/pkg/service/transport/http"
)

// Dependencies are the collaborators a server is assembled from.
type Dependencies struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   history.Store
	Metrics *observability.Metrics // nil when metrics are disabled
	Aliases layer.AliasSet
}

func (d *Dependencies) Validate() error {
	var errs []error

	if d.Logger == nil {
		errs = append(errs, fmt.Errorf("logger is required"))
	}
	if d.Config == nil {
		errs = append(errs, fmt.Errorf("config is required"))
	}
	if d.Store == nil {
		errs = append(errs, fmt.Errorf("history store is required"))
	}
	if d.Aliases.Financial == nil || d.Aliases.Roles == nil || d.Aliases.Employees == nil {
		errs = append(errs, fmt.Errorf("column aliases are required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("dependency validation failed: %v", errs)
	}
	return nil
}

type server struct {
	dependencies     *Dependencies
	lifecycleManager *lifecycle.LifecycleManager
	bootstrapper     *bootstrap.Bootstrapper
}

func (s *server) Start(ctx context.Context) error {
	return s.lifecycleManager.Start(ctx)
}

func (s *server) Stop(ctx context.Context) error {
	return s.lifecycleManager.Shutdown(ctx)
}

// NewMCPServerFromDeps wires the bootstrapper, transports and lifecycle
// manager around deps.
func NewMCPServerFromDeps(deps *Dependencies) (api.MCPServer, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	bootstrapper := bootstrap.NewBootstrapper(
		deps.Logger,
		deps.Config,
		deps.Store,
		deps.Metrics,
		deps.Aliases,
	)

	transports := transport.NewRegistry(deps.Logger)
	transports.Register(transport.TransportTypeStdio, transport.NewStdioTransport(deps.Logger))
	transports.Register(transport.TransportTypeHTTP, transport.NewHTTPTransport(deps.Logger, httpOptions(deps.Config), deps.Metrics))

	lifecycleManager := lifecycle.NewLifecycleManager(
		deps.Logger,
		deps.Config,
		deps.Store,
		bootstrapper,
		transports,
	)

	return &server{
		dependencies:     deps,
		lifecycleManager: lifecycleManager,
		bootstrapper:     bootstrapper,
	}, nil
}

func httpOptions(cfg *config.Config) transporthttp.Options {
	return transporthttp.Options{
		Addr:            cfg.Addr(),
		MountPath:       cfg.MountPath,
		BearerToken:     cfg.BearerToken,
		ProxyHeaders:    cfg.ProxyHeaders,
		TrustedProxies:  cfg.ForwardedAllowedIPs,
		ServiceName:     cfg.ServiceName,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}
}
