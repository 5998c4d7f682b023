// Package lifecycle provides server lifecycle management functionality
package lifecycle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/history"
	"github.com/homolo/homolo-mcp/pkg/service/bootstrap"
	"github.com/homolo/homolo-mcp/pkg/service/config"
	"github.com/homolo/homolo-mcp/pkg/service/transport"
)

// LifecycleManager handles server startup and shutdown logic
type LifecycleManager struct {
	logger           *slog.Logger
	config           *config.Config
	store            history.Store
	bootstrapper     *bootstrap.Bootstrapper
	transports       *transport.Registry
	mcpServer        *server.MCPServer
	isMcpInitialized bool
	shutdownMutex    sync.Mutex
	isShuttingDown   bool
	startTime        time.Time
}

// NewLifecycleManager creates a new lifecycle manager
func NewLifecycleManager(
	logger *slog.Logger,
	cfg *config.Config,
	store history.Store,
	bootstrapper *bootstrap.Bootstrapper,
	transports *transport.Registry,
) *LifecycleManager {
	return &LifecycleManager{
		logger:       logger.With("component", "lifecycle"),
		config:       cfg,
		store:        store,
		bootstrapper: bootstrapper,
		transports:   transports,
		startTime:    time.Now(),
	}
}

// Start initializes the MCP server and runs the configured transport until
// ctx is cancelled.
func (m *LifecycleManager) Start(ctx context.Context) error {
	m.logger.Info("Starting homolo MCP server",
		"transport", m.config.Transport,
		"base_dir", m.config.BaseDir,
		"output_dir", m.config.OutputDir)

	if err := m.bootstrapper.InitializeDirectories(); err != nil {
		return err
	}

	if !m.isMcpInitialized {
		if err := m.initializeMCPServer(); err != nil {
			return err
		}
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go m.runCleanup(cleanupCtx)

	return m.transports.Start(ctx, transport.TransportType(m.config.Transport), m.mcpServer)
}

// initializeMCPServer handles MCP server initialization and registration
func (m *LifecycleManager) initializeMCPServer() error {
	m.logger.Info("Initializing mcp-go server")

	m.mcpServer = m.bootstrapper.CreateMCPServer()
	if m.mcpServer == nil {
		return errors.New(errors.CodeInternalError, "lifecycle", "failed to create mcp-go server", nil)
	}

	if err := m.bootstrapper.RegisterComponents(m.mcpServer); err != nil {
		return errors.New(errors.CodeToolExecutionFailed, "lifecycle", "failed to register components with mcp-go", err)
	}

	m.isMcpInitialized = true
	m.logger.Info("MCP-GO server initialized successfully")
	return nil
}

// runCleanup prunes expired runs once at startup and then on every tick.
func (m *LifecycleManager) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		m.cleanupOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *LifecycleManager) cleanupOnce(ctx context.Context) {
	cutoff := time.Now().Add(-m.config.HistoryTTL)
	removed, err := m.store.Cleanup(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			m.logger.Warn("Run history cleanup failed", "error", err)
		}
		return
	}
	if removed > 0 {
		m.logger.Info("Expired runs removed", "count", removed, "cutoff", cutoff)
	}
}

// Shutdown closes the history store. Later calls are no-ops.
func (m *LifecycleManager) Shutdown(ctx context.Context) error {
	m.shutdownMutex.Lock()
	defer m.shutdownMutex.Unlock()

	if m.isShuttingDown {
		return nil
	}
	m.isShuttingDown = true

	m.logger.Info("Gracefully shutting down MCP Server")

	done := make(chan error, 1)
	go func() {
		done <- m.store.Close()
	}()

	select {
	case <-ctx.Done():
		m.logger.Warn("Shutdown cancelled by context", "error", ctx.Err())
		return ctx.Err()
	case err := <-done:
		if err != nil {
			m.logger.Error("Failed to close history store", "error", err)
			return err
		}
	}

	m.logger.Info("MCP Server shutdown complete", "uptime", m.GetUptime())
	return nil
}

// MCPServer returns the initialized mcp-go server, or nil before Start.
func (m *LifecycleManager) MCPServer() *server.MCPServer {
	return m.mcpServer
}

// GetUptime returns the server uptime
func (m *LifecycleManager) GetUptime() time.Duration {
	return time.Since(m.startTime)
}

// IsInitialized returns whether the MCP server is initialized
func (m *LifecycleManager) IsInitialized() bool {
	return m.isMcpInitialized
}

// IsShuttingDown returns whether the server is in shutdown process
func (m *LifecycleManager) IsShuttingDown() bool {
	m.shutdownMutex.Lock()
	defer m.shutdownMutex.Unlock()
	return m.isShuttingDown
}
