// Package transport handles MCP transport layer concerns
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
)

// Transport defines the interface for MCP transport implementations
type Transport interface {
	Serve(ctx context.Context, mcpServer *server.MCPServer) error
}

// TransportType represents the type of transport
type TransportType string

const (
	TransportTypeStdio TransportType = "stdio"
	TransportTypeHTTP  TransportType = "http"
)

// ErrUnsupportedTransport is returned when an unsupported transport type is requested
var ErrUnsupportedTransport = fmt.Errorf("unsupported transport type")

// Registry holds registered transport implementations
type Registry struct {
	mu         sync.RWMutex
	transports map[TransportType]Transport
	logger     *slog.Logger
}

// NewRegistry creates a new transport registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		transports: make(map[TransportType]Transport),
		logger:     logger.With("component", "transport_registry"),
	}
}

// Register adds a transport implementation to the registry
func (r *Registry) Register(transportType TransportType, transport Transport) {
	r.mu.Lock()
	r.transports[transportType] = transport
	r.mu.Unlock()
	r.logger.Debug("Transport registered", slog.String("type", string(transportType)))
}

// Start runs the specified transport until ctx is cancelled or it fails.
func (r *Registry) Start(ctx context.Context, transportType TransportType, mcpServer *server.MCPServer) error {
	r.mu.RLock()
	transport, exists := r.transports[transportType]
	r.mu.RUnlock()
	if !exists {
		r.logger.Error("Unsupported transport type requested",
			slog.String("transport_type", string(transportType)))
		return errors.New(
			errors.CodeInvalidParameter,
			"transport",
			fmt.Sprintf("unsupported transport type: %s", transportType),
			ErrUnsupportedTransport,
		)
	}

	r.logger.Info("Starting transport", slog.String("type", string(transportType)))

	if err := transport.Serve(ctx, mcpServer); err != nil {
		// Don't wrap context cancellation - it's expected behavior
		if err == context.Canceled || err == context.DeadlineExceeded {
			r.logger.Debug("Transport stopped due to context cancellation",
				slog.String("transport_type", string(transportType)))
			return err
		}

		r.logger.Error("Transport failed",
			slog.String("transport_type", string(transportType)),
			slog.String("error", err.Error()))
		return errors.New(
			errors.CodeOperationFailed,
			"transport",
			fmt.Sprintf("failed to run %s transport", transportType),
			err,
		)
	}

	return nil
}
