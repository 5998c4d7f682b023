package transport

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/homolo/homolo-mcp/pkg/infrastructure/observability"
	"github.com/homolo/homolo-mcp/pkg/service/transport/http"
)

// HTTPTransport handles HTTP-based MCP communication
type HTTPTransport struct {
	handler *http.Handler
}

// NewHTTPTransport creates a new HTTP transport
func NewHTTPTransport(logger *slog.Logger, opts http.Options, metrics *observability.Metrics) *HTTPTransport {
	return &HTTPTransport{
		handler: http.NewHandler(logger, opts, metrics),
	}
}

// Serve implements the Transport interface
func (t *HTTPTransport) Serve(ctx context.Context, mcpServer *server.MCPServer) error {
	return t.handler.Serve(ctx, mcpServer)
}
