package transport

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
)

// StdioTransport serves MCP over standard input and output.
type StdioTransport struct {
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
}

// NewStdioTransport creates a stdio transport bound to os.Stdin and os.Stdout.
func NewStdioTransport(logger *slog.Logger) *StdioTransport {
	return NewStdioTransportWithIO(logger, os.Stdin, os.Stdout)
}

// NewStdioTransportWithIO creates a stdio transport on the given streams.
func NewStdioTransportWithIO(logger *slog.Logger, in io.Reader, out io.Writer) *StdioTransport {
	return &StdioTransport{
		logger: logger.With("component", "stdio_transport"),
		in:     in,
		out:    out,
	}
}

// Serve implements the Transport interface
func (t *StdioTransport) Serve(ctx context.Context, mcpServer *server.MCPServer) error {
	stdio := server.NewStdioServer(mcpServer)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	t.logger.Info("Serving MCP over stdio")
	err := stdio.Listen(ctx, t.in, t.out)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
