// Package api holds the interfaces shared by the server entry points.
package api

import "context"

// MCPServer represents the main MCP server interface
type MCPServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
