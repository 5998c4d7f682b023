package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"github.com/homolo/homolo-mcp/pkg/infrastructure/filesystem"
)

const defaultHistoryLimit = 20

func createFileListHandler(deps ToolDependencies) ToolHandler {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dirPath := optionalString(req, "dir_path", ".")
		return jsonResult(filesystem.List(deps.BaseDir, dirPath)), nil
	}
}

func createRunHistoryHandler(deps ToolDependencies) ToolHandler {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", defaultHistoryLimit)
		if limit <= 0 {
			limit = defaultHistoryLimit
		}

		runs, err := deps.Store.List(ctx, limit)
		if err != nil {
			return errorResult(errors.Wrap(err, "failed to list runs")), nil
		}
		stats, err := deps.Store.Stats(ctx)
		if err != nil {
			return errorResult(errors.Wrap(err, "failed to read run statistics")), nil
		}

		return jsonResult(map[string]interface{}{
			"runs":  runs,
			"count": len(runs),
			"stats": stats,
		}), nil
	}
}
