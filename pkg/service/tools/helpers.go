package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
)

// LayerResult is returned by the layer-building tools.
type LayerResult struct {
	OK     bool   `json:"ok"`
	Output string `json:"output"`
	Rows   int    `json:"rows"`
	RunID  string `json:"run_id,omitempty"`
}

// MarshalJSON renders data for a text tool result.
func MarshalJSON(data interface{}) string {
	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("error marshaling data: %v", err)
	}
	return string(bytes)
}

func jsonResult(data interface{}) *mcp.CallToolResult {
	return mcp.NewToolResultText(MarshalJSON(data))
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// requiredString returns a non-blank string argument or a MISSING_PARAMETER error.
func requiredString(req mcp.CallToolRequest, name string) (string, error) {
	v, err := req.RequireString(name)
	if err != nil || strings.TrimSpace(v) == "" {
		return "", errors.New(errors.CodeMissingParameter, "tools", fmt.Sprintf("missing required parameter: %s", name), nil)
	}
	return strings.TrimSpace(v), nil
}

// optionalString returns a trimmed string argument, falling back to def when
// absent or blank.
func optionalString(req mcp.CallToolRequest, name, def string) string {
	v := strings.TrimSpace(req.GetString(name, ""))
	if v == "" {
		return def
	}
	return v
}
