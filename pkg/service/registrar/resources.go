// Package registrar handles tool and resource registration
package registrar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/history"
)

const (
	RunsURI         = "homolo://runs"
	RunTemplateURI  = "homolo://runs/{id}"
	ServerInfoURI   = "homolo://server-info"
	runsResourceMax = 100
)

// ServerInfo describes the running server.
type ServerInfo struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Transport   string    `json:"transport"`
	MountPath   string    `json:"mount_path,omitempty"`
	BaseDir     string    `json:"base_dir"`
	OutputDir   string    `json:"output_dir"`
	AuthEnabled bool      `json:"auth_enabled"`
	Tools       []string  `json:"tools"`
	StartedAt   time.Time `json:"started_at"`
}

// ResourceRegistrar handles resource registration
type ResourceRegistrar struct {
	logger *slog.Logger
	store  history.Store
	info   ServerInfo
}

// NewResourceRegistrar creates a new resource registrar
func NewResourceRegistrar(logger *slog.Logger, store history.Store, info ServerInfo) *ResourceRegistrar {
	return &ResourceRegistrar{
		logger: logger.With("component", "resource_registrar"),
		store:  store,
		info:   info,
	}
}

// RegisterAll registers all resource providers with the MCP server
func (rr *ResourceRegistrar) RegisterAll(mcpServer *server.MCPServer) error {
	if rr.store == nil {
		return errors.New(errors.CodeToolExecutionFailed, "registrar", "history store is required for resources", nil)
	}

	mcpServer.AddResource(
		mcp.NewResource(RunsURI, "Run history",
			mcp.WithResourceDescription("Most recent layer builds, newest first"),
			mcp.WithMIMEType("application/json"),
		),
		rr.handleRuns,
	)

	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(RunTemplateURI, "Run",
			mcp.WithTemplateDescription("A single layer build by run id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		rr.handleRun,
	)

	mcpServer.AddResource(
		mcp.NewResource(ServerInfoURI, "Server info",
			mcp.WithResourceDescription("Server name, version and directories"),
			mcp.WithMIMEType("application/json"),
		),
		rr.handleServerInfo,
	)

	rr.logger.Info("Resource providers registered", "static_resources", 2, "templates", 1)
	return nil
}

func (rr *ResourceRegistrar) handleRuns(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	runs, err := rr.store.List(ctx, runsResourceMax)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, runs)
}

func (rr *ResourceRegistrar) handleRun(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(req.Params.URI, RunsURI+"/")
	if id == "" || id == req.Params.URI {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}
	run, err := rr.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, run)
}

func (rr *ResourceRegistrar) handleServerInfo(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	info := struct {
		ServerInfo
		Uptime string `json:"uptime"`
	}{rr.info, time.Since(rr.info.StartedAt).Round(time.Second).String()}
	return jsonContents(req.Params.URI, info)
}

func jsonContents(uri string, v interface{}) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
