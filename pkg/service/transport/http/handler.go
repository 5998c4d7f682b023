// Package http serves MCP over streamable HTTP with health, metrics and
// bearer authentication.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/homolo/homolo-mcp/pkg/infrastructure/observability"
)

// Options configures the HTTP transport.
type Options struct {
	Addr            string
	MountPath       string
	BearerToken     string
	ProxyHeaders    bool
	TrustedProxies  []string
	ServiceName     string
	ShutdownTimeout time.Duration
}

// Handler implements HTTP transport for MCP
type Handler struct {
	logger  *slog.Logger
	opts    Options
	metrics *observability.Metrics
}

// NewHandler creates a new HTTP handler. metrics may be nil.
func NewHandler(logger *slog.Logger, opts Options, metrics *observability.Metrics) *Handler {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.MountPath == "" {
		opts.MountPath = "/mcp"
	}
	if opts.MountPath != "/" {
		opts.MountPath = "/" + strings.Trim(opts.MountPath, "/")
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "homolo-mcp"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 30 * time.Second
	}
	return &Handler{
		logger:  logger.With("component", "http_handler"),
		opts:    opts,
		metrics: metrics,
	}
}

// Serve starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (h *Handler) Serve(ctx context.Context, mcpServer *server.MCPServer) error {
	h.logger.Info("Starting HTTP transport",
		"addr", h.opts.Addr,
		"mount_path", h.opts.MountPath,
		"auth", h.opts.BearerToken != "",
		"proxy_headers", h.opts.ProxyHeaders)

	httpServer := &http.Server{
		Addr:         h.opts.Addr,
		Handler:      h.Router(mcpServer),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // streamable HTTP keeps GET streams open
		IdleTimeout:  120 * time.Second,
	}

	transportDone := make(chan error, 1)
	go func() {
		transportDone <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		h.logger.Info("Shutting down HTTP transport")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.opts.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-transportDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("HTTP transport stopped with error", "error", err)
			return err
		}
		h.logger.Info("HTTP transport stopped gracefully")
		return nil
	}
}

// Router builds the full handler tree: middleware chain, tracing and routes.
func (h *Handler) Router(mcpServer *server.MCPServer) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet, http.MethodHead)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	}

	mcpHandler := server.NewStreamableHTTPServer(mcpServer)
	r.HandleFunc("/", h.handleRoot).Methods(http.MethodGet, http.MethodHead)
	if h.opts.MountPath == "/" {
		r.Handle("/", mcpHandler)
	} else {
		r.Handle(h.opts.MountPath, mcpHandler)
		r.Handle(h.opts.MountPath+"/", mcpHandler)
	}

	chain := alice.New(
		ProxyHeaders(h.opts.ProxyHeaders, h.opts.TrustedProxies),
		RequestLogger(h.logger),
		CORS,
		BearerAuth(h.opts.BearerToken),
	)

	handler := chain.Then(otelhttp.NewHandler(r, h.opts.ServiceName))
	if h.metrics != nil {
		handler = h.metrics.InstrumentHandler(handler)
	}
	return handler
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	hint := fmt.Sprintf("Use %s/ as the MCP server URL (with trailing slash).", h.opts.MountPath)
	if h.opts.MountPath == "/" {
		hint = "MCP mounted at root; use POST with MCP client."
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "hint": hint})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
