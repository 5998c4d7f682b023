package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/homolo/homolo-mcp/pkg/api"
	"github.com/homolo/homolo-mcp/pkg/service"
	"github.com/homolo/homolo-mcp/pkg/service/config"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version of the application
	Version = "dev"
	// GitCommit is the git commit SHA at build time
	GitCommit = "unknown"
	// BuildTime is the time of the build
	BuildTime = "unknown"
)

// flagEnv maps command line flags to the environment keys they override.
var flagEnv = map[string]string{
	"transport":           "MCP_TRANSPORT",
	"host":                "MCP_HOST",
	"port":                "PORT",
	"mount-path":          "MCP_MOUNT_PATH",
	"proxy-headers":       "MCP_PROXY_HEADERS",
	"forwarded-allow-ips": "MCP_FORWARDED_ALLOW_IPS",
	"base-dir":            "MCP_BASE_DIR",
	"output-dir":          "MCP_OUTPUT_DIR",
	"store-path":          "MCP_STORE_PATH",
	"aliases":             "MCP_ALIASES_FILE",
	"log-level":           "MCP_LOG_LEVEL",
	"metrics":             "MCP_METRICS_ENABLED",
}

// FlagConfig holds all command line flags
type FlagConfig struct {
	envFile *string
	version *bool
	set     *flag.FlagSet
}

// parseFlags parses command line flags. Only flags given explicitly override
// the environment.
func parseFlags(args []string, output io.Writer) (*FlagConfig, error) {
	fs := flag.NewFlagSet("mcp-server", flag.ContinueOnError)
	fs.SetOutput(output)

	flags := &FlagConfig{
		envFile: fs.String("env-file", ".env", "Path to an optional .env file"),
		version: fs.Bool("version", false, "Show version information"),
		set:     fs,
	}
	fs.String("transport", "", "Transport type (http, stdio)")
	fs.String("host", "", "Address to bind the HTTP server to")
	fs.Int("port", 0, "Port to bind the HTTP server to")
	fs.String("mount-path", "", "Path the MCP endpoint is served at (/ mounts at the root)")
	fs.Bool("proxy-headers", false, "Trust X-Forwarded-For and X-Forwarded-Proto from allowed peers")
	fs.String("forwarded-allow-ips", "", "Comma-separated peers whose proxy headers are trusted, or *")
	fs.String("base-dir", "", "Directory relative input paths resolve against")
	fs.String("output-dir", "", "Directory relative output paths resolve against")
	fs.String("store-path", "", "Run history database path")
	fs.String("aliases", "", "YAML file with column alias overrides")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.Bool("metrics", true, "Expose Prometheus metrics at /metrics")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// applyFlagOverrides exports explicitly set flags to the environment so
// config.Load sees them ahead of any other source.
func applyFlagOverrides(flags *FlagConfig) error {
	var err error
	flags.set.Visit(func(f *flag.Flag) {
		key, ok := flagEnv[f.Name]
		if !ok || err != nil {
			return
		}
		err = os.Setenv(key, f.Value.String())
	})
	return err
}

func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if *flags.version {
		fmt.Println(getVersion())
		os.Exit(0)
	}

	cfg, err := loadAndConfigureServer(flags)
	if err != nil {
		log.Error().Err(err).Msg("Failed to configure server")
		os.Exit(1)
	}

	mcpServer, err := createAndConfigureServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create server")
		os.Exit(1)
	}

	runServerWithShutdown(mcpServer, cfg.ShutdownTimeout)
}

// loadAndConfigureServer loads configuration and applies flag overrides
func loadAndConfigureServer(flags *FlagConfig) (*config.Config, error) {
	if err := applyFlagOverrides(flags); err != nil {
		return nil, fmt.Errorf("failed to apply flags: %w", err)
	}

	cfg, err := config.Load(*flags.envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.ServiceVersion == "dev" && Version != "dev" {
		cfg.ServiceVersion = Version
	}

	setupLogging(cfg.LogLevel)
	return cfg, nil
}

// createAndConfigureServer creates the MCP server
func createAndConfigureServer(cfg *config.Config) (api.MCPServer, error) {
	event := log.Info().
		Str("version", getVersion()).
		Str("transport", cfg.Transport).
		Str("base_dir", cfg.BaseDir).
		Str("output_dir", cfg.OutputDir).
		Bool("auth", cfg.AuthEnabled())
	if cfg.Transport == config.TransportHTTP {
		event = event.Str("addr", cfg.Addr()).Str("mount_path", cfg.MountPath)
	}
	event.Msg("Starting homolo MCP server")

	slogLogger := createSlogLogger(cfg.LogLevel)

	mcpServer, err := service.InitializeServer(slogLogger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}
	return mcpServer, nil
}

// createSlogLogger creates a structured logger for dependency injection
func createSlogLogger(logLevel string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseSlogLevel(logLevel),
	})
	return slog.New(handler)
}

// parseSlogLevel converts string log level to slog.Level
func parseSlogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// runServerWithShutdown runs the server until a signal arrives or it fails.
func runServerWithShutdown(mcpServer api.MCPServer, shutdownTimeout time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		select {
		case <-serverErr:
		case <-time.After(shutdownTimeout):
			log.Warn().Msg("Transport did not stop in time")
		}

	case err := <-serverErr:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Server failed")
			exitCode = 1
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := mcpServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// setupLogging configures structured logging
func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

// getVersion returns the version information
func getVersion() string {
	if Version == "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
	}
	return fmt.Sprintf("v%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}
