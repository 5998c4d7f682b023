package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transport names
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config holds the server settings read from the environment.
type Config struct {
	// Network
	Host      string `envconfig:"MCP_HOST" default:"0.0.0.0"`
	Port      int    `envconfig:"PORT" default:"8080"`
	Transport string `envconfig:"MCP_TRANSPORT" default:"http"`
	MountPath string `envconfig:"MCP_MOUNT_PATH" default:"/mcp"`

	// Security
	BearerToken         string   `envconfig:"MCP_BEARER_TOKEN" json:"-"`
	ProxyHeaders        bool     `envconfig:"MCP_PROXY_HEADERS" default:"true"`
	ForwardedAllowedIPs []string `envconfig:"MCP_FORWARDED_ALLOW_IPS" default:"127.0.0.1"`

	// Filesystem
	BaseDir     string `envconfig:"MCP_BASE_DIR"`
	OutputDir   string `envconfig:"MCP_OUTPUT_DIR"`
	StorePath   string `envconfig:"MCP_STORE_PATH"`
	AliasesFile string `envconfig:"MCP_ALIASES_FILE"`

	// Run history
	HistoryTTL      time.Duration `envconfig:"MCP_HISTORY_TTL" default:"720h"`
	CleanupInterval time.Duration `envconfig:"MCP_CLEANUP_INTERVAL" default:"1h"`

	// Logging and service identification
	LogLevel       string `envconfig:"MCP_LOG_LEVEL" default:"info"`
	ServiceName    string `envconfig:"MCP_SERVICE_NAME" default:"homolo-mcp"`
	ServiceVersion string `envconfig:"MCP_SERVICE_VERSION" default:"dev"`

	MetricsEnabled  bool          `envconfig:"MCP_METRICS_ENABLED" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"MCP_SHUTDOWN_TIMEOUT" default:"30s"`
}

// Load reads an optional env file, decodes the environment and validates
// the result. A missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.New(errors.CodeConfigurationInvalid, "config", "failed to read environment", err)
	}
	cfg.applyDerivedDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() *Config {
	cfg := &Config{
		Host:                "0.0.0.0",
		Port:                8080,
		Transport:           TransportHTTP,
		MountPath:           "/mcp",
		ProxyHeaders:        true,
		ForwardedAllowedIPs: []string{"127.0.0.1"},
		HistoryTTL:          720 * time.Hour,
		CleanupInterval:     time.Hour,
		LogLevel:            "info",
		ServiceName:         "homolo-mcp",
		ServiceVersion:      "dev",
		MetricsEnabled:      true,
		ShutdownTimeout:     30 * time.Second,
	}
	cfg.applyDerivedDefaults()
	return cfg
}

// applyDerivedDefaults fills paths that depend on other settings.
func (c *Config) applyDerivedDefaults() {
	c.BearerToken = strings.TrimSpace(c.BearerToken)
	if c.BaseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			c.BaseDir = wd
		} else {
			c.BaseDir = "."
		}
	}
	if abs, err := filepath.Abs(c.BaseDir); err == nil {
		c.BaseDir = abs
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "output")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if c.StorePath == "" {
		c.StorePath = filepath.Join(c.OutputDir, ".homolo-runs.db")
	}
	if c.MountPath != "/" {
		c.MountPath = "/" + strings.Trim(c.MountPath, "/")
	}
	ips := c.ForwardedAllowedIPs[:0]
	for _, ip := range c.ForwardedAllowedIPs {
		if ip = strings.TrimSpace(ip); ip != "" {
			ips = append(ips, ip)
		}
	}
	c.ForwardedAllowedIPs = ips
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New(errors.CodeConfigurationInvalid, "config", fmt.Sprintf("port must be between 1 and 65535, got %d", c.Port), nil)
	}
	if c.Transport != TransportHTTP && c.Transport != TransportStdio {
		return errors.New(errors.CodeConfigurationInvalid, "config", fmt.Sprintf("transport must be one of: http, stdio, got %q", c.Transport), nil)
	}
	if !strings.HasPrefix(c.MountPath, "/") {
		return errors.New(errors.CodeConfigurationInvalid, "config", "mount path must start with /", nil)
	}
	if c.HistoryTTL <= 0 {
		return errors.New(errors.CodeConfigurationInvalid, "config", "history_ttl must be positive", nil)
	}
	if c.CleanupInterval <= 0 {
		return errors.New(errors.CodeConfigurationInvalid, "config", "cleanup_interval must be positive", nil)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return errors.New(errors.CodeConfigurationInvalid, "config", "log_level must be one of: debug, info, warn, error", nil)
	}
	return nil
}

// Addr returns the listen address for the HTTP transport.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthEnabled reports whether a bearer token is required.
func (c *Config) AuthEnabled() bool {
	return c.BearerToken != ""
}
