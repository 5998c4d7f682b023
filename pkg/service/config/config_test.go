package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	base := t.TempDir()
	t.Setenv("MCP_BASE_DIR", base)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, "/mcp", cfg.MountPath)
	assert.True(t, cfg.ProxyHeaders)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.ForwardedAllowedIPs)
	assert.Equal(t, filepath.Join(base, "output"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(base, "output", ".homolo-runs.db"), cfg.StorePath)
	assert.Equal(t, 720*time.Hour, cfg.HistoryTTL)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.AuthEnabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_Environment(t *testing.T) {
	base := t.TempDir()
	t.Setenv("MCP_BASE_DIR", base)
	t.Setenv("PORT", "9090")
	t.Setenv("MCP_TRANSPORT", "stdio")
	t.Setenv("MCP_MOUNT_PATH", "api/mcp/")
	t.Setenv("MCP_BEARER_TOKEN", "  secret \n")
	t.Setenv("MCP_OUTPUT_DIR", "out")
	t.Setenv("MCP_FORWARDED_ALLOW_IPS", "10.0.0.1,10.0.0.2")
	t.Setenv("MCP_HISTORY_TTL", "2h")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "/api/mcp", cfg.MountPath)
	assert.Equal(t, "secret", cfg.BearerToken)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, filepath.Join(base, "out"), cfg.OutputDir)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.ForwardedAllowedIPs)
	assert.Equal(t, 2*time.Hour, cfg.HistoryTTL)
}

func TestLoad_ForwardedAllowIPsTrimmed(t *testing.T) {
	t.Setenv("MCP_BASE_DIR", t.TempDir())
	t.Setenv("MCP_FORWARDED_ALLOW_IPS", "127.0.0.1, 10.0.0.1 ,,")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.1"}, cfg.ForwardedAllowedIPs)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MCP_SERVICE_NAME=from-file\n"), 0o600))
	t.Setenv("MCP_BASE_DIR", dir)
	t.Cleanup(func() { os.Unsetenv("MCP_SERVICE_NAME") })

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ServiceName)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	t.Setenv("MCP_BASE_DIR", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoad_RootMountPathKept(t *testing.T) {
	t.Setenv("MCP_BASE_DIR", t.TempDir())
	t.Setenv("MCP_MOUNT_PATH", "/")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.MountPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"unknown transport", func(c *Config) { c.Transport = "grpc" }},
		{"relative mount path", func(c *Config) { c.MountPath = "mcp" }},
		{"zero ttl", func(c *Config) { c.HistoryTTL = 0 }},
		{"negative cleanup interval", func(c *Config) { c.CleanupInterval = -time.Second }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigurationInvalid))
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("MCP_BASE_DIR", t.TempDir())
	t.Setenv("PORT", "not-a-port")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigurationInvalid))
}
