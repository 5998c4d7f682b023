package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	version := getVersion()
	if !strings.Contains(version, "dev") {
		t.Errorf("Expected version to contain 'dev', got: %s", version)
	}

	Version = "1.0.0"
	GitCommit = "abc123"
	BuildTime = "2024-01-01T00:00:00Z"

	version = getVersion()
	expected := "v1.0.0 (commit: abc123, built: 2024-01-01T00:00:00Z)"
	if version != expected {
		t.Errorf("Expected version '%s', got: %s", expected, version)
	}

	Version = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
}

func TestParseSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseSlogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseSlogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel("bogus"))
}

func TestApplyFlagOverrides_OnlyExplicitFlags(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MCP_MOUNT_PATH", "/mcp")
	t.Setenv("MCP_PROXY_HEADERS", "false")

	flags, err := parseFlags([]string{"--port", "9000", "--proxy-headers"}, io.Discard)
	require.NoError(t, err)
	require.NoError(t, applyFlagOverrides(flags))

	assert.Equal(t, "9000", os.Getenv("PORT"))
	assert.Equal(t, "true", os.Getenv("MCP_PROXY_HEADERS"))
	assert.Equal(t, "/mcp", os.Getenv("MCP_MOUNT_PATH"))
}

func TestLoadAndConfigureServer(t *testing.T) {
	base := t.TempDir()
	t.Setenv("MCP_BASE_DIR", base)
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("MCP_MOUNT_PATH", "/mcp")
	t.Setenv("PORT", "8080")

	flags, err := parseFlags([]string{"--env-file", "", "--mount-path", "/", "--transport", "stdio"}, io.Discard)
	require.NoError(t, err)

	cfg, err := loadAndConfigureServer(flags)
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.MountPath)
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, base, cfg.BaseDir)
}

func TestParseFlags_Unknown(t *testing.T) {
	_, err := parseFlags([]string{"--nope"}, io.Discard)
	assert.Error(t, err)
}
