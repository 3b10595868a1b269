package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gworkspace-mcp/internal/config"
)

func newTestServeCmd(t *testing.T) (*cobra.Command, *serveOptions) {
	t.Helper()
	opts := &serveOptions{}
	cmd := &cobra.Command{Use: "serve"}
	bindServeFlags(cmd, opts)
	return cmd, opts
}

func TestServeOptionsApplyOnlyChangedFlags(t *testing.T) {
	cmd, opts := newTestServeCmd(t)
	require.NoError(t, cmd.Flags().Set("read-only", "true"))
	require.NoError(t, cmd.Flags().Set("transport", config.TransportStreamableHTTP))

	cfg := config.Default()
	cfg.Server.HTTPAddr = ":1234"
	cfg.Metrics.Enabled = false

	opts.apply(cmd, &cfg)

	assert.True(t, cfg.Server.ReadOnly)
	assert.Equal(t, config.TransportStreamableHTTP, cfg.Server.Transport)
	// Unset flags keep the configured values, not the flag defaults.
	assert.Equal(t, ":1234", cfg.Server.HTTPAddr)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestServeOptionsFlagBeatsConfig(t *testing.T) {
	cmd, opts := newTestServeCmd(t)
	require.NoError(t, cmd.Flags().Set("metrics-enabled", "true"))
	require.NoError(t, cmd.Flags().Set("metrics-addr", ":9191"))
	require.NoError(t, cmd.Flags().Set("log-format", "json"))

	cfg := config.Default()
	cfg.Metrics.Enabled = false

	opts.apply(cmd, &cfg)

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9191", cfg.Metrics.Addr)
	assert.Equal(t, "json", cfg.Server.LogFormat)
}

func TestLoadConfigEnvironmentBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_addr: \":7000\"\n  read_only: true\n"), 0o600))

	t.Setenv(config.EnvConfigFile, path)
	t.Setenv("MCP_HTTP_ADDR", ":7001")
	t.Setenv("MCP_READ_ONLY", "")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Server.HTTPAddr)
	assert.True(t, cfg.Server.ReadOnly)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
