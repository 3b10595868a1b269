package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, DefaultHTTPAddr, cfg.Server.HTTPAddr)
	assert.False(t, cfg.Server.ReadOnly)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultExportLockTimeout, cfg.Export.LockTimeout)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.Google.HasCredentials())
}

func TestLoad_File(t *testing.T) {
	for _, key := range []string{"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REFRESH_TOKEN", "MCP_TRANSPORT", "MCP_READ_ONLY", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	path := writeFile(t, `
google:
  client_id: file-client
  client_secret: file-secret
  refresh_token: file-refresh
server:
  transport: streamable-http
  http_addr: 127.0.0.1:9000
  read_only: true
export:
  lock_timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-client", cfg.Google.ClientID)
	assert.True(t, cfg.Google.HasCredentials())
	assert.Equal(t, TransportStreamableHTTP, cfg.Server.Transport)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddr)
	assert.True(t, cfg.Server.ReadOnly)
	assert.Equal(t, 5*time.Second, cfg.Export.LockTimeout)
	assert.True(t, cfg.Metrics.Enabled, "unset keys keep their defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "google:\n  client_id: file-client\n")
	t.Setenv("GOOGLE_CLIENT_ID", "env-client")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "env-refresh")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-client", cfg.Google.ClientID)
	assert.Equal(t, "env-refresh", cfg.Google.RefreshToken)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = Load(writeFile(t, "server: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"GOOGLE_CLIENT_SECRET": "s3cret",
		"MCP_TRANSPORT":        TransportStreamableHTTP,
		"MCP_READ_ONLY":        "true",
		"METRICS_ENABLED":      "false",
		"METRICS_ADDR":         ":9191",
	}))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Google.ClientSecret)
	assert.Equal(t, TransportStreamableHTTP, cfg.Server.Transport)
	assert.True(t, cfg.Server.ReadOnly)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9191", cfg.Metrics.Addr)
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{"MCP_READ_ONLY": "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MCP_READ_ONLY")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "default", mutate: func(*Config) {}},
		{name: "unknown transport", mutate: func(c *Config) { c.Server.Transport = "sse" }, wantErr: "unsupported transport type"},
		{name: "http without addr", mutate: func(c *Config) {
			c.Server.Transport = TransportStreamableHTTP
			c.Server.HTTPAddr = ""
		}, wantErr: "http address is required"},
		{name: "zero lock timeout", mutate: func(c *Config) { c.Export.LockTimeout = 0 }, wantErr: "lock timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMissingCredentials(t *testing.T) {
	g := GoogleConfig{ClientID: "id"}
	assert.Equal(t, []string{"GOOGLE_CLIENT_SECRET", "GOOGLE_REFRESH_TOKEN"}, g.MissingCredentials())
	assert.Empty(t, GoogleConfig{ClientID: "a", ClientSecret: "b", RefreshToken: "c"}.MissingCredentials())
}
