// Package config loads server settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport names accepted by the serve command.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

// Defaults.
const (
	DefaultHTTPAddr          = ":8080"
	DefaultMetricsAddr       = ":9090"
	DefaultExportLockTimeout = 30 * time.Second
)

// EnvConfigFile names the environment variable holding the config file path.
const EnvConfigFile = "GWORKSPACE_MCP_CONFIG"

// Config is the complete server configuration.
type Config struct {
	Google  GoogleConfig  `yaml:"google"`
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
	Export  ExportConfig  `yaml:"export"`
}

// GoogleConfig holds the OAuth client and the long-lived refresh token.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
}

// ServerConfig selects the MCP transport.
type ServerConfig struct {
	Transport string `yaml:"transport"`
	HTTPAddr  string `yaml:"http_addr"`
	ReadOnly  bool   `yaml:"read_only"`
	Debug     bool   `yaml:"debug"`
	LogFormat string `yaml:"log_format"`
}

// MetricsConfig controls the dedicated Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ExportConfig controls exports written to local disk.
type ExportConfig struct {
	// LockTimeout bounds how long an export waits for another writer of the same path.
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Transport: TransportStdio,
			HTTPAddr:  DefaultHTTPAddr,
			LogFormat: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    DefaultMetricsAddr,
		},
		Export: ExportConfig{
			LockTimeout: DefaultExportLockTimeout,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path and then with
// the environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set and non-empty.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not a boolean", key, v)
		}
		*dst = parsed
		return nil
	}

	setString("GOOGLE_CLIENT_ID", &c.Google.ClientID)
	setString("GOOGLE_CLIENT_SECRET", &c.Google.ClientSecret)
	setString("GOOGLE_REFRESH_TOKEN", &c.Google.RefreshToken)
	setString("MCP_TRANSPORT", &c.Server.Transport)
	setString("MCP_HTTP_ADDR", &c.Server.HTTPAddr)
	setString("LOG_FORMAT", &c.Server.LogFormat)
	setString("METRICS_ADDR", &c.Metrics.Addr)

	return errors.Join(
		setBool("MCP_READ_ONLY", &c.Server.ReadOnly),
		setBool("METRICS_ENABLED", &c.Metrics.Enabled),
	)
}

// Validate checks settings that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", c.Server.Transport)
	}
	if c.Server.Transport == TransportStreamableHTTP && c.Server.HTTPAddr == "" {
		return fmt.Errorf("http address is required for the streamable-http transport")
	}
	if c.Export.LockTimeout <= 0 {
		return fmt.Errorf("export lock timeout must be positive, got %s", c.Export.LockTimeout)
	}
	return nil
}

// HasCredentials reports whether all three OAuth values are present.
func (g GoogleConfig) HasCredentials() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RefreshToken != ""
}

// MissingCredentials lists the environment variables that are still empty.
func (g GoogleConfig) MissingCredentials() []string {
	var missing []string
	if g.ClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if g.ClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if g.RefreshToken == "" {
		missing = append(missing, "GOOGLE_REFRESH_TOKEN")
	}
	return missing
}
