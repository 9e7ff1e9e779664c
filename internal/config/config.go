// Package config provides server configuration with multi-source priority.
//
// Sources (highest to lowest priority):
//  1. Environment variables (IOT_MCP_* prefix)
//  2. Config file (~/.oci-iot-mcp/config.yaml, or ./config.yaml)
//  3. Defaults
//
// The OCI profile and config-file settings here are passed to the client
// factory as the explicit values of its fallback chain; the factory itself
// still honors OCI_CONFIG_PROFILE and OCI_CONFIG_FILE when these are unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Transport values accepted by the serve command.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

var (
	// ErrInvalidTransport indicates an unknown transport name.
	ErrInvalidTransport = errors.New("invalid transport")

	// ErrMissingHTTPAddr indicates the HTTP transport was selected without
	// a listen address.
	ErrMissingHTTPAddr = errors.New("missing http listen address")

	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config holds the server settings.
type Config struct {
	// Profile is the OCI config profile passed to the client factory.
	// Empty means "resolve via OCI_CONFIG_PROFILE, then DEFAULT".
	Profile string `mapstructure:"profile"`

	// ConfigFile overrides the OCI config file path (~/.oci/config).
	ConfigFile string `mapstructure:"config_file"`

	// Transport selects how the MCP server is exposed: stdio or http.
	Transport string `mapstructure:"transport"`

	// HTTPAddr is the listen address for the http transport.
	HTTPAddr string `mapstructure:"http_addr"`

	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`

	Otel OtelConfig `mapstructure:"otel"`
}

// OtelConfig controls optional OTLP trace export.
type OtelConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	Environment string `mapstructure:"environment"`
}

// Load reads configuration from file, environment, and defaults.
// A missing config file is not an error; invalid values are.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".oci-iot-mcp"))
	}
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("profile", "")
	v.SetDefault("config_file", "")
	v.SetDefault("transport", TransportStdio)
	v.SetDefault("http_addr", "127.0.0.1:8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "localhost:4318")
	v.SetDefault("otel.environment", "dev")
}

func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("profile", "IOT_MCP_PROFILE")
	mustBind("config_file", "IOT_MCP_CONFIG_FILE")
	mustBind("transport", "IOT_MCP_TRANSPORT")
	mustBind("http_addr", "IOT_MCP_HTTP_ADDR")
	mustBind("log_level", "IOT_MCP_LOG_LEVEL")
	mustBind("log_json", "IOT_MCP_LOG_JSON")
	mustBind("otel.enabled", "IOT_MCP_OTEL_ENABLED")
	mustBind("otel.endpoint", "IOT_MCP_OTEL_ENDPOINT")
	mustBind("otel.environment", "IOT_MCP_OTEL_ENVIRONMENT")
}

// Validate checks the configuration, fail-fast.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("%w: %q (want %q or %q)",
			ErrInvalidTransport, c.Transport, TransportStdio, TransportHTTP)
	}

	if c.Transport == TransportHTTP && c.HTTPAddr == "" {
		return ErrMissingHTTPAddr
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
