// Package config loads service configuration from the environment.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the service configuration.
type Config struct {
	// HTTPAddr is the listen address of the HTTP server.
	HTTPAddr string `mapstructure:"http_addr"`

	// LogLevel is one of debug, info, warn, error, fatal.
	LogLevel string `mapstructure:"log_level"`

	// OpenAIAPIKey authenticates against the completion API.
	OpenAIAPIKey string `mapstructure:"openai_api_key"`

	// OpenAIBaseURL points at an OpenAI-compatible endpoint; empty for the
	// default.
	OpenAIBaseURL string `mapstructure:"openai_base_url"`

	// ModelName is the default completion model.
	ModelName string `mapstructure:"model_name"`

	// TraceEndpoint is the OTLP collector endpoint; empty disables tracing.
	TraceEndpoint string `mapstructure:"trace_endpoint"`

	// TraceProtocol is the OTLP transport, "grpc" or "http".
	TraceProtocol string `mapstructure:"trace_protocol"`
}

// Load reads the configuration from TRIPWEAVER_* environment variables with
// sensible defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("tripweaver")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("model_name", "gpt-4o-mini")
	v.SetDefault("trace_protocol", "grpc")

	// Bind explicitly so AutomaticEnv sees keys that were never Set.
	for _, key := range []string{
		"http_addr", "log_level", "openai_api_key", "openai_base_url",
		"model_name", "trace_endpoint", "trace_protocol",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
