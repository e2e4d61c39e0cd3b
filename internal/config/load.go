package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "VYASA"

// Default values applied before any file or environment source.
var defaults = map[string]any{
	"server.port":                  5000,
	"server.log_level":             "info",
	"server.mode":                  ModeDevelopment,
	"server.allowed_origins":       []string{"https://vyasa.netlify.app", "http://vyasa.netlify.app"},
	"server.max_upload_bytes":      32 << 20,
	"server.write_timeout_seconds": 300,

	"llm.gemini_api_key": "",
	"llm.base_url":       "",
	"llm.text_model":     "gemini-2.0-flash",
	"llm.analysis_model": "gemini-2.5-pro",
	"llm.image_models": []string{
		"gemini-2.0-flash-exp-image-generation",
		"imagen-3.0-generate-002",
		"gemini-1.5-flash",
	},
	"llm.request_timeout_seconds": 120,

	"sources.youtube_base_url":      "https://www.youtube.com",
	"sources.fetch_timeout_seconds": 15,
	"sources.max_page_bytes":        10 << 20,
	"sources.max_document_bytes":    25 << 20,
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given YAML file instead of
// searching for config.yaml in the working directory. An empty path falls
// back to the search.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed names used by hosting platforms.
	if err := v.BindEnv("llm.gemini_api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
