package config

import "time"

// Deployment modes accepted by ServerConfig.Mode.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	Sources SourcesConfig `mapstructure:"sources" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Mode selects the cross-origin policy: development allows any origin,
	// production only AllowedOrigins.
	Mode           string   `mapstructure:"mode" validate:"required,oneof=development production"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,url"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes" validate:"gt=0"`
	// WriteTimeoutSeconds bounds a whole request; generation calls are slow,
	// so this must exceed llm.request_timeout_seconds.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"gt=0"`
}

// IsProduction reports whether the strict cross-origin policy applies.
func (s ServerConfig) IsProduction() bool {
	return s.Mode == ModeProduction
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is not required at load time. A missing key is reported on
	// every generation call as a configuration error so the rest of the
	// service (health checks, extraction) keeps working.
	GeminiAPIKey   string   `mapstructure:"gemini_api_key"`
	BaseURL        string   `mapstructure:"base_url" validate:"omitempty,url"`
	TextModel      string   `mapstructure:"text_model" validate:"required"`
	AnalysisModel  string   `mapstructure:"analysis_model" validate:"required"`
	ImageModels    []string `mapstructure:"image_models" validate:"required,min=1,max=3,dive,required"`
	TimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// RequestTimeout returns the per-call generation timeout.
func (l LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// SourcesConfig contains settings for fetching and extracting source material.
type SourcesConfig struct {
	YouTubeBaseURL      string `mapstructure:"youtube_base_url" validate:"required,url"`
	FetchTimeoutSeconds int    `mapstructure:"fetch_timeout_seconds" validate:"gt=0"`
	MaxPageBytes        int64  `mapstructure:"max_page_bytes" validate:"gt=0"`
	MaxDocumentBytes    int64  `mapstructure:"max_document_bytes" validate:"gt=0"`
}

// FetchTimeout returns the timeout applied to outbound page fetches.
func (s SourcesConfig) FetchTimeout() time.Duration {
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}
