package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Data source modes for chart CSV files.
const (
	SourceLocal = "local"
	SourceHTTP  = "http"
	SourceGCS   = "gcs"
)

// Config holds all configuration for the chart service
type Config struct {
	// Server configuration
	Port         string `env:"PORT,default=8981"`
	DefaultWidth int    `env:"DEFAULT_WIDTH,default=960"`

	// Data source configuration
	DataSource   string        `env:"DATA_SOURCE,default=local"`
	DataDir      string        `env:"DATA_DIR,default=./data"`
	DataBaseURL  string        `env:"DATA_BASE_URL"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT,default=0s"`
	FetchRetries int           `env:"FETCH_RETRIES,default=0"`
	MockupMode   bool          `env:"MOCKUP_MODE,default=false"`

	// GCP configuration (data source and export target)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Export configuration
	ExportDir    string `env:"EXPORT_DIR,default=./exports"`
	ChartsConfig string `env:"CHARTS_CONFIG"`

	// OpenAI configuration, narratives are skipped without a key
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1-mini"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations envconfig cannot express.
func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceLocal:
	case SourceHTTP:
		if c.DataBaseURL == "" {
			return fmt.Errorf("DATA_BASE_URL is required when DATA_SOURCE=%s", SourceHTTP)
		}
	case SourceGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when DATA_SOURCE=%s", SourceGCS)
		}
	default:
		return fmt.Errorf("unsupported DATA_SOURCE %q", c.DataSource)
	}
	if c.DefaultWidth <= 0 {
		return fmt.Errorf("DEFAULT_WIDTH must be positive, got %d", c.DefaultWidth)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("FETCH_RETRIES must not be negative, got %d", c.FetchRetries)
	}
	return nil
}

// NarrativesEnabled reports whether chart narratives can be requested.
func (c *Config) NarrativesEnabled() bool {
	return c.OpenAIAPIKey != ""
}
