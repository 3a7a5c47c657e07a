package swcclient

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// BulkFormat selects the file extension and parser of the bulk path.
type BulkFormat string

const (
	BulkCSV     BulkFormat = "csv"
	BulkParquet BulkFormat = "parquet"
)

const (
	DefaultBulkFileBaseURL        = "https://raw.githubusercontent.com/Francisco-hub-eng/portfolio-project/main/bulk"
	DefaultBackoffMaxTime         = 30 * time.Second
	DefaultBackoffInitialInterval = 500 * time.Millisecond
	defaultHTTPTimeout            = 30 * time.Second
)

// Config is read once by New. The zero value of optional fields picks the defaults above.
type Config struct {
	BaseURL                string          `validate:"required,url"`
	Backoff                bool
	BackoffMaxTime         time.Duration   `validate:"gte=0"`
	BackoffInitialInterval time.Duration   `validate:"gte=0"`
	BulkFileFormat         BulkFormat      `validate:"omitempty,oneof=csv parquet"`
	BulkFileBaseURL        string          `validate:"omitempty,url"`
	HTTPClient             *http.Client    `validate:"-"`
	Logger                 *zerolog.Logger `validate:"-"`
}

// DefaultConfig returns a config with backoff enabled and CSV bulk files.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:                baseURL,
		Backoff:                true,
		BackoffMaxTime:         DefaultBackoffMaxTime,
		BackoffInitialInterval: DefaultBackoffInitialInterval,
		BulkFileFormat:         BulkCSV,
		BulkFileBaseURL:        DefaultBulkFileBaseURL,
	}
}

func (c *Config) setDefaults() {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	c.BulkFileFormat = BulkFormat(strings.ToLower(strings.TrimSpace(string(c.BulkFileFormat))))
	if c.BulkFileFormat == "" {
		c.BulkFileFormat = BulkCSV
	}
	if c.BulkFileBaseURL == "" {
		c.BulkFileBaseURL = DefaultBulkFileBaseURL
	}
	c.BulkFileBaseURL = strings.TrimSuffix(c.BulkFileBaseURL, "/")
	if c.BackoffMaxTime == 0 {
		c.BackoffMaxTime = DefaultBackoffMaxTime
	}
	if c.BackoffInitialInterval == 0 {
		c.BackoffInitialInterval = DefaultBackoffInitialInterval
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("swcclient config validation error: %w", err)
	}
	return nil
}
