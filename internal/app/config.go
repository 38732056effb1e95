package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// PGDSN is optional; when empty the in-memory repositories are used and
	// all data resets on restart.
	PGDSN string `envconfig:"PG_DSN" default:""`

	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"10m"`

	// Mock scanner delays.
	StoreScanDelay   time.Duration `envconfig:"STORE_SCAN_DELAY" default:"3s"`
	ProductScanDelay time.Duration `envconfig:"PRODUCT_SCAN_DELAY" default:"2s"`

	// Checkout weight-verification timings.
	CheckoutInitialDelay time.Duration `envconfig:"CHECKOUT_INITIAL_DELAY" default:"2s"`
	CheckoutStepWeight   float64       `envconfig:"CHECKOUT_STEP_WEIGHT" default:"0.2"`
	CheckoutStepInterval time.Duration `envconfig:"CHECKOUT_STEP_INTERVAL" default:"500ms"`
	CheckoutHold         time.Duration `envconfig:"CHECKOUT_HOLD" default:"1s"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
