package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds the HTTP host settings.
type AppConfig struct {
	Host        string `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"APP_PORT" default:"8080"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"*"`
	AdminSecret string `envconfig:"ADMIN_SECRET"`
}

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_DATABASE" default:"dj_booking"`
	User     string `envconfig:"DB_USERNAME" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// CRMConfig holds the GoHighLevel credentials.
type CRMConfig struct {
	APIKey     string        `envconfig:"GHL_API_KEY"`
	LocationID string        `envconfig:"GHL_LOCATION_ID"`
	Enabled    bool          `envconfig:"GHL_ENABLED" default:"true"`
	BaseURL    string        `envconfig:"GHL_BASE_URL" default:"https://rest.gohighlevel.com/v1"`
	PipelineID string        `envconfig:"GHL_PIPELINE_ID"`
	Timeout    time.Duration `envconfig:"GHL_TIMEOUT" default:"30s"`
	BatchDelay time.Duration `envconfig:"GHL_BATCH_DELAY" default:"200ms"`
}

// StripeConfig holds both credential pairs; TestMode picks the active one.
type StripeConfig struct {
	TestMode           bool          `envconfig:"STRIPE_TEST_MODE" default:"true"`
	LiveSecretKey      string        `envconfig:"STRIPE_LIVE_SECRET_KEY"`
	LivePublishableKey string        `envconfig:"STRIPE_LIVE_PUBLISHABLE_KEY"`
	TestSecretKey      string        `envconfig:"STRIPE_TEST_SECRET_KEY"`
	TestPublishableKey string        `envconfig:"STRIPE_TEST_PUBLISHABLE_KEY"`
	Currency           string        `envconfig:"STRIPE_CURRENCY" default:"GBP"`
	Timeout            time.Duration `envconfig:"STRIPE_TIMEOUT" default:"30s"`
}

type Config struct {
	App    AppConfig
	DB     DBConfig
	CRM    CRMConfig
	Stripe StripeConfig
}

// Load reads an optional .env file and then the process environment.
// The returned value is treated as read-only by every consumer.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	sections := []struct {
		name   string
		target interface{}
	}{
		{"app", &cfg.App},
		{"db", &cfg.DB},
		{"crm", &cfg.CRM},
		{"stripe", &cfg.Stripe},
	}
	for _, s := range sections {
		if err := envconfig.Process("", s.target); err != nil {
			return nil, fmt.Errorf("load %s config: %w", s.name, err)
		}
	}
	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Configured reports whether the CRM engine should be active at all.
func (c CRMConfig) Configured() bool {
	return c.Enabled && c.APIKey != "" && c.LocationID != ""
}

func (c StripeConfig) SecretKey() string {
	if c.TestMode {
		return c.TestSecretKey
	}
	return c.LiveSecretKey
}

func (c StripeConfig) PublishableKey() string {
	if c.TestMode {
		return c.TestPublishableKey
	}
	return c.LivePublishableKey
}

// DSN builds the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}
