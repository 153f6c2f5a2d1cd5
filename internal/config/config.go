package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Fan-out
	SourceTimeout time.Duration `envconfig:"SOURCE_TIMEOUT" default:"10s"`

	// Delhivery
	DelhiveryAPIToken string `envconfig:"DELHIVERY_API_TOKEN"`
	DelhiveryBaseURL  string `envconfig:"DELHIVERY_BASE_URL" default:"https://track.delhivery.com"`
	DelhiveryEnabled  bool   `envconfig:"DELHIVERY_ENABLED" default:"true"`
	DelhiveryUseMock  bool   `envconfig:"DELHIVERY_USE_MOCK" default:"false"`

	// Xpressbees
	XpressbeesEmail     string `envconfig:"XPRESSBEES_EMAIL"`
	XpressbeesPassword  string `envconfig:"XPRESSBEES_PASSWORD"`
	XpressbeesAccountID string `envconfig:"XPRESSBEES_ACCOUNT_ID"`
	XpressbeesBaseURL   string `envconfig:"XPRESSBEES_BASE_URL" default:"https://shipment.xpressbees.com/api"`
	XpressbeesEnabled   bool   `envconfig:"XPRESSBEES_ENABLED" default:"true"`
	XpressbeesUseMock   bool   `envconfig:"XPRESSBEES_USE_MOCK" default:"false"`

	// Token cache
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"12h"`

	// Plan store
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"shipmint-rateengine"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("delhivery.enabled", c.DelhiveryEnabled),
		attribute.Bool("xpressbees.enabled", c.XpressbeesEnabled),
	}
}
