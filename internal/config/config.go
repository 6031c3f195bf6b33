// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Modes in which updates can be received.
const (
	ModeWebhook = "webhook"
	ModePolling = "polling"
)

// Stores that can back jios.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// secretTokenPattern is the character set Telegram accepts for webhook secrets.
// The secret also becomes a URL path segment, so nothing else is allowed.
var secretTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,256}$`)

// Config is the complete runtime configuration.
type Config struct {
	BotToken    string `env:"BOT_TOKEN"`
	SecretToken string `env:"SECRET_TOKEN"`
	WebhookURL  string `env:"WEBHOOK_URL"`
	APIEndpoint string `env:"JIOBOT_API_ENDPOINT"` // empty means api.telegram.org

	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8000"`

	Mode          string `env:"JIOBOT_MODE" envDefault:"webhook"`
	Store         string `env:"JIOBOT_STORE" envDefault:"memory"`
	TelegramDebug bool   `env:"JIOBOT_TELEGRAM_DEBUG" envDefault:"false"`
	UpdateQueue   int    `env:"JIOBOT_UPDATE_QUEUE" envDefault:"100"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"JIOBOT_SERVICE_NAME" envDefault:"jiobot"`
}

// Load reads a .env file from the working directory, if any, then parses the
// environment. Variables already set in the environment win over .env values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return Parse()
}

// Parse parses the environment without touching .env files.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings needed to serve updates.
func (c *Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeWebhook:
		switch {
		case c.SecretToken == "":
			errs = append(errs, errors.New("SECRET_TOKEN is required in webhook mode"))
		case !secretTokenPattern.MatchString(c.SecretToken):
			errs = append(errs, errors.New("SECRET_TOKEN may only contain A-Z, a-z, 0-9, _ and - (at most 256 characters)"))
		}
	case ModePolling:
	default:
		errs = append(errs, fmt.Errorf("JIOBOT_MODE must be %q or %q, got %q", ModeWebhook, ModePolling, c.Mode))
	}

	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("JIOBOT_STORE must be %q or %q, got %q", StoreMemory, StoreSQLite, c.Store))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.UpdateQueue <= 0 {
		errs = append(errs, fmt.Errorf("JIOBOT_UPDATE_QUEUE must be positive, got %d", c.UpdateQueue))
	}
	return errors.Join(errs...)
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TracingEnabled reports whether spans should be exported.
func (c *Config) TracingEnabled() bool {
	return c.OTelEnabled && c.OTelEndpoint != ""
}
