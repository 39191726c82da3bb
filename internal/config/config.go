package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"IUMS"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"iums"`
	}

	Auth struct {
		// Secret signs the API bearer tokens. Must be overridden outside local dev.
		Secret   string        `envconfig:"JWT_SECRET" default:"dev-secret"`
		TokenTTL time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	SMTP struct {
		Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
		Port     int    `envconfig:"SMTP_PORT" default:"587"`
		Username string `envconfig:"SMTP_USERNAME"`
		Password string `envconfig:"SMTP_PASSWORD"`
	}

	Reminder struct {
		// Interval between due-date reminder sweeps. Zero disables the sweeper.
		Interval time.Duration `envconfig:"REMINDER_INTERVAL" default:"0"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// SMTPConfigured reports whether outgoing mail credentials are present.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.Username != "" && c.SMTP.Password != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
