package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the service configuration, parsed from environment variables.
type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR"       envDefault:":4000"`
	MongoURI      string        `env:"MONGO_URI"`
	MongoDatabase string        `env:"MONGO_DATABASE"  envDefault:"icencookies"`
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTIssuer     string        `env:"JWT_ISSUER"      envDefault:"icencookies"`
	JWTExpiresIn  time.Duration `env:"JWT_EXPIRES_IN"  envDefault:"720h"`
	CookieName    string        `env:"COOKIE_NAME"     envDefault:"token"`
	CookieSecure  bool          `env:"COOKIE_SECURE"   envDefault:"false"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"10m"`
	ResetURL      string        `env:"RESET_URL"       envDefault:"http://localhost:3000/reset-password"`
	StripeKey     string        `env:"STRIPE_SECRET_KEY"`
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.StripeKey == "" {
		return fmt.Errorf("missing STRIPE_SECRET_KEY environment variable")
	}

	return nil
}
