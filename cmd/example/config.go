package main

import (
	"fmt"

	"github.com/kbukum/funcroute/auth/jwt"
	"github.com/kbukum/funcroute/config"
	"github.com/kbukum/funcroute/observability"
	"github.com/kbukum/funcroute/server"
	"github.com/kbukum/funcroute/validation"
)

// Config is the example service configuration.
type Config struct {
	config.ServiceConfig `mapstructure:",squash"`

	Server    server.Config   `yaml:"server" mapstructure:"server"`
	Auth      AuthConfig      `yaml:"auth" mapstructure:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// AuthConfig holds the credentials the routes check against.
type AuthConfig struct {
	// SecretToken guards POST /api/hello (env AUTH_SECRET_TOKEN).
	SecretToken string `yaml:"secret_token" mapstructure:"secret_token" validate:"required_without=SecretTokenHash"`
	// SecretTokenHash is a bcrypt hash used instead of SecretToken when set.
	SecretTokenHash string `yaml:"secret_token_hash" mapstructure:"secret_token_hash"`
	// JWT enables /api/token and /api/secure/hello when a secret is set.
	JWT jwt.Config `yaml:"jwt" mapstructure:"jwt"`
}

// TelemetryConfig enables OTLP export when Endpoint is set.
type TelemetryConfig struct {
	observability.Export `yaml:",inline" mapstructure:",squash"`
	SampleRate           float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Name == "" {
		c.Name = serviceName
	}
	c.Server.ApplyDefaults()
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := validation.Struct(c.Auth); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if c.Auth.JWT.Secret != "" {
		jc := c.Auth.JWT
		jc.ApplyDefaults()
		if err := jc.Validate(); err != nil {
			return fmt.Errorf("auth.jwt: %w", err)
		}
	}
	return validation.Struct(c.Telemetry)
}
