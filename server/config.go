package server

import (
	"time"

	"github.com/kbukum/funcroute/server/middleware"
	"github.com/kbukum/funcroute/validation"
)

// Config holds HTTP server configuration. Durations accept Go syntax in
// YAML and the environment ("15s", "1m30s").
type Config struct {
	Host string `yaml:"host" mapstructure:"host"`
	// Port 0 binds an ephemeral port; see Server.Addr.
	Port int `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`

	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" validate:"gte=0"`

	MaxBodySize string                `yaml:"max_body_size" mapstructure:"max_body_size"`
	CORS        middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

var defaultCORSHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	setDefault(&c.Port, 8080)
	setDefault(&c.ReadTimeout, 15*time.Second)
	setDefault(&c.WriteTimeout, 15*time.Second)
	setDefault(&c.IdleTimeout, time.Minute)
	setDefault(&c.ShutdownTimeout, 5*time.Second)
	setDefault(&c.MaxBodySize, "1MB")

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = defaultCORSHeaders
	}
	if len(c.CORS.ExposedHeaders) == 0 {
		c.CORS.ExposedHeaders = []string{middleware.HeaderRequestID}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	return validation.Struct(c)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
