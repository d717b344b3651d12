package route

import (
	"fmt"

	"github.com/kbukum/funcroute/validation"
)

// Method is the HTTP method a route accepts.
type Method string

const (
	GET  Method = "GET"
	POST Method = "POST"
)

// DefaultMethod is used when no method is configured.
const DefaultMethod = POST

// Config is the immutable per-route configuration.
type Config struct {
	// AuthCheck runs before anything else. Nil means NoAuth.
	AuthCheck AuthChecker `mapstructure:"-"`
	// Method must be GET or POST.
	Method Method `mapstructure:"method" validate:"oneof=GET POST"`
	// Name identifies the route in logs, spans and metrics.
	Name string `mapstructure:"name"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.AuthCheck == nil {
		c.AuthCheck = NoAuth
	}
	if c.Method == "" {
		c.Method = DefaultMethod
	}
	if c.Name == "" {
		c.Name = "route"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("route %q: %w", c.Name, err)
	}
	return nil
}
