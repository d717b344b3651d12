// Package config loads service configuration from YAML files, .env files
// and environment variables.
//
// Load resolves a config.yml and a .env file in conventional locations
// (or explicit paths), loads the .env file with godotenv, reads the YAML
// with viper and binds every mapstructure key of the target struct to an
// environment variable named after its path:
//
//	server.port       <- SERVER_PORT
//	auth.secret_token <- AUTH_SECRET_TOKEN
//
// Services embed ServiceConfig in their own struct:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Server server.Config `yaml:"server" mapstructure:"server"`
//	}
//
//	var cfg Config
//	if err := config.Load("hello-api", &cfg); err != nil { ... }
package config
