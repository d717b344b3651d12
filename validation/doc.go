// Package validation validates configuration structs with
// go-playground/validator tags.
//
//	type Config struct {
//	    Method string `mapstructure:"method" validate:"oneof=GET POST"`
//	    Port   int    `mapstructure:"port" validate:"gte=0,lte=65535"`
//	}
//	if err := validation.Struct(cfg); err != nil { ... }
//
// Field names in errors follow the mapstructure (or json) tag, falling back
// to snake_case of the Go field name. Failures are returned as
// *errors.AppError with code INVALID_INPUT and the per-field messages under
// details["fields"].
package validation
