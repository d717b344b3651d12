package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/funcroute/errors"
)

type limits struct {
	MaxBody string `mapstructure:"max_body" validate:"required"`
}

type sample struct {
	Method   string `mapstructure:"method" validate:"oneof=GET POST"`
	Port     int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Retries  int    `json:"retries" validate:"min=1"`
	HostName string `validate:"required"`
	Limits   limits `mapstructure:"limits"`
}

func validSample() sample {
	return sample{Method: "POST", Port: 8080, Retries: 1, HostName: "localhost", Limits: limits{MaxBody: "1MB"}}
}

func TestStructValid(t *testing.T) {
	if err := Struct(validSample()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStructInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
		field  string
		msg    string
	}{
		{"oneof", func(s *sample) { s.Method = "PUT" }, "method", "must be one of: GET POST"},
		{"lte", func(s *sample) { s.Port = 70000 }, "port", "must be less than or equal to 65535"},
		{"json tag name", func(s *sample) { s.Retries = 0 }, "retries", "must be at least 1"},
		{"snake case fallback", func(s *sample) { s.HostName = "" }, "host_name", "is required"},
		{"nested path", func(s *sample) { s.Limits.MaxBody = "" }, "limits.max_body", "is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSample()
			tc.mutate(&s)

			err := Struct(s)
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != errors.ErrCodeInvalidInput {
				t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
			}

			fields, ok := appErr.Details["fields"].([]FieldError)
			if !ok || len(fields) != 1 {
				t.Fatalf("expected one field error, got %v", appErr.Details["fields"])
			}
			if fields[0].Field != tc.field || fields[0].Message != tc.msg {
				t.Errorf("expected %s %q, got %+v", tc.field, tc.msg, fields[0])
			}
			if !strings.Contains(appErr.Message, tc.field) {
				t.Errorf("message should name the field: %s", appErr.Message)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		"HostName":    "host_name",
		"ReadTimeout": "read_timeout",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
