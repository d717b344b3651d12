package observability

import (
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Export is the OTLP/HTTP destination shared by traces and metrics.
type Export struct {
	// Endpoint is host:port, e.g. "localhost:4318".
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	// Headers are sent with every export request, e.g. an API key.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

func (e Export) traceOptions() []otlptracehttp.Option {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(e.Endpoint)}
	if e.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(e.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(e.Headers))
	}
	return opts
}

func (e Export) metricOptions() []otlpmetrichttp.Option {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(e.Endpoint)}
	if e.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(e.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(e.Headers))
	}
	return opts
}

func localExport() Export {
	return Export{Endpoint: "localhost:4318", Insecure: true}
}

// newResource describes the service on every exported span and metric.
func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			semconv.DeploymentEnvironmentName(environment),
		),
	)
}
