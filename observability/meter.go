package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/funcroute/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string        `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string        `yaml:"service_version" mapstructure:"service_version"`
	Environment    string        `yaml:"environment" mapstructure:"environment"`
	Export         `yaml:",inline" mapstructure:",squash"`
	// Interval between exports; zero uses the SDK default of one minute.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns defaults for local development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Export:         localExport(),
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a global meter provider exporting over OTLP HTTP.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg MeterConfig) (*sdkmetric.MeterProvider, error) {
	exporter, err := otlpmetrichttp.New(ctx, cfg.metricOptions()...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Route metric names.
const (
	MetricRouteInvocations = "route.invocations"
	MetricRouteDuration    = "route.duration"
	MetricRouteActive      = "route.active"
)

// RouteMetrics holds the instruments recorded for every route invocation.
// A nil *RouteMetrics records nothing.
type RouteMetrics struct {
	invocations metric.Int64Counter
	duration    metric.Float64Histogram
	active      metric.Int64UpDownCounter
}

// NewRouteMetrics creates the route instruments on meter.
func NewRouteMetrics(meter metric.Meter) (*RouteMetrics, error) {
	invocations, err := meter.Int64Counter(MetricRouteInvocations,
		metric.WithDescription("Route invocations by route, method and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRouteInvocations, err)
	}

	duration, err := meter.Float64Histogram(MetricRouteDuration,
		metric.WithDescription("Route handling time"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRouteDuration, err)
	}

	active, err := meter.Int64UpDownCounter(MetricRouteActive,
		metric.WithDescription("Requests currently inside a route"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRouteActive, err)
	}

	return &RouteMetrics{invocations: invocations, duration: duration, active: active}, nil
}

// Start marks a request as active.
func (m *RouteMetrics) Start(ctx context.Context, route string) {
	if m == nil {
		return
	}
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String("route", route)))
}

// End records a finished request and clears its active mark.
func (m *RouteMetrics) End(ctx context.Context, route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.active.Add(ctx, -1, metric.WithAttributes(attribute.String("route", route)))
	m.invocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("method", method),
	))
}
