package route

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/funcroute/auth"
	"github.com/kbukum/funcroute/logger"
	"github.com/kbukum/funcroute/observability"
)

// Option configures a Route.
type Option func(*settings)

type settings struct {
	cfg     Config
	log     *logger.Logger
	metrics *observability.RouteMetrics
	tracer  trace.Tracer
}

// WithConfig replaces the whole route configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithAuth sets the auth check.
func WithAuth(check AuthChecker) Option {
	return func(s *settings) { s.cfg.AuthCheck = check }
}

// WithChecker sets the auth check from a core auth.Checker.
func WithChecker(c auth.Checker) Option {
	return WithAuth(AdaptChecker(c))
}

// WithMethod sets the accepted HTTP method.
func WithMethod(m Method) Option {
	return func(s *settings) { s.cfg.Method = m }
}

// WithName names the route for logs, spans and metrics.
func WithName(name string) Option {
	return func(s *settings) { s.cfg.Name = name }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithMetrics records invocation metrics on m.
func WithMetrics(m *observability.RouteMetrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithTracer sets the tracer used for the per-request span.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) { s.tracer = t }
}
