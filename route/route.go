package route

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/funcroute/logger"
	"github.com/kbukum/funcroute/observability"
)

const (
	// SpanName is the name of the span started for every request.
	SpanName = "route.invoke"

	tracerName = "github.com/kbukum/funcroute/route"
)

// Func is the business function a Route exposes.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Route is an immutable adapter from a Func to an HTTP exchange. It is safe
// for concurrent use.
type Route[In, Out any] struct {
	fn      Func[In, Out]
	cfg     Config
	log     *logger.Logger
	metrics *observability.RouteMetrics
	tracer  trace.Tracer
}

// Build creates a Route, returning an error for an invalid configuration.
func Build[In, Out any](fn Func[In, Out], opts ...Option) (*Route[In, Out], error) {
	if fn == nil {
		return nil, errors.New("route: nil function")
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	s.cfg.ApplyDefaults()
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if s.log == nil {
		s.log = logger.WithComponent("route")
	}
	if s.tracer == nil {
		s.tracer = observability.Tracer(tracerName)
	}

	return &Route[In, Out]{
		fn:      fn,
		cfg:     s.cfg,
		log:     s.log,
		metrics: s.metrics,
		tracer:  s.tracer,
	}, nil
}

// New is like Build but panics on an invalid configuration.
func New[In, Out any](fn Func[In, Out], opts ...Option) *Route[In, Out] {
	r, err := Build(fn, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Config returns the route configuration.
func (r *Route[In, Out]) Config() Config { return r.cfg }

// Serve handles one exchange and always writes exactly one response.
func (r *Route[In, Out]) Serve(ex Exchange) {
	start := time.Now()
	ctx, span := r.tracer.Start(ex.Context(), SpanName,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("route.name", r.cfg.Name),
			semconv.HTTPRequestMethodKey.String(ex.Method()),
			semconv.URLPath(ex.Path()),
		),
	)
	defer span.End()

	status := http.StatusInternalServerError
	r.metrics.Start(ctx, r.cfg.Name)
	defer func() {
		r.metrics.End(ctx, r.cfg.Name, ex.Method(), status, time.Since(start))
	}()

	resp := r.handle(ctx, ex)
	body, err := encode(resp)
	if err != nil {
		resp = r.fail(ctx, ex, fmt.Errorf("encoding response: %w", err), false)
		body, _ = resp.Encode()
	}
	status = resp.Status

	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.Status))
	if resp.Status >= 500 {
		span.SetStatus(codes.Error, "route failed")
	}

	ex.WriteJSON(resp.Status, body)
}

// encode is Response.Encode with a panicking MarshalJSON reported as an error.
func encode(resp *Response) (body []byte, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()
	return resp.Encode()
}

func (r *Route[In, Out]) handle(ctx context.Context, ex Exchange) (resp *Response) {
	defer func() {
		if v := recover(); v != nil {
			resp = r.fail(ctx, ex, v, true)
		}
	}()

	if rejected := r.cfg.AuthCheck(ex); rejected != nil {
		r.log.WithContext(ctx).Warn("route request rejected", r.fields(ex,
			logger.FieldStatus, rejected.Status,
		))
		return rejected
	}

	if ex.Method() != string(r.cfg.Method) {
		r.log.WithContext(ctx).Debug("route method mismatch", r.fields(ex,
			"expected_method", string(r.cfg.Method),
		))
		return MethodMismatch(r.cfg.Method, ex.Method())
	}

	in, err := decodeInput[In](ex, r.cfg.Method)
	if err != nil {
		return r.fail(ctx, ex, err, false)
	}

	out, err := r.fn(ctx, in)
	if err != nil {
		return r.fail(ctx, ex, err, false)
	}
	return OK(out)
}

// fail logs v and turns it into the 500 response.
func (r *Route[In, Out]) fail(ctx context.Context, ex Exchange, v any, panicked bool) *Response {
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("%v", v)
	}
	trace.SpanFromContext(ctx).RecordError(err)

	r.log.WithContext(ctx).Error("route function failed", r.fields(ex,
		logger.FieldError, err.Error(),
		"panic", panicked,
	))
	return Failure(v)
}

func (r *Route[In, Out]) fields(ex Exchange, kvs ...any) map[string]any {
	f := logger.Fields(kvs...)
	f[logger.FieldOperation] = r.cfg.Name
	f[logger.FieldMethod] = ex.Method()
	f[logger.FieldPath] = ex.Path()
	return f
}
