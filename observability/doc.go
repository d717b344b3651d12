// Package observability wires OpenTelemetry tracing and metrics, and the
// health model served on /health.
//
// Traces and metrics share one OTLP/HTTP destination:
//
//	exp := observability.Export{Endpoint: "collector:4318", Insecure: true}
//
//	tc := observability.DefaultTracerConfig("hello-api")
//	tc.Export = exp
//	tp, err := observability.InitTracer(ctx, tc)
//	defer tp.Shutdown(ctx)
//
//	mc := observability.DefaultMeterConfig("hello-api")
//	mc.Export = exp
//	mp, err := observability.InitMeter(ctx, mc)
//	defer mp.Shutdown(ctx)
//
// Every route records RouteMetrics when given them:
//
//	m, err := observability.NewRouteMetrics(observability.Meter("hello-api"))
//	h := ginroute.Handle(greet, route.WithMetrics(m))
//
// Health checks run concurrently; one down component takes the service down:
//
//	sh := observability.CheckAll(ctx, "hello-api", version.Version, dbCheck, cacheCheck)
package observability
