// Package server hosts routes over HTTP.
//
// A Server runs a gin engine as the fallback handler of a root
// http.ServeMux, so gin routes and plain net/http handlers (a chi router,
// for instance) share one port. The mux is wrapped by h2c and by the
// server-level middleware from server/middleware, which therefore applies to
// both kinds of handler.
//
// # Middleware
//
// ApplyMiddleware installs, outermost first:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging with duration
//   - CORS: cross-origin headers and preflight answers
//   - BodySizeLimit: request body cap
//
// # Endpoints
//
// RegisterDefaultEndpoints adds (server/endpoint):
//
//   - /health: health aggregation over observability.HealthChecker
//   - /info: service and build information
//   - /version: build version information
package server
