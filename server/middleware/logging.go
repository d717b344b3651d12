package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/kbukum/funcroute/logger"
)

// fieldBytes is the response size in bytes.
const fieldBytes = "bytes"

// Probe endpoints. Requests to them are not logged.
var quietPaths = []string{"/health", "/info", "/version"}

// RequestLogger returns middleware that writes one line per request.
// Server errors log at error level, client errors at warn, the rest at debug.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(quietPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := recordResponse(w)
			next.ServeHTTP(rec, r)

			status := rec.Status()
			fields := logger.DurationFields("http.request", time.Since(start))
			fields[logger.FieldMethod] = r.Method
			fields[logger.FieldPath] = r.URL.Path
			fields[logger.FieldStatus] = status
			fields[fieldBytes] = rec.bytes
			l := log.WithContext(r.Context())
			switch {
			case status >= http.StatusInternalServerError:
				l.Error("request completed", fields)
			case status >= http.StatusBadRequest:
				l.Warn("request completed", fields)
			default:
				l.Debug("request completed", fields)
			}
		})
	}
}
