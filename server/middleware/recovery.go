package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/kbukum/funcroute/logger"
)

// Recovery returns middleware that recovers panics escaping the handler,
// logs them with the stack and answers 500.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				log.WithContext(r.Context()).Error("panic recovered", map[string]any{
					logger.FieldError:  fmt.Sprintf("%v", v),
					"stack":            string(debug.Stack()),
					logger.FieldPath:   r.URL.Path,
					logger.FieldMethod: r.Method,
				})
				writeJSON(w, http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
