package middleware

import (
	"net/http"
	"strings"

	"github.com/kbukum/funcroute/auth"
)

// AuthConfig configures the Auth middleware.
type AuthConfig struct {
	// Checker decides whether a request may pass.
	Checker auth.Checker
	// SkipPaths are URL path prefixes that bypass the check.
	SkipPaths []string
}

// Auth returns middleware that runs cfg.Checker on every request and
// answers rejected ones with the checker's status and error body.
func Auth(cfg AuthConfig) Middleware {
	checker := cfg.Checker
	if checker == nil {
		checker = auth.NoAuth
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.SkipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			// A rejection without an error response is not enforced.
			res := checker.Check(auth.FromHTTP(r))
			if !res.IsAuthorized && res.Error != nil {
				writeJSON(w, res.Error.Status, res.Error.Body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
