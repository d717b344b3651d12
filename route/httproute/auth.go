package httproute

import (
	"github.com/kbukum/funcroute/auth"
	"github.com/kbukum/funcroute/server/middleware"
)

// RequireAuth returns middleware rejecting requests that fail core. The
// rejection is written as the checker's JSON error body.
func RequireAuth(core auth.Checker) middleware.Middleware {
	return middleware.Auth(middleware.AuthConfig{Checker: core})
}
