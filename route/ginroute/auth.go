package ginroute

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/funcroute/auth"
	"github.com/kbukum/funcroute/route"
)

// AuthResponse is the gin-side auth verdict. ErrResponse is nil when the
// request may proceed.
type AuthResponse struct {
	ErrResponse *route.Response
}

// Checker checks a gin request.
type Checker func(c *gin.Context) AuthResponse

// AdaptChecker wraps a core checker. A rejection keeps the status and error
// body of the core result.
func AdaptChecker(core auth.Checker) Checker {
	check := route.AdaptChecker(core)
	return func(c *gin.Context) AuthResponse {
		return AuthResponse{ErrResponse: check(exchange{c: c})}
	}
}

// RequireAuth is gin middleware that aborts rejected requests with the
// checker's error response.
func RequireAuth(core auth.Checker) gin.HandlerFunc {
	check := AdaptChecker(core)
	return func(c *gin.Context) {
		if res := check(c); res.ErrResponse != nil {
			c.AbortWithStatusJSON(res.ErrResponse.Status, res.ErrResponse.Body)
			return
		}
		c.Next()
	}
}
