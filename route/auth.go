package route

import (
	"github.com/kbukum/funcroute/auth"
)

// AuthChecker is the route-level auth check. It returns the response to
// send when the request is rejected, or nil to let it through.
type AuthChecker func(r auth.Request) *Response

// AdaptChecker converts a core auth.Checker into an AuthChecker whose
// rejection carries the same status and error body. Only a rejection with
// an error response short-circuits; a negative verdict without one lets the
// request through.
func AdaptChecker(c auth.Checker) AuthChecker {
	return func(r auth.Request) *Response {
		res := c.Check(r)
		if res.IsAuthorized || res.Error == nil {
			return nil
		}
		return &Response{Status: res.Error.Status, Body: res.Error.Body}
	}
}

// NoAuth lets every request through.
var NoAuth = AdaptChecker(auth.NoAuth)

// BearerToken requires the header "Authorization: Bearer <token>" exactly.
func BearerToken(token string) AuthChecker {
	return AdaptChecker(auth.BearerToken(token))
}
