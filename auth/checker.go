package auth

import (
	"net/http"

	"github.com/kbukum/funcroute/errors"
)

// HeaderAuthorization is the header bearer checkers read.
const HeaderAuthorization = "Authorization"

// bearerPrefix is matched exactly, including case and the single space.
const bearerPrefix = "Bearer "

// ReasonInvalidBearer is reported when the bearer header is missing or wrong.
const ReasonInvalidBearer = "Invalid or missing bearer token"

// Request is the part of an incoming request a Checker may inspect.
// GetHeader must be case-insensitive in name.
type Request interface {
	GetHeader(name string) string
}

// AuthResult is the verdict of a Checker. Error is set only when
// IsAuthorized is false.
type AuthResult struct {
	IsAuthorized bool
	Error        *errors.ErrorResponse
}

// Authorized returns a positive verdict.
func Authorized() AuthResult {
	return AuthResult{IsAuthorized: true}
}

// Rejected returns a negative verdict carrying the response for err.
func Rejected(err *errors.AppError) AuthResult {
	resp := err.ToResponse()
	return AuthResult{IsAuthorized: false, Error: &resp}
}

// Checker decides whether a request is authorized.
type Checker interface {
	Check(r Request) AuthResult
}

// CheckerFunc adapts an ordinary function to the Checker interface.
type CheckerFunc func(r Request) AuthResult

// Check implements Checker.
func (f CheckerFunc) Check(r Request) AuthResult {
	return f(r)
}

// NoAuth authorizes every request.
var NoAuth Checker = CheckerFunc(func(Request) AuthResult {
	return Authorized()
})

// BearerToken returns a Checker that authorizes a request only when its
// Authorization header is exactly "Bearer " + expected. Any other value,
// including a missing header, differing case or extra whitespace, is
// rejected with a 401 UNAUTHORIZED response.
func BearerToken(expected string) Checker {
	want := bearerPrefix + expected
	return CheckerFunc(func(r Request) AuthResult {
		if r.GetHeader(HeaderAuthorization) == want {
			return Authorized()
		}
		return Rejected(errors.Unauthorized(ReasonInvalidBearer))
	})
}

type httpRequest struct {
	header http.Header
}

func (r httpRequest) GetHeader(name string) string {
	return r.header.Get(name)
}

// FromHTTP adapts a *http.Request to Request.
func FromHTTP(r *http.Request) Request {
	return httpRequest{header: r.Header}
}

// FromHeader adapts a header map to Request.
func FromHeader(h http.Header) Request {
	return httpRequest{header: h}
}
