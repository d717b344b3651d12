package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication/Authorization errors
const (
	// ErrCodeUnauthorized indicates the request carried no acceptable credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the credentials were accepted but lack permission.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeTokenExpired indicates the bearer token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates the bearer token failed validation.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Request errors
const (
	// ErrCodeMethodMismatch indicates the request method differs from the route's method.
	ErrCodeMethodMismatch ErrorCode = "METHOD_MISMATCH"
	// ErrCodeInvalidInput indicates the input or configuration is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodePayloadTooLarge indicates the request body exceeds the server limit.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// ErrCodeInternal indicates an internal server error.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// String returns the code as a plain string.
func (c ErrorCode) String() string { return string(c) }
