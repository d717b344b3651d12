// Package errors defines the structured error shapes that funcroute writes to
// clients, along with AppError, an error type that knows its HTTP status and
// machine-readable code.
//
// The wire form of a failure is ErrorResponse: a status plus an ErrorBody with
// a human message, an optional code and optional details.
//
//	err := errors.Unauthorized("Invalid or missing bearer token")
//	resp := err.ToResponse() // {401, {"Unauthorized", "UNAUTHORIZED", {"reason": ...}}}
package errors
