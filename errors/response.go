package errors

import (
	stderrors "errors"
	"maps"
)

// ErrorBody is the JSON body sent to clients for structured failures.
type ErrorBody struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse pairs an ErrorBody with the HTTP status it is sent with.
// It is framework-agnostic; host adapters turn it into a native response.
type ErrorResponse struct {
	Status int       `json:"status"`
	Body   ErrorBody `json:"body"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
// Details are copied so later mutation of the error does not leak into the body.
func (e *AppError) ToResponse() ErrorResponse {
	var details map[string]any
	if len(e.Details) > 0 {
		details = maps.Clone(e.Details)
	}
	return ErrorResponse{
		Status: e.HTTPStatus,
		Body: ErrorBody{
			Message: e.Message,
			Code:    string(e.Code),
			Details: details,
		},
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
