package route

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a host-neutral JSON response: a status and a body to encode.
type Response struct {
	Status int
	Body   any
}

// DataBody is the success envelope.
type DataBody struct {
	Data any `json:"data"`
}

// FailureBody is the 500 envelope. Error holds the error message, or the
// raw value a panic was raised with.
type FailureBody struct {
	Error any `json:"error"`
}

// MethodMismatchBody is the 400 body for a request with the wrong method.
type MethodMismatchBody struct {
	FuncToRouteMethod string `json:"funcToRouteMethod"`
	RequestMethod     string `json:"requestMethod"`
	Message           string `json:"message"`
}

// MessageMethodMismatch is the message of every MethodMismatchBody.
const MessageMethodMismatch = "Method mismatch"

// OK builds the 200 response for a function result.
func OK(data any) *Response {
	return &Response{Status: http.StatusOK, Body: DataBody{Data: data}}
}

// MethodMismatch builds the 400 response for a method mismatch.
func MethodMismatch(configured Method, actual string) *Response {
	return &Response{
		Status: http.StatusBadRequest,
		Body: MethodMismatchBody{
			FuncToRouteMethod: string(configured),
			RequestMethod:     actual,
			Message:           MessageMethodMismatch,
		},
	}
}

// Failure builds the 500 response for v. Errors are reported by message,
// other values are echoed as they are. Values JSON cannot encode are
// formatted with fmt.Sprint.
func Failure(v any) *Response {
	var body any
	switch e := v.(type) {
	case error:
		body = e.Error()
	default:
		if _, err := json.Marshal(v); err != nil {
			body = fmt.Sprint(v)
		} else {
			body = v
		}
	}
	return &Response{Status: http.StatusInternalServerError, Body: FailureBody{Error: body}}
}

// Encode returns the JSON encoding of the response body.
func (r *Response) Encode() ([]byte, error) {
	return json.Marshal(r.Body)
}
