package route

import (
	"context"
	"io"
	"net/url"
)

// Exchange is one request/response pair as seen by a Route. Hosts
// implement it over their native request and response types.
type Exchange interface {
	Context() context.Context
	Method() string
	Path() string
	// GetHeader looks up a request header case-insensitively.
	GetHeader(name string) string
	Body() io.Reader
	Query() url.Values
	// WriteJSON sends status and an already encoded JSON body.
	WriteJSON(status int, body []byte)
}

// Handler serves exchanges. *Route implements it for every In and Out, so
// hosts can bind routes without knowing their type parameters.
type Handler interface {
	Serve(ex Exchange)
}
