// Package ginroute hosts routes on a gin engine.
package ginroute

import (
	"context"
	"io"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/funcroute/route"
)

const contentTypeJSON = "application/json; charset=utf-8"

// exchange implements route.Exchange on a gin context.
type exchange struct {
	c *gin.Context
}

func (e exchange) Context() context.Context     { return e.c.Request.Context() }
func (e exchange) Method() string               { return e.c.Request.Method }
func (e exchange) Path() string                 { return e.c.Request.URL.Path }
func (e exchange) GetHeader(name string) string { return e.c.GetHeader(name) }
func (e exchange) Query() url.Values            { return route.ParseQuery(e.c.Request.URL.RawQuery) }

func (e exchange) Body() io.Reader {
	if e.c.Request.Body == nil {
		return nil
	}
	return e.c.Request.Body
}

func (e exchange) WriteJSON(status int, body []byte) {
	e.c.Data(status, contentTypeJSON, body)
}

// Bind returns a gin handler serving h.
func Bind(h route.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.Serve(exchange{c: c})
	}
}

// Handle builds a route from fn and binds it. It panics on an invalid
// configuration, like route.New.
//
//	engine.GET("/api/hello", ginroute.Handle(hello, route.WithMethod(route.GET)))
func Handle[In, Out any](fn route.Func[In, Out], opts ...route.Option) gin.HandlerFunc {
	return Bind(route.New(fn, opts...))
}
