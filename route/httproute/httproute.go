// Package httproute hosts routes on net/http. The handlers work with any
// router built on http.Handler, such as chi or http.ServeMux.
package httproute

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/kbukum/funcroute/route"
)

type exchange struct {
	w http.ResponseWriter
	r *http.Request
}

func (e exchange) Context() context.Context     { return e.r.Context() }
func (e exchange) Method() string               { return e.r.Method }
func (e exchange) Path() string                 { return e.r.URL.Path }
func (e exchange) GetHeader(name string) string { return e.r.Header.Get(name) }
func (e exchange) Query() url.Values            { return route.ParseQuery(e.r.URL.RawQuery) }

func (e exchange) Body() io.Reader {
	if e.r.Body == nil {
		return nil
	}
	return e.r.Body
}

func (e exchange) WriteJSON(status int, body []byte) {
	e.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	e.w.WriteHeader(status)
	_, _ = e.w.Write(body)
}

// Bind returns an http.HandlerFunc serving h.
func Bind(h route.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Serve(exchange{w: w, r: r})
	}
}

// Handle builds a route from fn and binds it. It panics on an invalid
// configuration.
func Handle[In, Out any](fn route.Func[In, Out], opts ...route.Option) http.HandlerFunc {
	return Bind(route.New(fn, opts...))
}
