package route_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/kbukum/funcroute/route"
)

// fakeExchange is an in-memory Exchange.
type fakeExchange struct {
	ctx     context.Context
	method  string
	path    string
	header  http.Header
	body    string
	query   string
	status  int
	written []byte
	writes  int
}

func newExchange(method, target, body string) *fakeExchange {
	u, _ := url.Parse(target)
	return &fakeExchange{
		ctx:    context.Background(),
		method: method,
		path:   u.Path,
		header: http.Header{},
		body:   body,
		query:  u.RawQuery,
	}
}

func (e *fakeExchange) Context() context.Context     { return e.ctx }
func (e *fakeExchange) Method() string               { return e.method }
func (e *fakeExchange) Path() string                 { return e.path }
func (e *fakeExchange) GetHeader(name string) string { return e.header.Get(name) }
func (e *fakeExchange) Body() io.Reader              { return strings.NewReader(e.body) }

func (e *fakeExchange) Query() url.Values {
	return route.ParseQuery(e.query)
}

func (e *fakeExchange) WriteJSON(status int, body []byte) {
	e.status = status
	e.written = body
	e.writes++
}

func (e *fakeExchange) decode(t *testing.T) map[string]any {
	t.Helper()
	if e.writes != 1 {
		t.Fatalf("expected exactly one write, got %d", e.writes)
	}
	var m map[string]any
	if err := json.Unmarshal(e.written, &m); err != nil {
		t.Fatalf("response is not a JSON object: %s", e.written)
	}
	return m
}
