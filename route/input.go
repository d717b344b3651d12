package route

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ParseQuery parses a raw query string the way browsers build
// URLSearchParams: pairs split on '&' only, '+' means a space, and a '%'
// not followed by two hex digits is kept literally. Unlike url.ParseQuery
// it never drops a pair.
func ParseQuery(raw string) url.Values {
	q := url.Values{}
	for pair := range strings.SplitSeq(raw, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		q.Add(unescapeLenient(name), unescapeLenient(value))
	}
	return q
}

func unescapeLenient(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c <= 'F':
		return c - 'A' + 10
	default:
		return c - 'a' + 10
	}
}

// QueryMap flattens query parameters into a string map. For a repeated key
// the last value wins; an empty query yields an empty map.
func QueryMap(q url.Values) map[string]string {
	m := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			m[k] = vs[len(vs)-1]
		}
	}
	return m
}

// decodeInput extracts In from the request: the JSON body for POST, the
// flattened query string for GET.
func decodeInput[In any](ex Exchange, method Method) (In, error) {
	if method == GET {
		return fromQuery[In](ex.Query())
	}
	return fromBody[In](ex.Body())
}

func fromBody[In any](body io.Reader) (In, error) {
	var in In
	if body == nil {
		body = http.NoBody
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return in, fmt.Errorf("reading request body: %w", err)
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, err
	}
	return in, nil
}

// fromQuery hands the query map to In unchanged when In is a string map or
// an interface, and converts it through JSON otherwise. No validation is
// applied beyond what the conversion itself enforces.
func fromQuery[In any](q url.Values) (In, error) {
	var in In
	m := QueryMap(q)

	switch p := any(&in).(type) {
	case *map[string]string:
		*p = m
		return in, nil
	case *any:
		*p = m
		return in, nil
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, err
	}
	return in, nil
}
