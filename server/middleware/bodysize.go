package middleware

import (
	"net/http"

	"github.com/kbukum/funcroute/errors"
	"github.com/kbukum/funcroute/util"
)

const defaultMaxBodySize = 10 << 20

// BodySizeLimit returns middleware that caps request bodies at maxSize
// ("10MB", "512KB", ...). An unparsable size falls back to 10MB.
//
// Requests that declare a larger Content-Length are answered with 413
// up front. Bodies without a length are cut off while being read, which
// surfaces as a read error in the handler.
func BodySizeLimit(maxSize string) Middleware {
	limit := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				resp := errors.PayloadTooLarge(limit).ToResponse()
				writeJSON(w, resp.Status, resp.Body)
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
