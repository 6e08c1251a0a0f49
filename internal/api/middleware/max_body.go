package middleware

import (
	"net/http"

	"github.com/gridvoice/gridvoice/internal/api"
)

// MaxBodyBytes caps request body size at limit bytes. Bodies with a known
// oversize Content-Length are rejected up front; chunked bodies are cut
// off by a MaxBytesReader once the limit is crossed.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || r.Body == nil {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength != -1 && r.ContentLength > limit {
				api.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
