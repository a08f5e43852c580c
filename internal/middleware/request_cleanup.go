package middleware

import (
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds assessment payloads, notes included.
const MaxRequestBodyBytes = 64 << 10

// DrainAndCloseRequest caps the request body at maxBodyBytes, so decoding an
// oversized assessment fails instead of buffering it. After the handler, the
// unread rest of the body (up to the cap) is drained and the body closed.
func DrainAndCloseRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
