package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/bodycomp/pkg"

	log "github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// LogRequest logs every request with its status and duration. A request id
// is taken from the X-Request-ID header, or generated, and echoed back.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				if generated, err := pkg.GenerateRandomString(12); err == nil {
					requestID = generated
				}
			}
			w.Header().Set(RequestIDHeader, requestID)

			begin := time.Now()
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, r)

			log.WithFields(log.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     resp.statusCode,
				"duration":   time.Since(begin).String(),
				"user_agent": r.Header.Get("User-Agent"),
			}).Trace(" ====> request")
		})
	}
}
