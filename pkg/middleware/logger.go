package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewStructuredLogger is a custom middleware that provides structured logging for requests.
func NewStructuredLogger(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			tStart := time.Now()
			defer func() {
				status := ww.Status()
				latency := time.Since(tStart)

				var evt *zerolog.Event
				switch {
				case status >= 500:
					evt = log.Error()
				case status >= 400:
					// Rejected webhook traffic is expected noise.
					evt = log.Debug()
				default:
					evt = log.Info()
				}

				evt.
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Int("status", status).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", latency).
					Msg("request completed")
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
