package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h, the first one outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger logs every request with its status and duration on clock.
// ?verbose=true raises the log level to debug for the request.
func requestLogger(clock quartz.Clock) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("verbose") == "true" {
				level := log.GetLevel()
				log.SetLevel(log.DebugLevel)
				defer log.SetLevel(level)
			}

			start := clock.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("Served request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", clock.Since(start),
			)
		})
	}
}
