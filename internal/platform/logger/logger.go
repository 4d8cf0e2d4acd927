package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// New builds the process logger. Production config writes JSON, anything
// else gets the human-readable development encoder.
func New(appEnv string) *zap.Logger {
	if appEnv == "production" {
		l, err := zap.NewProduction()
		if err != nil {
			return zap.NewNop()
		}
		return l
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// responseWriter wraps http.ResponseWriter to capture the status code and
// response size for request logging.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	size, err := w.ResponseWriter.Write(b)
	w.size += size
	return size, err
}

// RequestLogger returns a middleware logging one structured line per request.
func RequestLogger(l *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wr := &responseWriter{ResponseWriter: w}
			next.ServeHTTP(wr, r)

			l.Info("http request",
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Int("status", wr.status),
				zap.Int("size", wr.size),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
