package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/infrastructure/logger"
)

// LoggingMiddleware attaches a request-scoped logger to the context and
// logs every completed request.
type LoggingMiddleware struct {
	logger zerolog.Logger
}

// NewLoggingMiddleware creates a new LoggingMiddleware.
func NewLoggingMiddleware(logger zerolog.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// Wrap wraps an http.Handler with logging. It must run after RequestID and
// Caller.
func (m *LoggingMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		caller, _ := domain.CallerIDFromContext(r.Context())
		ctx := logger.WithRequest(r.Context(), m.logger, RequestIDFromContext(r.Context()), caller)

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		event := logger.FromContext(ctx).Info()
		switch {
		case wrapped.statusCode >= http.StatusInternalServerError:
			event = logger.FromContext(ctx).Error()
		case wrapped.statusCode >= http.StatusBadRequest:
			event = logger.FromContext(ctx).Warn()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("request completed")
	})
}

type statusRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
