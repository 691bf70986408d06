package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/streletskiy/archimap-sub000/pkg/ctxutil"
)

const (
	internalErrorBody = `{"error":{"code":"INTERNAL","message":"internal server error"}}`
	unauthorizedBody  = `{"error":{"code":"UNAUTHORIZED","message":"invalid access token"}}`
	rateLimitedBody   = `{"error":{"code":"RATE_LIMITED","message":"rate limit exceeded"}}`
)

func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Recovery returns middleware that recovers from panics, logs the error
// with a stack trace, and responds with 500 in the API error envelope.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", err),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)
				writeError(w, http.StatusInternalServerError, internalErrorBody)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
