package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/wafflemkr/points/pkg/ctxutil"
)

const internalErrorBody = `{"errorKey":"internal","title":"Internal Server Error","message":"error.internal","status":500}`

// Recovery returns middleware that recovers from panics, logs the value
// with a stack trace, and responds with a 500 problem body.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
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
					w.Header().Set("Content-Type", "application/problem+json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(internalErrorBody)) //nolint:errcheck
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
