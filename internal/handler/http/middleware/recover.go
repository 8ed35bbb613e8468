package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http/response"
)

// Recover turns a panic in a handler into the generic fallback response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("Panic recovered",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			response.Unexpected(w)
		}()

		next.ServeHTTP(w, r)
	})
}
