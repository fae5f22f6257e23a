// Package requesttime pins one "now" per HTTP request so every timestamp
// written while serving it agrees.
package requesttime

import (
	"net/http"
	"time"

	"signup/pkg/requestcontext"
)

// Middleware stores the request start time in the context. Read it with
// requestcontext.Now.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock.
func MiddlewareWithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
