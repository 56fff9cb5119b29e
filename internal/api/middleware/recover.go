package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/zatekoja/wanderlust/internal/api/views"
)

// RecoverMiddleware turns a handler panic into the 500 error view
func RecoverMiddleware(renderer views.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					serverError(renderer, w, r, fmt.Errorf("panic: %v\n%s", rec, debug.Stack()))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
