package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/riposo/finder/pkg/auth"
	"github.com/riposo/finder/pkg/identity"
)

const requestIDHeader = "X-Request-Id"

// Request ID middleware. Valid IDs supplied by clients are retained.
func requestID(gen identity.Generator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if !identity.IsValid(id) {
				id = gen()
			}

			w.Header().Set(requestIDHeader, id)
			ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authentication middleware.
func authenticate(method auth.Method) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := method.Authenticate(r)
			if errors.Is(err, auth.ErrUnauthenticated) {
				w.Header().Set("WWW-Authenticate", `Basic realm="finder"`)
				renderError(w, errUnauthorized)
				return
			} else if err != nil {
				renderError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}
