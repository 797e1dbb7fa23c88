package server

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const ctxKeySession ctxKey = iota

// sessionMiddleware resolves the Bearer token to a user session and
// injects it into the request context.
func sessionMiddleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(auth, "Bearer ")
			if !found || token == "" {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			sess, err := store.SessionUser(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFrom(r *http.Request) userSession {
	return r.Context().Value(ctxKeySession).(userSession)
}
