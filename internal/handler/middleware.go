package handler

import (
	"net/http"

	"homebook/internal/session"
)

// RequireSession redirects unauthenticated access to the login entry
// point. Protected pages never render without a token present.
func RequireSession(sess *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sess.IsAuthenticated() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
