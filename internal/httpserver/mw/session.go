package mw

import (
	"net/http"

	"github.com/astral-cool/astral-web/internal/session"
)

// RequireSession lets only signed-in requests through. Others are sent to
// onFail, or get a bare 401 when onFail is nil. It must run inside the
// session manager's LoadAndSave.
func RequireSession(sessions *session.Manager, onFail http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := sessions.Get(r.Context()); !ok {
				if onFail != nil {
					onFail(w, r)
					return
				}
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const (
	cacheControlValue = "no-store, no-cache, must-revalidate, max-age=0"
	pragmaValue       = "no-cache"
	expiresValue      = "0"
)

// NoCache marks responses as private to the current session.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControlValue)
		w.Header().Set("Pragma", pragmaValue)
		w.Header().Set("Expires", expiresValue)
		next.ServeHTTP(w, r)
	})
}
