package handlers

import (
	"net/http"

	"github.com/burgerhouse/storefront/internal/session"
)

const sessionCookie = "session_id"

// ensureSession resolves the client's session from its cookie, creating a
// new session (and setting the cookie) when none exists or it expired.
func ensureSession(w http.ResponseWriter, r *http.Request, mgr *session.Manager) *session.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if s, ok := mgr.Get(cookie.Value); ok {
			return s
		}
	}

	s := mgr.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}
