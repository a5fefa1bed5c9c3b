package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const sessionCookieName = "journey_session"

var errNoSession = errors.New("no journey session")

// visitorFromRequest reads the session cookie and looks up the live journey.
func visitorFromRequest(r *http.Request, sessions *Sessions) (*visitor, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, errNoSession
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil, errNoSession
	}
	v, ok := sessions.Get(cookie.Value)
	if !ok {
		return nil, errNoSession
	}
	return v, nil
}

func setSessionCookie(w http.ResponseWriter, id string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
