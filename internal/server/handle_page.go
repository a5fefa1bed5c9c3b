package server

import (
	"net/http"
	"time"
)

// handlePage serves the visitor's current page, starting a journey when the
// request carries no live session.
func handlePage(sessions *Sessions, cookieAge time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := visitorFromRequest(r, sessions)
		if err != nil {
			v, err = sessions.Create()
			if err != nil {
				sessions.logger.Error("creating session failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			setSessionCookie(w, v.id, cookieAge)
		}

		var page string
		var renderErr error
		if err := v.do(r.Context(), func() { page, renderErr = v.page() }); err != nil {
			http.Error(w, "journey session ended, reload the page", http.StatusGone)
			return
		}
		if renderErr != nil {
			v.logger.Error("rendering page failed", "error", renderErr)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page))
	}
}
