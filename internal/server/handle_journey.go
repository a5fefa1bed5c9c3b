package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/playperu/ouruniverse/internal/journey"
)

// StateResponse is returned by every journey action. HTML is the current
// contents of #app.
type StateResponse struct {
	State journey.State `json:"state"`
	HTML  string        `json:"html"`
	Error string        `json:"error,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoveResponse struct {
	Message string `json:"message"`
}

// actionStatus maps a journey error to its HTTP status.
func actionStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, journey.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, journey.ErrOptionRange):
		return http.StatusBadRequest
	case errors.Is(err, journey.ErrWrongStep),
		errors.Is(err, journey.ErrUnknownStep),
		errors.Is(err, journey.ErrWrongPhase),
		errors.Is(err, journey.ErrAlreadyStarted),
		errors.Is(err, journey.ErrTapIgnored),
		errors.Is(err, journey.ErrAnswerIgnored):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// runAction runs act on the visitor's loop and answers with the resulting
// state and fragment.
func runAction(w http.ResponseWriter, r *http.Request, act func(j *journey.Journey) error) {
	v := visitorFrom(r)

	var (
		resp      StateResponse
		actErr    error
		renderErr error
	)
	err := v.do(r.Context(), func() {
		actErr = act(v.journey)
		resp.State = v.journey.State()
		resp.HTML, renderErr = v.fragment()
	})
	if errors.Is(err, journey.ErrLoopClosed) {
		writeError(w, http.StatusGone, "journey session ended")
		return
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "journey busy, try again")
		return
	}
	if renderErr != nil {
		v.logger.Error("rendering fragment failed", "error", renderErr)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := actionStatus(actErr)
	if status == http.StatusInternalServerError {
		v.logger.Error("journey action failed", "path", r.URL.Path, "error", actErr)
		resp.Error = "internal error"
	} else if actErr != nil {
		resp.Error = actErr.Error()
	}
	writeJSON(w, status, resp)
}

func handleState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runAction(w, r, func(*journey.Journey) error { return nil })
	}
}

func handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		runAction(w, r, func(j *journey.Journey) error {
			err := j.Login(req.Username, req.Password)
			if err == nil {
				visitorFrom(r).logger.Info("visitor logged in", "username", strings.TrimSpace(req.Username))
			}
			return err
		})
	}
}

func handleStep(act func(j *journey.Journey) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runAction(w, r, act)
	}
}

func handleLove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := visitorFrom(r)
		var msg string
		if err := v.do(r.Context(), func() { msg = v.journey.Love() }); err != nil {
			writeError(w, http.StatusGone, "journey session ended")
			return
		}
		writeJSON(w, http.StatusOK, LoveResponse{Message: msg})
	}
}
