package server

import (
	"net/http"

	"github.com/playperu/ouruniverse/internal/journey"
)

// TapRequest is a catch in the play area, in pixels from its top-left corner.
type TapRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type AnswerRequest struct {
	Option *int `json:"option"`
}

func handleGameStart() http.HandlerFunc {
	return handleStep((*journey.Journey).StartGame)
}

func handleTap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TapRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		runAction(w, r, func(j *journey.Journey) error {
			return j.Game().Tap(req.X, req.Y)
		})
	}
}

func handleAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Option == nil {
			writeError(w, http.StatusBadRequest, "option is required")
			return
		}
		runAction(w, r, func(j *journey.Journey) error {
			return j.Game().Answer(*req.Option)
		})
	}
}

func handleLand() http.HandlerFunc {
	return handleStep((*journey.Journey).Land)
}
