package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/ouruniverse/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type operation struct {
	method, path, summary, description string
	req                                any
	resp                               any
	errors                             []int
}

var operations = []operation{
	{method: http.MethodGet, path: "/healthz", summary: "Health check",
		description: "Reports whether the content store is reachable.",
		resp:        health.Response{}, errors: []int{http.StatusServiceUnavailable}},
	{method: http.MethodGet, path: "/api/state", summary: "Journey state",
		description: "Current screen, game phase and the rendered #app fragment.",
		resp:        StateResponse{}, errors: []int{http.StatusUnauthorized}},
	{method: http.MethodPost, path: "/api/login", summary: "Log in",
		description: "Checks the secret. On failure the fragment carries the in-page error line.",
		req:         LoginRequest{}, resp: StateResponse{}, errors: []int{http.StatusBadRequest, http.StatusUnauthorized}},
	{method: http.MethodPost, path: "/api/journey/begin", summary: "Begin the journey",
		description: "Intro to timeline. Retries the music and fires confetti.",
		resp:        StateResponse{}, errors: []int{http.StatusConflict}},
	{method: http.MethodPost, path: "/api/journey/continue", summary: "Continue to the game",
		description: "Timeline to game intro.",
		resp:        StateResponse{}, errors: []int{http.StatusConflict}},
	{method: http.MethodPost, path: "/api/journey/final", summary: "Reveal the final message",
		description: "Moodboard to the final screen.",
		resp:        StateResponse{}, errors: []int{http.StatusConflict}},
	{method: http.MethodPost, path: "/api/journey/back", summary: "Previous screen",
		description: "Goes back one screen. Does nothing on the first one.",
		resp:        StateResponse{}},
	{method: http.MethodPost, path: "/api/game/start", summary: "Start the game",
		description: "Starts the rose collection and shows the game screen.",
		resp:        StateResponse{}, errors: []int{http.StatusConflict}},
	{method: http.MethodPost, path: "/api/game/tap", summary: "Catch a rose",
		description: "Registers a tap at x, y in pixels from the play area's corner.",
		req:         TapRequest{}, resp: StateResponse{}, errors: []int{http.StatusBadRequest, http.StatusConflict}},
	{method: http.MethodPost, path: "/api/game/answer", summary: "Answer the quiz",
		description: "Selects an option of the current question. Only the first answer counts.",
		req:         AnswerRequest{}, resp: StateResponse{}, errors: []int{http.StatusBadRequest, http.StatusConflict}},
	{method: http.MethodPost, path: "/api/game/land", summary: "Land after the reveal",
		description: "Finishes the game and unlocks the moodboard.",
		resp:        StateResponse{}, errors: []int{http.StatusConflict}},
	{method: http.MethodPost, path: "/api/love", summary: "Love",
		resp: LoveResponse{}},
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Our Universe API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("Drives one visitor's birthday journey. Sessions are carried by the journey_session cookie set on GET /.")

	for _, op := range operations {
		oc, _ := r.NewOperationContext(op.method, op.path)
		oc.SetSummary(op.summary)
		if op.description != "" {
			oc.SetDescription(op.description)
		}
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(http.StatusOK))
		for _, status := range op.errors {
			if status == http.StatusServiceUnavailable {
				oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(status))
				continue
			}
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("Page event stream")
	getEvents.SetDescription("Server-Sent Events: render carries the #app fragment, music asks the page to start playback.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/game/ws")
	getWS.SetSummary("Game socket")
	getWS.SetDescription("WebSocket taking {x, y} taps and answering with the collection score.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	getQR, _ := r.NewOperationContext(http.MethodGet, "/qr.png")
	getQR.SetSummary("QR code")
	getQR.SetDescription("PNG QR code pointing at the journey.")
	getQR.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("image/png"))
	_ = r.AddOperation(getQR)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
