package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// TapReply answers every tap received over the game socket.
type TapReply struct {
	Score  int    `json:"score"`
	Target int    `json:"target"`
	Active bool   `json:"active"`
	Error  string `json:"error,omitempty"`
}

// handleGameSocket takes taps over a websocket. The page still receives the
// rendered result over its event stream.
func handleGameSocket(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := visitorFrom(r)

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Minute)
		defer cancel()

		for {
			var tap TapRequest
			if err := wsjson.Read(ctx, conn, &tap); err != nil {
				v.logger.Debug("game socket read ended", "error", err)
				return
			}

			var reply TapReply
			err := v.do(ctx, func() {
				if tapErr := v.journey.Game().Tap(tap.X, tap.Y); tapErr != nil {
					reply.Error = tapErr.Error()
				}
				if c := v.journey.Game().Snapshot().Collection; c != nil {
					reply.Score, reply.Target, reply.Active = c.Score, c.Target, c.Active
				}
			})
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					v.logger.Debug("game socket closed", "error", err)
				}
				conn.Close(websocket.StatusGoingAway, "journey session ended")
				return
			}

			if err := wsjson.Write(ctx, conn, reply); err != nil {
				v.logger.Debug("game socket write failed", "error", err)
				return
			}
		}
	}
}
