package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

func writeEvent(w http.ResponseWriter, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return err
}

// handleEvents streams the visitor's page events. The current fragment is
// sent first so a fresh page never misses an update.
func handleEvents(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := visitorFrom(r)

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		ch := broker.Subscribe(v.id)
		defer broker.Unsubscribe(v.id, ch)

		var html string
		var renderErr error
		if err := v.do(r.Context(), func() { html, renderErr = v.fragment() }); err != nil {
			writeError(w, http.StatusGone, "journey session ended")
			return
		}
		if renderErr != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		_ = writeEvent(w, Event{Type: eventRender, HTML: html})
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev := <-ch:
				if err := writeEvent(w, ev); err != nil {
					v.logger.Debug("event stream write failed", "error", err)
					return
				}
				flusher.Flush()
			case <-ping.C:
				v.touch()
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
