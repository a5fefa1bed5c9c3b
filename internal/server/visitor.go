package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/playperu/ouruniverse/internal/dom"
	"github.com/playperu/ouruniverse/internal/journey"
	"github.com/playperu/ouruniverse/internal/web"
)

var errNoListener = errors.New("no page is listening")

// visitor is one journey session: its page document, the journey wired to
// it and the event loop everything runs on.
type visitor struct {
	id      string
	loop    *journey.Loop
	journey *journey.Journey
	broker  *Broker
	logger  *slog.Logger
	cancel  context.CancelFunc

	lastSeen atomic.Int64

	// Owned by the loop.
	lastHTML string
}

type visitorDeps struct {
	broker *Broker
	logger *slog.Logger
	opts   journey.Options
}

func newVisitor(id string, deps visitorDeps) (*visitor, error) {
	doc, err := dom.Parse(bytes.NewReader(web.Page()))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &visitor{
		id:     id,
		broker: deps.broker,
		logger: deps.logger.With("session", id),
		cancel: cancel,
	}
	v.touch()
	v.loop = journey.NewLoop(v.publish)

	opts := deps.opts
	opts.Context = ctx
	opts.Logger = v.logger
	opts.Scheduler = v.loop
	opts.Audio = visitorAudio{v}
	v.journey = journey.New(doc, opts)

	if err := v.loop.Do(ctx, v.journey.Open); err != nil {
		v.close()
		return nil, fmt.Errorf("opening journey: %w", err)
	}
	return v, nil
}

func (v *visitor) touch() {
	v.lastSeen.Store(time.Now().UnixNano())
}

func (v *visitor) idleSince() time.Time {
	return time.Unix(0, v.lastSeen.Load())
}

// do runs f on the visitor's loop.
func (v *visitor) do(ctx context.Context, f func()) error {
	v.touch()
	return v.loop.Do(ctx, f)
}

// fragment renders the contents of #app. Loop only.
func (v *visitor) fragment() (string, error) {
	app := v.journey.Document().ByID("app")
	if app == nil {
		return "", nil
	}
	return dom.InnerHTML(app)
}

// page renders the whole document. Loop only.
func (v *visitor) page() (string, error) {
	return dom.RenderString(v.journey.Document().Root())
}

// publish pushes the fragment to the page when it changed. It runs on the
// loop after every task.
func (v *visitor) publish() {
	html, err := v.fragment()
	if err != nil {
		v.logger.Error("rendering fragment failed", "error", err)
		return
	}
	if html == v.lastHTML {
		return
	}
	v.lastHTML = html
	v.broker.Publish(v.id, Event{Type: eventRender, HTML: html})
}

func (v *visitor) close() {
	v.cancel()
	v.loop.Close()
}

// visitorAudio asks the visitor's open pages to start the music.
type visitorAudio struct{ v *visitor }

func (a visitorAudio) Play() error {
	if a.v.broker.Publish(a.v.id, Event{Type: eventMusic}) == 0 {
		return errNoListener
	}
	return nil
}
