package journey

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/dom"
)

// Steps of the page, matching the data-step attribute of each .screen.
const (
	StepLogin     = 1
	StepIntro     = 2
	StepTimeline  = 3
	StepGameIntro = 4
	StepGame      = 5
	StepMoodboard = 6
	StepFinal     = 7
)

var (
	ErrUnknownStep = errors.New("unknown step")
	ErrWrongStep   = errors.New("action not available on this screen")
)

type Screen struct {
	Step   int  `json:"step"`
	Active bool `json:"active"`
}

// Router shows exactly one .screen of the document at a time.
type Router struct {
	doc     *dom.Document
	current int
}

func NewRouter(doc *dom.Document) *Router {
	return &Router{doc: doc, current: StepLogin}
}

func (r *Router) screens() []*html.Node {
	return r.doc.All(func(n *html.Node) bool { return dom.HasClass(n, "screen") })
}

func stepOf(n *html.Node) (int, bool) {
	v, ok := dom.Attr(n, "data-step")
	if !ok {
		return 0, false
	}
	step, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return step, true
}

// Show activates the screen for step and deactivates every other one.
// A step without a screen is rejected and nothing changes.
func (r *Router) Show(step int) error {
	screens := r.screens()

	found := false
	for _, s := range screens {
		if n, ok := stepOf(s); ok && n == step {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("step %d: %w", step, ErrUnknownStep)
	}

	for _, s := range screens {
		if n, ok := stepOf(s); ok && n == step {
			dom.AddClass(s, "active")
		} else {
			dom.RemoveClass(s, "active")
		}
	}
	r.current = step
	return nil
}

func (r *Router) Next() error {
	return r.Show(r.current + 1)
}

// Prev goes back one step; at the first step it does nothing.
func (r *Router) Prev() error {
	if r.current <= StepLogin {
		return nil
	}
	return r.Show(r.current - 1)
}

func (r *Router) Current() int { return r.current }

func (r *Router) Screens() []Screen {
	var out []Screen
	for _, s := range r.screens() {
		n, ok := stepOf(s)
		if !ok {
			continue
		}
		out = append(out, Screen{Step: n, Active: dom.HasClass(s, "active")})
	}
	return out
}
