package journey

import "github.com/playperu/ouruniverse/internal/dom"

// revealPhase shows the London night panel and waits for the visitor to land.
type revealPhase struct {
	s *Sequencer
}

func (r *revealPhase) kind() Phase { return PhaseReveal }

func (r *revealPhase) enter() {
	container := r.s.container()
	if container == nil {
		return
	}
	dom.Clear(container)
	container.AppendChild(dom.El("div", dom.Class("phase-wrapper", "phase-ship"), dom.Children(
		dom.El("h3", dom.WithText("Flying Over Our London Night ✈️🎄")),
		dom.El("p", dom.WithText("Close your eyes and imagine us floating over London, Christmas lights glowing under us, your royal blue scarf in the wind, and my hand holding yours.")),
		dom.El("button",
			dom.Attribute("type", "button"),
			dom.Class("phase-action-btn"),
			dom.WithText("Land safely in our universe 💙"),
		),
	)))
}

func (r *revealPhase) exit() {}
