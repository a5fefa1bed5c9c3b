package journey

import (
	"fmt"
	"math/rand/v2"

	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/dom"
)

// Rand is the randomness used for decoration. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

func newRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Audio asks the visitor's page to start the background music. Play fails
// when nobody is listening or the page refused playback.
type Audio interface {
	Play() error
}

var confettiColors = []string{"color-1", "color-2", "color-3", "color-4", "color-5", "color-6"}

// decor implements Effects. Music starts at most once; a refused start is
// retried on the next call. Confetti pieces are added to #confetti and
// removed when their animation is over.
type decor struct {
	doc    *dom.Document
	sched  Scheduler
	rnd    Rand
	pacing Pacing
	audio  Audio

	musicStarted bool
	pieces       int
}

func (d *decor) StartMusic() {
	if d.musicStarted || d.audio == nil {
		return
	}
	if err := d.audio.Play(); err != nil {
		return
	}
	d.musicStarted = true
}

func (d *decor) FireConfetti() {
	container := d.doc.ByID("confetti")
	if container == nil {
		return
	}

	pieces := make([]*html.Node, 0, d.pacing.ConfettiPieces)
	for range d.pacing.ConfettiPieces {
		d.pieces++
		piece := dom.El("div",
			dom.ID(fmt.Sprintf("confetti-%d", d.pieces)),
			dom.Class("confetti-piece", confettiColors[d.rnd.IntN(len(confettiColors))]),
			dom.Style(fmt.Sprintf("left: %.2fvw; animation-delay: %.2fs; transform: translateY(-20px) rotateZ(%.0fdeg)",
				d.rnd.Float64()*100,
				d.rnd.Float64()*0.8,
				d.rnd.Float64()*360,
			)),
		)
		container.AppendChild(piece)
		pieces = append(pieces, piece)
	}

	d.sched.AfterFunc(d.pacing.ConfettiLifetime, func() {
		for _, p := range pieces {
			if dom.Contains(container, p) {
				dom.Remove(p)
			}
		}
	})
}
