package journey

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/dom"
)

type collectionPhase struct {
	s *Sequencer

	area    *html.Node
	scoreEl *html.Node

	score  int
	active bool
	// seq numbers the roses and pops so each keeps its id across renders.
	seq int

	spawner Timer
	finish  Timer
	timers  timerSet
}

func (c *collectionPhase) kind() Phase { return PhaseCollection }

func (c *collectionPhase) enter() {
	container := c.s.container()
	if container == nil {
		return
	}
	dom.Clear(container)

	c.score = 0
	c.active = true

	c.scoreEl = dom.El("p", dom.Class("rose-score"))
	c.area = dom.El("div", dom.Class("game-area"), dom.Children(
		dom.El("img",
			dom.Attribute("src", "assets/images/bunny.png"),
			dom.Attribute("alt", "Bunny"),
			dom.Class("bunny-player"),
		),
	))
	container.AppendChild(dom.El("div", dom.Class("phase-wrapper", "phase-platformer"), dom.Children(
		dom.El("h3", dom.WithText("Collect the Birthday Roses 🌹")),
		dom.El("p", dom.WithText("Tap anywhere inside the box to catch roses for your bunny. When you’ve collected enough, the story continues…")),
		c.scoreEl,
		c.area,
	)))
	c.updateScore()

	c.spawnRose()
	stopTimer(&c.spawner)
	c.spawner = c.s.cfg.Scheduler.Every(c.s.cfg.Pacing.SpawnInterval, c.spawnRose)
}

func (c *collectionPhase) updateScore() {
	dom.SetText(c.scoreEl, fmt.Sprintf("Roses collected: %d", c.score))
}

// spawnRose drops one decorative rose that removes itself when its fall ends.
func (c *collectionPhase) spawnRose() {
	if !c.active || c.area == nil {
		return
	}
	p := c.s.cfg.Pacing
	rnd := c.s.cfg.Rand

	left := 10 + rnd.Float64()*80
	fall := p.RoseFallMin + durationFraction(p.RoseFallSpread, rnd.Float64())

	c.seq++
	rose := dom.El("img",
		dom.ID(fmt.Sprintf("rose-%d", c.seq)),
		dom.Attribute("src", "assets/images/rose.png"),
		dom.Attribute("alt", "Falling rose"),
		dom.Class("falling-rose"),
		dom.Style(fmt.Sprintf("left: %.2f%%; animation-duration: %.2fs", left, fall.Seconds())),
	)
	c.area.AppendChild(rose)
	c.timers.after(c.s.cfg.Scheduler, fall, func() { dom.Remove(rose) })
}

func (c *collectionPhase) tap(x, y float64) error {
	if !c.active {
		return ErrTapIgnored
	}
	c.score++
	c.updateScore()

	c.seq++
	pop := dom.El("div",
		dom.ID(fmt.Sprintf("pop-%d", c.seq)),
		dom.Class("rose-pop"),
		dom.Style(fmt.Sprintf("left: %.0fpx; top: %.0fpx", x, y)),
		dom.WithText("+1 🌹"),
	)
	c.area.AppendChild(pop)
	c.timers.after(c.s.cfg.Scheduler, c.s.cfg.Pacing.PopLifetime, func() { dom.Remove(pop) })

	if c.score >= c.s.cfg.Pacing.RoseTarget {
		c.end()
	}
	return nil
}

// end stops the game and moves on to the quiz once the last pop has played.
func (c *collectionPhase) end() {
	c.active = false
	stopTimer(&c.spawner)
	stopTimer(&c.finish)
	c.finish = c.s.cfg.Scheduler.AfterFunc(c.s.cfg.Pacing.CollectionFinishDelay, func() {
		_ = c.s.advance(PhaseQuiz)
	})
}

func (c *collectionPhase) exit() {
	c.active = false
	stopTimer(&c.spawner)
	stopTimer(&c.finish)
	c.timers.stopAll()
}
