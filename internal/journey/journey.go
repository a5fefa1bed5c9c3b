// Package journey is the birthday journey of one visitor: the screens, the
// login gate, the timeline, the mini-game and the final gift. A Journey owns
// its page document and must only be used from its Scheduler's event loop.
package journey

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/dom"
)

const LoveMessage = "I love you 💙"

type Options struct {
	Context     context.Context
	Logger      *slog.Logger
	Scheduler   Scheduler
	Content     content.Source
	Credentials Credentials
	Audio       Audio
	Pacing      Pacing
	Rand        Rand
}

type Journey struct {
	doc    *dom.Document
	logger *slog.Logger

	router    *Router
	gate      *Gate
	game      *Sequencer
	fx        *decor
	timeline  *listLoader[content.TimelineEntry]
	moodboard *listLoader[content.MoodboardItem]
}

func New(doc *dom.Document, opts Options) *Journey {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Rand == nil {
		opts.Rand = newRand()
	}
	opts.Pacing = opts.Pacing.withDefaults()

	j := &Journey{
		doc:    doc,
		logger: opts.Logger,
		router: NewRouter(doc),
	}
	j.fx = &decor{
		doc:    doc,
		sched:  opts.Scheduler,
		rnd:    opts.Rand,
		pacing: opts.Pacing,
		audio:  opts.Audio,
	}
	j.gate = NewGate(doc, j.router, opts.Credentials, j.fx)
	j.timeline = &listLoader[content.TimelineEntry]{
		view: timelineView, doc: doc, sched: opts.Scheduler,
		src: opts.Content, logger: opts.Logger, ctx: opts.Context,
	}
	j.moodboard = &listLoader[content.MoodboardItem]{
		view: moodboardView, doc: doc, sched: opts.Scheduler,
		src: opts.Content, logger: opts.Logger, ctx: opts.Context,
	}

	src := opts.Content
	j.game = NewSequencer(SequencerConfig{
		Doc:       doc,
		Scheduler: opts.Scheduler,
		Rand:      opts.Rand,
		Pacing:    opts.Pacing,
		Logger:    opts.Logger,
		Questions: func(ctx context.Context) ([]content.Question, error) {
			return content.LoadQuestions(ctx, src)
		},
		OnComplete: j.unlockFinalGift,
		Context:    opts.Context,
	})
	return j
}

func (j *Journey) Document() *dom.Document { return j.doc }

func (j *Journey) Game() *Sequencer { return j.game }

// Open shows the login screen and starts loading the timeline.
func (j *Journey) Open() {
	if err := j.router.Show(StepLogin); err != nil {
		j.logger.Warn("page has no login screen", "error", err)
	}
	j.timeline.Load()
}

func (j *Journey) Login(username, password string) error {
	return j.gate.AttemptLogin(username, password)
}

func (j *Journey) requireStep(step int) error {
	if cur := j.router.Current(); cur != step {
		return fmt.Errorf("on step %d, need %d: %w", cur, step, ErrWrongStep)
	}
	return nil
}

// BeginJourney moves from the intro to the timeline and retries the music
// in case it did not start on login.
func (j *Journey) BeginJourney() error {
	if err := j.requireStep(StepIntro); err != nil {
		return err
	}
	if err := j.router.Show(StepTimeline); err != nil {
		return err
	}
	j.fx.StartMusic()
	j.fx.FireConfetti()
	return nil
}

func (j *Journey) ContinueToGame() error {
	if err := j.requireStep(StepTimeline); err != nil {
		return err
	}
	return j.router.Show(StepGameIntro)
}

// StartGame starts the game, or returns to it when it is already under way.
func (j *Journey) StartGame() error {
	if err := j.requireStep(StepGameIntro); err != nil {
		return err
	}
	if j.game.Phase() == PhaseIdle {
		if err := j.game.Start(); err != nil {
			return err
		}
	}
	return j.router.Show(StepGame)
}

// Land finishes the game from its screen.
func (j *Journey) Land() error {
	if err := j.requireStep(StepGame); err != nil {
		return err
	}
	return j.game.Land()
}

// unlockFinalGift is the game's completion handler.
func (j *Journey) unlockFinalGift() {
	if err := j.router.Show(StepMoodboard); err != nil {
		j.logger.Warn("cannot show moodboard", "error", err)
		return
	}
	j.moodboard.Load()
}

func (j *Journey) RevealFinalMessage() error {
	if err := j.requireStep(StepMoodboard); err != nil {
		return err
	}
	return j.router.Show(StepFinal)
}

func (j *Journey) Back() error {
	return j.router.Prev()
}

func (j *Journey) Love() string {
	return LoveMessage
}

type State struct {
	Step         int          `json:"step"`
	Screens      []Screen     `json:"screens"`
	Game         GameSnapshot `json:"game"`
	MusicStarted bool         `json:"musicStarted"`
}

func (j *Journey) State() State {
	return State{
		Step:         j.router.Current(),
		Screens:      j.router.Screens(),
		Game:         j.game.Snapshot(),
		MusicStarted: j.fx.musicStarted,
	}
}
