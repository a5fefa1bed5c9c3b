package journey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/dom"
)

// Phase is one stage of the mini-game.
type Phase string

const (
	PhaseIdle       Phase = "idle"       // before the game starts
	PhaseCollection Phase = "collection" // tapping falling roses
	PhaseQuiz       Phase = "quiz"       // questions about us
	PhaseReveal     Phase = "reveal"     // the London night panel
)

func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo reports whether the game may move from p to target.
// Phases only ever move forward.
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseIdle:       {PhaseCollection},
		PhaseCollection: {PhaseQuiz},
		PhaseQuiz:       {PhaseReveal},
	}
	return slices.Contains(validTransitions[p], target)
}

var (
	ErrAlreadyStarted = errors.New("game already started")
	ErrWrongPhase     = errors.New("action not available in this phase")
	ErrTapIgnored     = errors.New("tap ignored")
	ErrAnswerIgnored  = errors.New("answer ignored")
	ErrOptionRange    = errors.New("option out of range")
	ErrBadTransition  = errors.New("invalid phase transition")
)

// phase is the running state of one stage. exit cancels everything the
// stage scheduled.
type phase interface {
	kind() Phase
	enter()
	exit()
}

type SequencerConfig struct {
	Doc       *dom.Document
	Scheduler Scheduler
	Rand      Rand
	Pacing    Pacing
	Logger    *slog.Logger
	// Questions loads the quiz. It runs off the event loop.
	Questions func(ctx context.Context) ([]content.Question, error)
	// OnComplete is called when the visitor lands after the reveal.
	OnComplete func()
	Context    context.Context
}

// Sequencer drives the game through collection, quiz and reveal. All of its
// methods must be called on the event loop.
type Sequencer struct {
	cfg SequencerConfig
	cur phase

	collection *collectionPhase
	quiz       *quizPhase

	questions       []content.Question
	questionsCached bool
}

func NewSequencer(cfg SequencerConfig) *Sequencer {
	cfg.Pacing = cfg.Pacing.withDefaults()
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = newRand()
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	return &Sequencer{cfg: cfg}
}

func (s *Sequencer) Phase() Phase {
	if s.cur == nil {
		return PhaseIdle
	}
	return s.cur.kind()
}

func (s *Sequencer) container() *html.Node {
	return s.cfg.Doc.ByID("game-container")
}

// Start begins the collection phase. A page without a game container is
// left alone.
func (s *Sequencer) Start() error {
	if s.cur != nil {
		return ErrAlreadyStarted
	}
	if s.container() == nil {
		return nil
	}
	return s.advance(PhaseCollection)
}

func (s *Sequencer) advance(next Phase) error {
	from := s.Phase()
	if !from.CanTransitionTo(next) {
		s.cfg.Logger.Error("invalid phase transition", "from", from, "to", next)
		return fmt.Errorf("%s -> %s: %w", from, next, ErrBadTransition)
	}

	var p phase
	switch next {
	case PhaseCollection:
		s.collection = &collectionPhase{s: s}
		p = s.collection
	case PhaseQuiz:
		s.quiz = &quizPhase{s: s}
		p = s.quiz
	case PhaseReveal:
		p = &revealPhase{s: s}
	}

	if s.cur != nil {
		s.cur.exit()
	}
	s.cur = p
	s.cfg.Logger.Debug("game phase", "phase", next)
	p.enter()
	return nil
}

// Tap registers a catch at x, y, in pixels relative to the play area.
func (s *Sequencer) Tap(x, y float64) error {
	if s.Phase() != PhaseCollection {
		return ErrWrongPhase
	}
	return s.collection.tap(x, y)
}

// Answer selects option i of the current question.
func (s *Sequencer) Answer(i int) error {
	if s.Phase() != PhaseQuiz {
		return ErrWrongPhase
	}
	return s.quiz.answer(i)
}

// Land finishes the game and hands over to the completion handler. It may
// be called again; each call reaches the handler.
func (s *Sequencer) Land() error {
	if s.Phase() != PhaseReveal {
		return ErrWrongPhase
	}
	if s.cfg.OnComplete == nil {
		s.cfg.Logger.Warn("no completion handler for the game, staying on the reveal")
		return nil
	}
	s.cfg.OnComplete()
	return nil
}

// loadQuestions calls done on the loop with the question set. A non-empty
// set is fetched once per sequencer and reused afterwards.
func (s *Sequencer) loadQuestions(done func([]content.Question, error)) {
	if s.questionsCached && len(s.questions) > 0 {
		done(s.questions, nil)
		return
	}
	if s.cfg.Questions == nil {
		done(nil, fmt.Errorf("no question source: %w", content.ErrNotFound))
		return
	}

	ctx := s.cfg.Context
	load := s.cfg.Questions
	s.cfg.Scheduler.Spawn(func() func() {
		qs, err := load(ctx)
		return func() {
			if err == nil {
				s.questions = qs
				s.questionsCached = true
			}
			done(qs, err)
		}
	})
}

type CollectionSnapshot struct {
	Score  int  `json:"score"`
	Target int  `json:"target"`
	Active bool `json:"active"`
}

type QuizSnapshot struct {
	Index int `json:"index"`
	Score int `json:"score"`
	Total int `json:"total"`
}

type GameSnapshot struct {
	Phase      Phase               `json:"phase"`
	Collection *CollectionSnapshot `json:"collection,omitempty"`
	Quiz       *QuizSnapshot       `json:"quiz,omitempty"`
}

func (s *Sequencer) Snapshot() GameSnapshot {
	snap := GameSnapshot{Phase: s.Phase()}
	if c := s.collection; c != nil {
		snap.Collection = &CollectionSnapshot{Score: c.score, Target: s.cfg.Pacing.RoseTarget, Active: c.active}
	}
	if q := s.quiz; q != nil {
		snap.Quiz = &QuizSnapshot{Index: q.index, Score: q.score, Total: len(q.questions)}
	}
	return snap
}
