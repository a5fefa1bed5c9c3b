package journey

import (
	"cmp"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/dom"
)

const (
	quizErrorText       = "Couldn’t load the quiz right now, but the universe still loves you. 💙"
	quizCorrectText     = "Correct! Of course you knew that, my clever rabbit. 💙"
	quizIncorrectText   = "Not quite, but it’s okay — I still choose you. ✨"
	quizSummaryFollowup = " questions. No matter the score, you’re always the right answer to me. 💙"
)

type quizPhase struct {
	s *Sequencer

	container *html.Node
	questions []content.Question
	index     int
	score     int
	// accepting is true while the current question waits for its answer.
	accepting bool

	timers timerSet
	exited bool
}

func (q *quizPhase) kind() Phase { return PhaseQuiz }

func (q *quizPhase) enter() {
	q.container = q.s.container()
	if q.container != nil {
		dom.Clear(q.container)
		q.container.AppendChild(dom.El("div", dom.Class("quiz-intro"), dom.Children(
			dom.El("h3", dom.WithText("How Well Do You Know Us? 💫")),
			dom.El("p", dom.WithText("Time for a tiny quiz about you, me, and our little universe.")),
		)))
	}
	q.s.loadQuestions(q.loaded)
}

func (q *quizPhase) loaded(qs []content.Question, err error) {
	if q.exited {
		return
	}
	if err != nil {
		q.s.cfg.Logger.Error("loading quiz failed", "error", err)
		if q.container != nil {
			dom.Clear(q.container)
			q.container.AppendChild(dom.El("p", dom.Class("quiz-error"), dom.WithText(quizErrorText)))
		}
	}
	qs = answerable(qs)
	if err != nil || len(qs) == 0 {
		q.after(q.s.cfg.Pacing.QuizSkipDelay, q.toReveal)
		return
	}

	q.questions = qs
	q.index = 0
	q.score = 0
	q.renderQuestion()
}

// answerable drops questions that offer nothing to pick.
func answerable(qs []content.Question) []content.Question {
	out := make([]content.Question, 0, len(qs))
	for _, q := range qs {
		if len(q.Options) > 0 {
			out = append(out, q)
		}
	}
	return out
}

func (q *quizPhase) after(d time.Duration, f func()) {
	q.timers.after(q.s.cfg.Scheduler, d, f)
}

func (q *quizPhase) toReveal() {
	_ = q.s.advance(PhaseReveal)
}

func (q *quizPhase) renderQuestion() {
	if q.container == nil {
		return
	}
	dom.Remove(dom.FirstByClass(q.container, "quiz-card"))

	if q.index >= len(q.questions) {
		q.finish()
		return
	}
	dom.Remove(dom.FirstByClass(q.container, "quiz-feedback"))

	cur := q.questions[q.index]
	options := dom.El("div", dom.Class("quiz-options"))
	for i, text := range cur.Options {
		options.AppendChild(dom.El("button",
			dom.Attribute("type", "button"),
			dom.Class("quiz-option-btn"),
			dom.Attribute("data-index", strconv.Itoa(i)),
			dom.WithText(text),
		))
	}

	q.container.AppendChild(dom.El("div", dom.Class("quiz-card"), dom.Children(
		dom.El("p", dom.Class("quiz-progress"), dom.WithText(fmt.Sprintf("Question %d of %d", q.index+1, len(q.questions)))),
		dom.El("h4", dom.Class("quiz-question"), dom.WithText(cmp.Or(cur.Text, "Question"))),
		options,
	)))
	q.accepting = true
}

// answer takes the first choice for the current question. Every option is
// disabled before anything else changes.
func (q *quizPhase) answer(i int) error {
	if !q.accepting {
		return ErrAnswerIgnored
	}
	cur := q.questions[q.index]
	if i < 0 || i >= len(cur.Options) {
		return fmt.Errorf("option %d of %d: %w", i, len(cur.Options), ErrOptionRange)
	}
	q.accepting = false

	buttons := dom.ByClass(q.container, "quiz-option-btn")
	for _, b := range buttons {
		dom.SetAttr(b, "disabled", "")
	}

	text := quizCorrectText
	if i == cur.CorrectIndex {
		q.score++
		dom.AddClass(buttons[i], "correct")
	} else {
		text = quizIncorrectText
		dom.AddClass(buttons[i], "incorrect")
		if cur.CorrectIndex >= 0 && cur.CorrectIndex < len(buttons) {
			dom.AddClass(buttons[cur.CorrectIndex], "correct")
		}
	}

	dom.Remove(dom.FirstByClass(q.container, "quiz-feedback"))
	q.container.AppendChild(dom.El("p", dom.Class("quiz-feedback"), dom.WithText(text)))

	q.after(q.s.cfg.Pacing.AnswerDelay, func() {
		q.index++
		q.renderQuestion()
	})
	return nil
}

func (q *quizPhase) finish() {
	dom.Clear(q.container)
	summary := dom.El("p", dom.Children(
		dom.TextNode("You answered "),
		dom.El("strong", dom.WithText(strconv.Itoa(q.score))),
		dom.TextNode(" out of "),
		dom.El("strong", dom.WithText(strconv.Itoa(len(q.questions)))),
		dom.TextNode(quizSummaryFollowup),
	))
	q.container.AppendChild(dom.El("div", dom.Class("phase-wrapper", "phase-quiz-complete"), dom.Children(
		dom.El("h3", dom.WithText("Quiz Complete 🌟")),
		summary,
	)))
	q.after(q.s.cfg.Pacing.SummaryDelay, q.toReveal)
}

func (q *quizPhase) exit() {
	q.exited = true
	q.accepting = false
	q.timers.stopAll()
}
