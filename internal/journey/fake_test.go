package journey

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/dom"
)

// fakeScheduler is a deterministic Scheduler driven by advance. Spawned
// tasks run immediately and their continuations wait in the post queue
// until drain or advance.
type fakeScheduler struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
	posted []func()
}

type fakeTimer struct {
	at      time.Duration
	every   time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

func (s *fakeScheduler) Post(f func()) { s.posted = append(s.posted, f) }

func (s *fakeScheduler) add(d, every time.Duration, f func()) *fakeTimer {
	s.seq++
	t := &fakeTimer{at: s.now + d, every: every, seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer { return s.add(d, 0, f) }

func (s *fakeScheduler) Every(d time.Duration, f func()) Timer { return s.add(d, d, f) }

func (s *fakeScheduler) Spawn(task func() func()) {
	if next := task(); next != nil {
		s.Post(next)
	}
}

func (s *fakeScheduler) drain() {
	for len(s.posted) > 0 {
		f := s.posted[0]
		s.posted = s.posted[1:]
		f()
	}
}

func (s *fakeScheduler) live() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// advance moves the clock forward by d, firing due timers in order.
func (s *fakeScheduler) advance(d time.Duration) {
	target := s.now + d
	for {
		s.drain()
		s.timers = s.live()
		sort.SliceStable(s.timers, func(i, j int) bool {
			if s.timers[i].at != s.timers[j].at {
				return s.timers[i].at < s.timers[j].at
			}
			return s.timers[i].seq < s.timers[j].seq
		})
		if len(s.timers) == 0 || s.timers[0].at > target {
			break
		}
		t := s.timers[0]
		s.now = t.at
		if t.every > 0 {
			t.at += t.every
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.now = target
	s.drain()
}

func (s *fakeScheduler) pending() int { return len(s.live()) }

// fixedRand returns the same values every time.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return r.n % n }

type fakeAudio struct {
	plays int
	err   error
}

func (a *fakeAudio) Play() error {
	a.plays++
	return a.err
}

// fakeContent serves resources from memory and counts fetches.
type fakeContent struct {
	mu      sync.Mutex
	data    map[string]string
	errs    map[string]error
	fetches map[string]int
}

func newFakeContent() *fakeContent {
	return &fakeContent{
		data: map[string]string{
			content.Timeline:  `[{"title":"First date","date":"2023-02-14","description":"Coffee."}]`,
			content.Moodboard: `[{"title":"London","image":"assets/london.png","description":"Lights."}]`,
			content.Quiz:      threeQuestions,
		},
		errs:    map[string]error{},
		fetches: map[string]int{},
	}
}

func (c *fakeContent) Fetch(_ context.Context, name string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches[name]++
	if err := c.errs[name]; err != nil {
		return nil, err
	}
	d, ok := c.data[name]
	if !ok {
		return nil, content.ErrNotFound
	}
	return []byte(d), nil
}

func (c *fakeContent) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches[name]
}

var errNetwork = errors.New("network down")

const threeQuestions = `{"questions":[
	{"question":"Where did we meet?","options":["Paris","London","Lima"],"correctIndex":1},
	{"question":"Favourite colour?","options":["Royal blue","Green"],"correctIndex":0},
	{"question":"","options":["Yes","No"],"correctIndex":0}
]}`

const testPage = `<!doctype html><html><body><div id="app">
<div id="confetti"></div>
<section class="screen" data-step="1"><form id="login-form"><input id="username"><input id="password"></form></section>
<section class="screen" data-step="2"><button id="begin-journey">Begin</button></section>
<section class="screen" data-step="3"><div id="timeline-container"></div><button id="continue-to-game">Next</button></section>
<section class="screen" data-step="4"><button id="start-game">Play</button></section>
<section class="screen" data-step="5"><div id="game-container"></div></section>
<section class="screen" data-step="6"><div id="moodboard-container"></div><button id="reveal-final-message">Open</button></section>
<section class="screen" data-step="7"><button id="love-button">Love</button></section>
</div></body></html>`

func testDoc(t *testing.T) *dom.Document {
	t.Helper()
	return parseDoc(t, testPage)
}

func parseDoc(t *testing.T, page string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return doc
}

func testCredentials(t *testing.T) Credentials {
	t.Helper()
	creds, err := newCredentials("rania", "25525", bcrypt.MinCost)
	require.NoError(t, err)
	return creds
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func byClass(doc *dom.Document, class string) []*html.Node {
	return dom.ByClass(doc.Root(), class)
}

func activeSteps(r *Router) []int {
	var out []int
	for _, s := range r.Screens() {
		if s.Active {
			out = append(out, s.Step)
		}
	}
	return out
}
