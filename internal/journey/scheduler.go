package journey

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending callback. Stop is idempotent; a stopped timer never
// runs its callback, even when it already fired and the callback is queued.
type Timer interface {
	Stop()
}

// Scheduler serialises all journey work onto one event loop. Callbacks
// passed to Post, AfterFunc and Every run on the loop, one at a time.
type Scheduler interface {
	Post(f func())
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
	// Spawn runs task off the loop and posts the continuation it returns.
	Spawn(task func() func())
}

var ErrLoopClosed = errors.New("event loop closed")

// Loop is the goroutine-backed Scheduler used for visitor sessions.
type Loop struct {
	tasks     chan func()
	quit      chan struct{}
	closeOnce sync.Once
	afterEach func()
}

// NewLoop starts a loop. afterEach, if set, runs on the loop after every task.
func NewLoop(afterEach func()) *Loop {
	l := &Loop{
		tasks:     make(chan func(), 64),
		quit:      make(chan struct{}),
		afterEach: afterEach,
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case <-l.quit:
			return
		case f := <-l.tasks:
			if l.closed() {
				return
			}
			f()
			if l.afterEach != nil {
				l.afterEach()
			}
		}
	}
}

// Post queues f. Tasks posted after Close are dropped.
func (l *Loop) Post(f func()) {
	if l.closed() {
		return
	}
	select {
	case l.tasks <- f:
	case <-l.quit:
	}
}

// Do runs f on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, f func()) error {
	if l.closed() {
		return ErrLoopClosed
	}
	done := make(chan struct{})
	select {
	case l.tasks <- func() { defer close(done); f() }:
	case <-l.quit:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-l.quit:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) closed() bool {
	select {
	case <-l.quit:
		return true
	default:
		return false
	}
}

func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.quit) })
}

type loopTimer struct {
	stopped atomic.Bool
	cancel  func()
}

func (t *loopTimer) Stop() {
	if t.stopped.CompareAndSwap(false, true) {
		t.cancel()
	}
}

func (t *loopTimer) guard(f func()) func() {
	return func() {
		if !t.stopped.Load() {
			f()
		}
	}
}

func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	tm := time.AfterFunc(d, func() { l.Post(t.guard(f)) })
	t.cancel = func() { tm.Stop() }
	return t
}

func (l *Loop) Every(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	stop := make(chan struct{})
	t.cancel = func() { close(stop) }

	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Post(t.guard(f))
			case <-stop:
				return
			case <-l.quit:
				return
			}
		}
	}()
	return t
}

func (l *Loop) Spawn(task func() func()) {
	go func() {
		if next := task(); next != nil {
			l.Post(next)
		}
	}()
}

// timerSet tracks short-lived timers owned by one phase so they can all be
// cancelled when the phase ends.
type timerSet struct {
	timers map[Timer]struct{}
}

func (s *timerSet) after(sched Scheduler, d time.Duration, f func()) {
	if s.timers == nil {
		s.timers = make(map[Timer]struct{})
	}
	var t Timer
	t = sched.AfterFunc(d, func() {
		delete(s.timers, t)
		f()
	})
	s.timers[t] = struct{}{}
}

func (s *timerSet) stopAll() {
	for t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

func (s *timerSet) len() int { return len(s.timers) }

func stopTimer(t *Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
