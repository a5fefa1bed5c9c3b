package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions keeps the live journeys, keyed by the id in the session cookie.
type Sessions struct {
	open   func(id string) (*visitor, error)
	idle   time.Duration
	logger *slog.Logger
	broker *Broker

	mu       sync.RWMutex
	visitors map[string]*visitor
}

func NewSessions(logger *slog.Logger, broker *Broker, idle time.Duration, open func(id string) (*visitor, error)) *Sessions {
	return &Sessions{
		open:     open,
		idle:     idle,
		logger:   logger,
		broker:   broker,
		visitors: make(map[string]*visitor),
	}
}

func (s *Sessions) Get(id string) (*visitor, bool) {
	s.mu.RLock()
	v, ok := s.visitors[id]
	s.mu.RUnlock()
	return v, ok
}

// Create starts a journey under a fresh id.
func (s *Sessions) Create() (*visitor, error) {
	id := uuid.NewString()
	v, err := s.open(id)
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	s.mu.Lock()
	s.visitors[id] = v
	n := len(s.visitors)
	s.mu.Unlock()

	s.logger.Info("journey session started", "session", id, "sessions", n)
	return v, nil
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visitors)
}

// Reap ends sessions idle for longer than the timeout. Sessions with an open
// event stream are kept.
func (s *Sessions) Reap(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for id, v := range s.visitors {
		if now.Sub(v.idleSince()) < s.idle || s.broker.Subscribers(id) > 0 {
			continue
		}
		v.close()
		delete(s.visitors, id)
		reaped++
	}
	if reaped > 0 {
		s.logger.Info("journey sessions expired", "expired", reaped, "sessions", len(s.visitors))
	}
	return reaped
}

// Run reaps idle sessions until ctx is done, then closes all of them.
func (s *Sessions) Run(ctx context.Context) error {
	every := max(s.idle/4, time.Second)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return nil
		case now := <-ticker.C:
			s.Reap(now)
		}
	}
}

func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, v := range s.visitors {
		v.close()
		delete(s.visitors, id)
	}
}
