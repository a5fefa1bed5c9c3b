package server

import "sync"

// Event is pushed to a visitor's page over SSE.
type Event struct {
	Type string `json:"type"`
	HTML string `json:"html,omitempty"`
}

const (
	eventRender = "render"
	eventMusic  = "music"
)

// Broker is an in-process pub/sub for page events, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives the session's events.
func (b *Broker) Subscribe(sessionID string) chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan Event]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(sessionID string, ch chan Event) {
	b.mu.Lock()
	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish sends an event to every subscriber of the session and returns how
// many took it. Slow subscribers miss the event.
func (b *Broker) Publish(sessionID string, event Event) int {
	delivered := 0
	b.mu.RLock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	b.mu.RUnlock()
	return delivered
}

func (b *Broker) Subscribers(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[sessionID])
}
