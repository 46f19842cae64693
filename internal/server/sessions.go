package server

import (
	"context"
	"errors"
	"sync"
	"time"

	jstnlab "github.com/reoring/jstnlab"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// session owns one Engine. The Engine is not safe for concurrent use, so
// every access goes through mu.
type session struct {
	id string

	mu       sync.Mutex
	engine   *jstnlab.Engine
	lastUsed time.Time
	streams  int // open event streams

	done     chan struct{} // closed when the session is removed
	doneOnce sync.Once
}

// with runs fn with the session locked and marks it as used.
func (s *session) with(now time.Time, fn func(e *jstnlab.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = now
	fn(s.engine)
}

// expired reports whether the session has been idle for longer than ttl. A
// session with an open event stream is never idle.
func (s *session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streams == 0 && now.Sub(s.lastUsed) > ttl
}

func (s *session) close() { s.doneOnce.Do(func() { close(s.done) }) }

// registry tracks live sessions and evicts idle ones.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	max      int
	now      func() time.Time
	onEvict  func(id string)
}

func newRegistry(ttl time.Duration, max int) *registry {
	return &registry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

func (r *registry) create(e *jstnlab.Engine) (*session, error) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.sessions) >= r.max {
		return nil, ErrTooManySessions
	}
	s := &session{
		id:       newSessionID(now),
		engine:   e,
		lastUsed: now,
		done:     make(chan struct{}),
	}
	r.sessions[s.id] = s
	return s, nil
}

func (r *registry) get(id string) (*session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *registry) remove(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.close()
	return nil
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// sweep removes sessions idle for longer than the TTL and returns their ids.
func (r *registry) sweep() []string {
	now := r.now()
	r.mu.Lock()
	var evicted []*session
	for id, s := range r.sessions {
		if s.expired(now, r.ttl) {
			delete(r.sessions, id)
			evicted = append(evicted, s)
		}
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(evicted))
	for _, s := range evicted {
		s.close()
		ids = append(ids, s.id)
		if r.onEvict != nil {
			r.onEvict(s.id)
		}
	}
	return ids
}

// run sweeps every interval until ctx is done.
func (r *registry) run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.sweep()
		}
	}
}

// closeAll ends every session; used on shutdown so event streams return.
func (r *registry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.close()
		delete(r.sessions, id)
	}
}
