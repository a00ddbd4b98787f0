package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iyhunko/product-catalog/internal/wizard"
)

// ErrSessionNotFound is returned for unknown, closed or expired wizard sessions.
var ErrSessionNotFound = errors.New("wizard session not found")

// Sessions keeps open wizards by session ID. Each wizard is only ever used by
// one goroutine at a time.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	mu       sync.Mutex
	wizard   *wizard.Wizard
	lastUsed time.Time
}

// NewSessions creates a registry whose sessions expire after ttl without use.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open registers w and returns its session ID.
func (s *Sessions) Open(w *wizard.Wizard) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{wizard: w, lastUsed: s.now()}
	return id
}

// Do runs fn with exclusive access to the wizard of session id. A wizard
// closed by fn is dropped from the registry.
func (s *Sessions) Do(id string, fn func(w *wizard.Wizard) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastUsed = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.wizard.Closed() {
		return ErrSessionNotFound
	}

	err := fn(sess.wizard)
	if sess.wizard.Closed() {
		s.remove(id, sess)
	}
	return err
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Expire drops sessions unused for longer than the TTL and returns how many
// were dropped. Sessions in use are left for the next call.
func (s *Sessions) Expire() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.ttl)
	expired := 0
	for id, sess := range s.sessions {
		if !sess.lastUsed.Before(deadline) {
			continue
		}
		if !sess.mu.TryLock() {
			continue
		}
		delete(s.sessions, id)
		sess.mu.Unlock()
		expired++
	}
	return expired
}

func (s *Sessions) remove(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[id] == sess {
		delete(s.sessions, id)
	}
}
