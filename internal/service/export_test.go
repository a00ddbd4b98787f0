package service

import "time"

// SetClock replaces the time source used for session expiry.
func (s *Sessions) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (w *SessionSweeper) Sweep() int {
	return w.sweep()
}
