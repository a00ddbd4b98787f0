package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/iyhunko/product-catalog/internal/metrics"
)

// SessionSweeper periodically drops expired wizard sessions.
type SessionSweeper struct {
	sessions *Sessions
	interval time.Duration
	stopChan chan struct{}
}

// NewSessionSweeper creates a new SessionSweeper
func NewSessionSweeper(sessions *Sessions, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start sweeps on every tick until the context is cancelled or Stop is called.
func (w *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Session sweeper started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Session sweeper stopped by context")
			return
		case <-w.stopChan:
			slog.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// Stop stops the session sweeper
func (w *SessionSweeper) Stop() {
	close(w.stopChan)
}

func (w *SessionSweeper) sweep() int {
	expired := w.sessions.Expire()
	if expired == 0 {
		return 0
	}

	metrics.WizardsDiscarded.WithLabelValues("expired").Add(float64(expired))
	slog.Info("Expired wizard sessions dropped",
		slog.Int("count", expired),
		slog.Int("open", w.sessions.Len()))
	return expired
}
