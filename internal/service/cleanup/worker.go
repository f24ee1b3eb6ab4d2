package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-solo/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Notifier       game.Notifier
	Interval       time.Duration
	log            *zap.SugaredLogger
}

func NewWorker(sm *game.SessionManager, notifier game.Notifier, interval time.Duration, log *zap.SugaredLogger) *Worker {
	return &Worker{
		SessionManager: sm,
		Notifier:       notifier,
		Interval:       interval,
		log:            log.Named("cleanup"),
	}
}

// Start runs one pass immediately and then one per Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
	w.log.Infow("background worker started", "interval", w.Interval)
}

func (w *Worker) run(ctx context.Context) {
	w.RunOnce()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("background worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce executes the actual cleanup logic
func (w *Worker) RunOnce() {
	before := w.SessionManager.Count()
	w.SessionManager.CleanupOldSessions(w.Notifier)
	w.log.Debugw("cleanup pass finished", "sessions_before", before, "sessions_after", w.SessionManager.Count())
}
