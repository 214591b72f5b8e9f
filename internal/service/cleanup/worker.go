package cleanup

import (
	"context"
	"log"
	"time"
)

// SessionSweeper drops stale in-memory sessions.
type SessionSweeper interface {
	CleanupOldSessions(finishedTTL, idleTTL time.Duration) int
}

// MatchPruner deletes stored matches past their retention.
type MatchPruner interface {
	DeleteMatchesOlderThan(ctx context.Context, days int) (int64, error)
}

type Worker struct {
	Sessions      SessionSweeper
	Matches       MatchPruner
	Interval      time.Duration
	RetentionDays int
	FinishedTTL   time.Duration
	IdleTTL       time.Duration
}

// NewWorker takes a nil pruner when no database is configured.
func NewWorker(sessions SessionSweeper, matches MatchPruner, interval time.Duration, retentionDays int) *Worker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Worker{
		Sessions:      sessions,
		Matches:       matches,
		Interval:      interval,
		RetentionDays: retentionDays,
		FinishedTTL:   time.Hour,
		IdleTTL:       24 * time.Hour,
	}
}

// Start runs one cleanup immediately and then on every tick until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.RunOnce(ctx)

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.RunOnce(ctx)
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

// RunOnce executes the actual cleanup logic
func (w *Worker) RunOnce(ctx context.Context) {
	log.Println("[CLEANUP] Starting scheduled cleanup task...")

	w.Sessions.CleanupOldSessions(w.FinishedTTL, w.IdleTTL)

	if w.Matches == nil || w.RetentionDays <= 0 {
		return
	}
	deletedCount, err := w.Matches.DeleteMatchesOlderThan(ctx, w.RetentionDays)
	if err != nil {
		log.Printf("[CLEANUP] Error cleaning up old matches: %v", err)
	} else if deletedCount > 0 {
		log.Printf("[CLEANUP] Removed %d expired matches from database", deletedCount)
	}
}
