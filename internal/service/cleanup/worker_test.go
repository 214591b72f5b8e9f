package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeSweeper) CleanupOldSessions(time.Duration, time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 0
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePruner struct {
	days int
}

func (f *fakePruner) DeleteMatchesOlderThan(_ context.Context, days int) (int64, error) {
	f.days = days
	return 3, nil
}

func TestRunOnce(t *testing.T) {
	sweeper := &fakeSweeper{}
	pruner := &fakePruner{}
	w := NewWorker(sweeper, pruner, time.Minute, 30)

	w.RunOnce(context.Background())
	if sweeper.count() != 1 || pruner.days != 30 {
		t.Fatalf("expected one sweep and a 30 day prune, got %d %d", sweeper.count(), pruner.days)
	}

	noDB := NewWorker(sweeper, nil, 0, 30)
	noDB.RunOnce(context.Background())
	if noDB.Interval != time.Hour || sweeper.count() != 2 {
		t.Fatalf("expected default interval and a second sweep")
	}
}

func TestStartStopsWithContext(t *testing.T) {
	sweeper := &fakeSweeper{}
	w := NewWorker(sweeper, nil, 5*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	deadline := time.Now().Add(time.Second)
	for sweeper.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if sweeper.count() < 2 {
		t.Fatalf("expected the ticker to run the sweep again, got %d", sweeper.count())
	}
}
