package redis

import (
	"context"
	"testing"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

func TestSnapshotKey(t *testing.T) {
	if got := snapshotKey("abc"); got != "game:snapshot:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestInitRedisWithoutAddressDisablesCache(t *testing.T) {
	if client := InitRedis(context.Background(), "", "", 0); client != nil {
		t.Fatalf("expected nil client without an address")
	}
}

// An unreachable server surfaces as an error, never as a fake hit.
func TestCachesReportUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewRedisCache(client)
	ctx := context.Background()

	snaps := NewSnapshotCache(cache, time.Minute)
	if err := snaps.SaveSnapshot(ctx, &domain.Snapshot{GameID: "g1"}); err == nil {
		t.Fatalf("expected save to fail")
	}
	if snap, err := snaps.GetSnapshot(ctx, "g1"); err == nil || snap != nil {
		t.Fatalf("expected get to fail, got %v %v", snap, err)
	}

	board := NewLeaderboardCache(cache, time.Minute)
	if _, ok, err := board.GetRatings(ctx); err == nil || ok {
		t.Fatalf("expected leaderboard read to fail")
	}
}
