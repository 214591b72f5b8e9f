package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

const (
	snapshotPrefix = "game:snapshot:"
	leaderboardKey = "leaderboard:tiers"
)

func snapshotKey(gameID string) string {
	return snapshotPrefix + gameID
}

// SnapshotCache keeps the latest public view of every game for fast reads.
type SnapshotCache struct {
	cache *RedisCache
	ttl   time.Duration
}

func NewSnapshotCache(cache *RedisCache, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{cache: cache, ttl: ttl}
}

func (c *SnapshotCache) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return c.cache.Set(ctx, snapshotKey(snap.GameID), data, c.ttl)
}

// GetSnapshot returns nil, nil on a cache miss.
func (c *SnapshotCache) GetSnapshot(ctx context.Context, gameID string) (*domain.Snapshot, error) {
	val, ok, err := c.cache.Get(ctx, snapshotKey(gameID))
	if err != nil || !ok {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (c *SnapshotCache) DeleteSnapshot(ctx context.Context, gameID string) error {
	return c.cache.Del(ctx, snapshotKey(gameID))
}

// LeaderboardCache stores the rendered tier ratings until the next result.
type LeaderboardCache struct {
	cache *RedisCache
	ttl   time.Duration
}

func NewLeaderboardCache(cache *RedisCache, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{cache: cache, ttl: ttl}
}

func (c *LeaderboardCache) GetRatings(ctx context.Context) ([]domain.TierRating, bool, error) {
	val, ok, err := c.cache.Get(ctx, leaderboardKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var ratings []domain.TierRating
	if err := json.Unmarshal([]byte(val), &ratings); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	return ratings, true, nil
}

func (c *LeaderboardCache) SetRatings(ctx context.Context, ratings []domain.TierRating) error {
	data, err := json.Marshal(ratings)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	return c.cache.Set(ctx, leaderboardKey, data, c.ttl)
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.cache.Del(ctx, leaderboardKey)
}
