package leaderboard

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

type RatingStore interface {
	GetRatings(ctx context.Context) ([]domain.TierRating, error)
	ApplyResult(ctx context.Context, redTier, yellowTier domain.Tier, winner domain.Color) error
}

type Cache interface {
	GetRatings(ctx context.Context) ([]domain.TierRating, bool, error)
	SetRatings(ctx context.Context, ratings []domain.TierRating) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	store RatingStore
	cache Cache
}

// NewService takes a nil cache when Redis is disabled.
func NewService(store RatingStore, cache Cache) *Service {
	return &Service{store: store, cache: cache}
}

// Leaderboard returns every tier, rated or not, strongest first.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.TierRating, error) {
	if s.cache != nil {
		ratings, ok, err := s.cache.GetRatings(ctx)
		if err != nil {
			log.Printf("[LEADERBOARD] Cache read failed: %v", err)
		} else if ok {
			return ratings, nil
		}
	}

	stored, err := s.store.GetRatings(ctx)
	if err != nil {
		return nil, err
	}
	ratings := withUnratedTiers(stored)

	if s.cache != nil {
		if err := s.cache.SetRatings(ctx, ratings); err != nil {
			log.Printf("[LEADERBOARD] Cache write failed: %v", err)
		}
	}
	return ratings, nil
}

// RecordResult updates ratings for a bot-vs-bot game. Games with a human seat
// and mirror matches leave the ratings alone.
func (s *Service) RecordResult(ctx context.Context, redTier, yellowTier domain.Tier, winner domain.Color) error {
	if redTier == "" || yellowTier == "" || redTier == yellowTier {
		return nil
	}
	if err := s.store.ApplyResult(ctx, redTier, yellowTier, winner); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("[LEADERBOARD] Cache invalidation failed: %v", err)
		}
	}
	return nil
}

func withUnratedTiers(stored []domain.TierRating) []domain.TierRating {
	seen := map[domain.Tier]bool{}
	out := make([]domain.TierRating, 0, len(domain.Tiers))
	for _, r := range stored {
		seen[r.Tier] = true
		out = append(out, r)
	}
	for _, tier := range domain.Tiers {
		if !seen[tier] {
			out = append(out, domain.NewTierRating(tier))
		}
	}
	sortRatings(out)
	return out
}

func sortRatings(ratings []domain.TierRating) {
	sort.SliceStable(ratings, func(i, j int) bool {
		if ratings[i].Rating != ratings[j].Rating {
			return ratings[i].Rating > ratings[j].Rating
		}
		return ratings[i].Tier < ratings[j].Tier
	})
}

// MemoryStore keeps ratings in process when no database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	ratings map[domain.Tier]*domain.TierRating
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ratings: map[domain.Tier]*domain.TierRating{}}
}

func (m *MemoryStore) GetRatings(context.Context) ([]domain.TierRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.TierRating, 0, len(m.ratings))
	for _, r := range m.ratings {
		out = append(out, *r)
	}
	sortRatings(out)
	return out, nil
}

func (m *MemoryStore) ApplyResult(_ context.Context, redTier, yellowTier domain.Tier, winner domain.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	red, yellow := m.get(redTier), m.get(yellowTier)
	redBefore, yellowBefore := red.Rating, yellow.Rating
	red.ApplyOutcome(yellowBefore, winner, domain.Red)
	yellow.ApplyOutcome(redBefore, winner, domain.Yellow)

	now := time.Now()
	red.UpdatedAt, yellow.UpdatedAt = now, now
	return nil
}

func (m *MemoryStore) get(tier domain.Tier) *domain.TierRating {
	r, ok := m.ratings[tier]
	if !ok {
		start := domain.NewTierRating(tier)
		r = &start
		m.ratings[tier] = r
	}
	return r
}
