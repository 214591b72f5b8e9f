package analytics

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

type TierStats struct {
	Tier   domain.Tier `json:"tier"`
	Games  int         `json:"games"`
	Wins   int         `json:"wins"`
	Losses int         `json:"losses"`
	Draws  int         `json:"draws"`
	Moves  int         `json:"moves"`
}

func (s TierStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Aggregates folds match_finished events into per-tier totals.
type Aggregates struct {
	mu         sync.Mutex
	totalGames int
	totalMoves int
	draws      int
	humanGames int
	tiers      map[domain.Tier]*TierStats
	reasons    map[string]int
	lastPrint  time.Time
}

func NewAggregates() *Aggregates {
	return &Aggregates{
		tiers:   map[domain.Tier]*TierStats{},
		reasons: map[string]int{},
	}
}

func (a *Aggregates) Handle(ev domain.MatchEvent) {
	if ev.Type != domain.EventMatchFinished || ev.Match == nil {
		return
	}
	m := ev.Match

	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalGames++
	a.totalMoves += m.TotalMoves
	a.reasons[m.Reason]++
	if m.IsDraw() {
		a.draws++
	}
	if m.Source == domain.SourceHuman {
		a.humanGames++
	}

	a.addSeat(m.RedTier, m, domain.Red)
	a.addSeat(m.YellowTier, m, domain.Yellow)
}

func (a *Aggregates) addSeat(tier domain.Tier, m *domain.MatchRecord, color domain.Color) {
	if tier == "" {
		return
	}
	s, ok := a.tiers[tier]
	if !ok {
		s = &TierStats{Tier: tier}
		a.tiers[tier] = s
	}
	s.Games++
	s.Moves += m.TotalMoves
	switch m.Winner {
	case domain.None:
		s.Draws++
	case color:
		s.Wins++
	default:
		s.Losses++
	}
}

// Tiers returns per-tier totals sorted by win rate, best first.
func (a *Aggregates) Tiers() []TierStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]TierStats, 0, len(a.tiers))
	for _, s := range a.tiers {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate() != out[j].WinRate() {
			return out[i].WinRate() > out[j].WinRate()
		}
		return out[i].Tier < out[j].Tier
	})
	return out
}

func (a *Aggregates) TotalGames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalGames
}

// PrintEvery logs a summary at most once per interval.
func (a *Aggregates) PrintEvery(interval time.Duration) {
	a.mu.Lock()
	if time.Since(a.lastPrint) < interval {
		a.mu.Unlock()
		return
	}
	a.lastPrint = time.Now()
	total, moves, draws, human := a.totalGames, a.totalMoves, a.draws, a.humanGames
	a.mu.Unlock()

	avg := 0.0
	if total > 0 {
		avg = float64(moves) / float64(total)
	}

	log.Println("=== MATCH ANALYTICS ===")
	log.Printf("Total Games: %d (human: %d), Draws: %d, Avg Moves: %.1f", total, human, draws, avg)
	for _, s := range a.Tiers() {
		log.Printf("  %-12s games=%d wins=%d losses=%d draws=%d win%%=%.1f",
			s.Tier, s.Games, s.Wins, s.Losses, s.Draws, 100*s.WinRate())
	}
	log.Println("=======================")
}
