package arena

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/event"
)

const ErrTooManyGames domain.Error = "too many games requested"

// MatchRecorder persists finished matches.
type MatchRecorder interface {
	SaveMatch(ctx context.Context, m *domain.MatchRecord) error
}

// RatingUpdater moves tier ratings after a finished match.
type RatingUpdater interface {
	RecordResult(ctx context.Context, redTier, yellowTier domain.Tier, winner domain.Color) error
}

type Service struct {
	recorder  MatchRecorder
	ratings   RatingUpdater
	publisher event.Publisher
	workers   int
	maxGames  int
}

// NewService accepts nil collaborators; the matching side effect is skipped.
func NewService(recorder MatchRecorder, ratings RatingUpdater, publisher event.Publisher, workers, maxGames int) *Service {
	if workers < 1 {
		workers = 1
	}
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	return &Service{
		recorder:  recorder,
		ratings:   ratings,
		publisher: publisher,
		workers:   workers,
		maxGames:  maxGames,
	}
}

type SeriesRequest struct {
	A         Agent
	B         Agent
	Games     int
	Seed      int64
	Alternate bool
	Columns   int
	Rows      int
}

// Standing is the series record of one agent, whichever color it played.
type Standing struct {
	Agent  Agent `json:"agent"`
	Wins   int   `json:"wins"`
	Losses int   `json:"losses"`
	Draws  int   `json:"draws"`
}

type SeriesSummary struct {
	Games     int                  `json:"games"`
	BaseSeed  int64                `json:"baseSeed"`
	A         Standing             `json:"a"`
	B         Standing             `json:"b"`
	Matches   []domain.MatchRecord `json:"matches"`
	Duration  time.Duration        `json:"duration"`
	Cancelled bool                 `json:"cancelled,omitempty"`
}

// matchConfig decides who holds Red in game i. With Alternate, B takes Red on odd games.
func (r SeriesRequest) matchConfig(i int, baseSeed int64) (MatchConfig, bool) {
	swapped := r.Alternate && i%2 == 1
	red, yellow := r.A, r.B
	if swapped {
		red, yellow = r.B, r.A
	}
	return MatchConfig{
		Red:     red,
		Yellow:  yellow,
		Columns: r.Columns,
		Rows:    r.Rows,
		Seed:    baseSeed + int64(i),
	}, swapped
}

type seriesOutcome struct {
	index   int
	result  *MatchResult
	swapped bool
}

// RunSeries plays req.Games matches on the worker pool. Game i is seeded with
// BaseSeed+i, so a series can be replayed from its summary.
func (s *Service) RunSeries(ctx context.Context, req SeriesRequest) (*SeriesSummary, error) {
	if req.Games <= 0 {
		req.Games = 1
	}
	if s.maxGames > 0 && req.Games > s.maxGames {
		return nil, ErrTooManyGames
	}
	for _, tier := range []domain.Tier{req.A.Tier, req.B.Tier} {
		if _, err := domain.ParseTier(string(tier)); err != nil {
			return nil, err
		}
	}
	if req.Columns == 0 {
		req.Columns = domain.DefaultColumns
	}
	if req.Rows == 0 {
		req.Rows = domain.DefaultRows
	}
	if err := domain.ValidateSize(req.Columns, req.Rows, 0, 0); err != nil {
		return nil, err
	}
	if req.A.Name == "" {
		req.A = NewAgent(req.A.Tier, "")
	}
	if req.B.Name == "" {
		req.B = NewAgent(req.B.Tier, "")
	}
	baseSeed := req.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	started := time.Now()
	jobs := make(chan int)
	outcomes := make(chan seriesOutcome, req.Games)

	var (
		wg       sync.WaitGroup
		failMu   sync.Mutex
		matchErr error
	)
	for w := 0; w < min(s.workers, req.Games); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cfg, swapped := req.matchConfig(i, baseSeed)
				result, err := RunMatch(ctx, cfg)
				if err != nil {
					if ctx.Err() == nil {
						log.Printf("[ARENA] Match %d failed: %v", i, err)
						failMu.Lock()
						if matchErr == nil {
							matchErr = fmt.Errorf("match %d: %w", i, err)
						}
						failMu.Unlock()
					}
					continue
				}
				s.record(ctx, result)
				outcomes <- seriesOutcome{index: i, result: result, swapped: swapped}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < req.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	ordered := make([]*seriesOutcome, req.Games)
	for o := range outcomes {
		ordered[o.index] = &o
	}

	summary := &SeriesSummary{
		BaseSeed: baseSeed,
		A:        Standing{Agent: req.A},
		B:        Standing{Agent: req.B},
		Matches:  []domain.MatchRecord{},
	}
	for _, o := range ordered {
		if o == nil {
			continue
		}
		summary.Games++
		summary.Matches = append(summary.Matches, o.result.Record)
		tally(summary, o.result.Record.Winner, o.swapped)
	}
	summary.Duration = time.Since(started)

	if err := ctx.Err(); err != nil {
		summary.Cancelled = true
		return summary, err
	}
	if matchErr != nil {
		return summary, matchErr
	}

	log.Printf("[ARENA] Series %s vs %s finished: %d-%d-%d in %v",
		req.A.Name, req.B.Name, summary.A.Wins, summary.B.Wins, summary.A.Draws, summary.Duration)
	return summary, nil
}

func tally(summary *SeriesSummary, winner domain.Color, swapped bool) {
	aColor := domain.Red
	if swapped {
		aColor = domain.Yellow
	}
	switch winner {
	case domain.None:
		summary.A.Draws++
		summary.B.Draws++
	case aColor:
		summary.A.Wins++
		summary.B.Losses++
	default:
		summary.B.Wins++
		summary.A.Losses++
	}
}

// record runs the side effects of a finished match; failures are only logged.
func (s *Service) record(ctx context.Context, result *MatchResult) {
	m := &result.Record
	if s.recorder != nil {
		if err := s.recorder.SaveMatch(ctx, m); err != nil {
			log.Printf("[ARENA] Failed to save match %s: %v", m.ID, err)
		}
	}
	if s.ratings != nil {
		if err := s.ratings.RecordResult(ctx, m.RedTier, m.YellowTier, m.Winner); err != nil {
			log.Printf("[ARENA] Failed to update ratings for match %s: %v", m.ID, err)
		}
	}
	ev := domain.MatchEvent{Type: domain.EventMatchFinished, Match: m, At: m.FinishedAt}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Printf("[ARENA] Failed to publish match %s: %v", m.ID, err)
	}
}
