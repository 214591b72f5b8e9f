package arena

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

type fakeRecorder struct {
	mu      sync.Mutex
	matches []domain.MatchRecord
}

func (f *fakeRecorder) SaveMatch(_ context.Context, m *domain.MatchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches = append(f.matches, *m)
	return nil
}

type fakeRatings struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeRatings) RecordResult(context.Context, domain.Tier, domain.Tier, domain.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("ratings are down")
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.MatchEvent
}

func (f *fakePublisher) Publish(_ context.Context, ev domain.MatchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func agent(tier domain.Tier) Agent {
	return NewAgent(tier, "")
}

func TestRunMatchPlaysToCompletion(t *testing.T) {
	result, err := RunMatch(context.Background(), MatchConfig{
		Red:    agent(domain.TierAdvanced),
		Yellow: agent(domain.TierRandom),
		Seed:   7,
	})
	if err != nil {
		t.Fatalf("RunMatch failed: %v", err)
	}

	rec := result.Record
	if rec.TotalMoves != len(rec.Moves) || rec.TotalMoves != len(result.Turns) {
		t.Fatalf("move counts disagree: %d %d %d", rec.TotalMoves, len(rec.Moves), len(result.Turns))
	}
	if rec.RedName != "Norman Natural" || rec.YellowName != "Ronaldo Random" {
		t.Fatalf("unexpected names %q %q", rec.RedName, rec.YellowName)
	}

	tokens := 0
	for _, line := range rec.Board {
		for _, v := range line {
			if v != 0 {
				tokens++
			}
		}
	}
	if tokens != rec.TotalMoves {
		t.Fatalf("board holds %d tokens for %d moves", tokens, rec.TotalMoves)
	}

	first := result.Turns[0]
	if first.Color != domain.Red || first.Column != 3 || first.Rule != "center" {
		t.Fatalf("expected advanced red to open in the center, got %+v", first)
	}
	for i, turn := range result.Turns {
		want := domain.Red
		if i%2 == 1 {
			want = domain.Yellow
		}
		if turn.Color != want {
			t.Fatalf("turn %d played by %s", i, turn.Color)
		}
	}

	last := result.Turns[len(result.Turns)-1]
	switch rec.Winner {
	case domain.None:
		if rec.Reason != domain.ReasonDraw || !result.Final.IsFull() {
			t.Fatalf("draw must end on a full board")
		}
	default:
		if rec.Reason != domain.ReasonConnectFour || last.Color != rec.Winner {
			t.Fatalf("winner %s did not play the last move", rec.Winner)
		}
		if !domain.CheckWin(result.Final, last.Column, last.Row, last.Color) {
			t.Fatalf("last move does not connect four")
		}
	}
}

func TestRunMatchIsReproducibleFromSeed(t *testing.T) {
	cfg := MatchConfig{Red: agent(domain.TierRandom), Yellow: agent(domain.TierBeginner), Seed: 1234}
	a, err := RunMatch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := RunMatch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(a.Record.Moves, b.Record.Moves) || a.Record.Winner != b.Record.Winner {
		t.Fatalf("same seed produced different games:\n%v\n%v", a.Record.Moves, b.Record.Moves)
	}
}

func TestRunMatchRejectsBadInput(t *testing.T) {
	_, err := RunMatch(context.Background(), MatchConfig{Red: Agent{Tier: "grandmaster"}, Yellow: agent(domain.TierRandom)})
	if !errors.Is(err, domain.ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}

	_, err = RunMatch(context.Background(), MatchConfig{Red: agent(domain.TierRandom), Yellow: agent(domain.TierRandom), Columns: 3, Rows: 3})
	if !errors.Is(err, domain.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunMatch(ctx, MatchConfig{Red: agent(domain.TierRandom), Yellow: agent(domain.TierRandom)}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunMatchReportsEveryTurn(t *testing.T) {
	seen := 0
	result, err := RunMatch(context.Background(), MatchConfig{
		Red:     agent(domain.TierIntermediate),
		Yellow:  agent(domain.TierIntermediate),
		Columns: 5,
		Rows:    4,
		Seed:    99,
		OnTurn: func(turn Turn, b *domain.Board) {
			seen++
			if turn.Number != seen || b.ColorAt(turn.Column, turn.Row) != turn.Color {
				t.Errorf("turn %+v not reflected on the board", turn)
			}
		},
	})
	if err != nil {
		t.Fatalf("RunMatch failed: %v", err)
	}
	if seen != result.Record.TotalMoves {
		t.Fatalf("callback saw %d turns, match had %d", seen, result.Record.TotalMoves)
	}
}

func TestRunSeries(t *testing.T) {
	recorder := &fakeRecorder{}
	ratings := &fakeRatings{}
	publisher := &fakePublisher{}
	svc := NewService(recorder, ratings, publisher, 3, 50)

	req := SeriesRequest{
		A:         agent(domain.TierAdvanced),
		B:         agent(domain.TierBeginner),
		Games:     6,
		Seed:      500,
		Alternate: true,
	}
	summary, err := svc.RunSeries(context.Background(), req)
	if err != nil {
		t.Fatalf("RunSeries failed: %v", err)
	}

	if summary.Games != 6 || len(summary.Matches) != 6 {
		t.Fatalf("expected 6 games, got %d", summary.Games)
	}
	if summary.A.Wins+summary.B.Wins+summary.A.Draws != 6 || summary.A.Draws != summary.B.Draws {
		t.Fatalf("standings do not add up: %+v %+v", summary.A, summary.B)
	}
	if summary.A.Wins != summary.B.Losses || summary.B.Wins != summary.A.Losses {
		t.Fatalf("standings are not mirrored: %+v %+v", summary.A, summary.B)
	}
	if len(recorder.matches) != 6 || len(publisher.events) != 6 || ratings.calls != 6 {
		t.Fatalf("side effects missing: saved=%d published=%d rated=%d", len(recorder.matches), len(publisher.events), ratings.calls)
	}

	for i, m := range summary.Matches {
		wantRed := domain.TierAdvanced
		if i%2 == 1 {
			wantRed = domain.TierBeginner
		}
		if m.RedTier != wantRed {
			t.Fatalf("game %d: expected %s as red, got %s", i, wantRed, m.RedTier)
		}
	}

	// each game can be replayed from the base seed
	cfg, _ := req.matchConfig(3, summary.BaseSeed)
	replay, err := RunMatch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !reflect.DeepEqual(replay.Record.Moves, summary.Matches[3].Moves) {
		t.Fatalf("replay of game 3 diverged")
	}
}

func TestRunSeriesValidation(t *testing.T) {
	svc := NewService(nil, nil, nil, 2, 10)

	_, err := svc.RunSeries(context.Background(), SeriesRequest{A: agent(domain.TierRandom), B: agent(domain.TierRandom), Games: 11})
	if !errors.Is(err, ErrTooManyGames) {
		t.Fatalf("expected ErrTooManyGames, got %v", err)
	}

	_, err = svc.RunSeries(context.Background(), SeriesRequest{A: Agent{Tier: "expert"}, B: agent(domain.TierRandom)})
	if !errors.Is(err, domain.ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}

	summary, err := svc.RunSeries(context.Background(), SeriesRequest{A: agent(domain.TierRandom), B: agent(domain.TierRandom), Columns: 2, Rows: 2})
	if !errors.Is(err, domain.ErrInvalidDimensions) || summary != nil {
		t.Fatalf("expected ErrInvalidDimensions before any game, got %v %+v", err, summary)
	}

	summary, err = svc.RunSeries(context.Background(), SeriesRequest{A: Agent{Tier: domain.TierRandom}, B: Agent{Tier: domain.TierBeginner}})
	if err != nil {
		t.Fatalf("default series failed: %v", err)
	}
	if summary.Games != 1 || summary.B.Agent.Name != "Benjamin Beginner" {
		t.Fatalf("expected one game with default names, got %+v", summary)
	}
}

func TestRunSeriesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(nil, nil, nil, 2, 0)
	summary, err := svc.RunSeries(ctx, SeriesRequest{A: agent(domain.TierRandom), B: agent(domain.TierRandom), Games: 20, Seed: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !summary.Cancelled || summary.Games == 20 {
		t.Fatalf("expected a partial cancelled summary, got %+v", summary)
	}
}
