package domain

import "testing"

func TestGameAlternatesAndDetectsWin(t *testing.T) {
	g, err := NewGame(DefaultColumns, DefaultRows)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if g.Turn != Red {
		t.Fatalf("expected red to start")
	}
	if _, err := g.MakeMove(Yellow, 0); err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	// red stacks column 0, yellow stacks column 1
	for i := 0; i < 3; i++ {
		if _, err := g.MakeMove(Red, 0); err != nil {
			t.Fatalf("red move %d failed: %v", i, err)
		}
		if _, err := g.MakeMove(Yellow, 1); err != nil {
			t.Fatalf("yellow move %d failed: %v", i, err)
		}
	}
	if _, err := g.MakeMove(Red, 0); err != nil {
		t.Fatalf("winning move failed: %v", err)
	}
	if g.Status != StatusWon || g.Winner != Red {
		t.Fatalf("expected red win, got status %s winner %s", g.Status, g.Winner)
	}
	if g.MoveCount != 7 || len(g.MoveColumns()) != 7 {
		t.Fatalf("expected 7 moves, got %d", g.MoveCount)
	}
	if _, err := g.MakeMove(Yellow, 2); err != ErrGameFinished {
		t.Fatalf("expected ErrGameFinished, got %v", err)
	}
}

func TestGameDraw(t *testing.T) {
	g, _ := NewGame(4, 4)
	// column pairs alternate colors so no four can line up
	order := []int{0, 1, 0, 1, 1, 0, 1, 0, 2, 3, 2, 3, 3, 2, 3, 2}
	for i, col := range order {
		if _, err := g.MakeMove(g.Turn, col); err != nil {
			t.Fatalf("move %d in column %d failed: %v\n%s", i, col, err, g.Board)
		}
	}
	if g.Status != StatusDraw {
		t.Fatalf("expected draw, got %s\n%s", g.Status, g.Board)
	}
}

func TestResign(t *testing.T) {
	g, _ := NewGame(DefaultColumns, DefaultRows)
	if err := g.Resign(Yellow); err != nil {
		t.Fatalf("resign failed: %v", err)
	}
	if g.Winner != Red || !g.IsFinished() {
		t.Fatalf("expected red to win by resignation")
	}
	if err := g.Resign(Red); err != ErrGameFinished {
		t.Fatalf("expected ErrGameFinished, got %v", err)
	}
}

func TestCalculateElo(t *testing.T) {
	if got := CalculateElo(1200, 1200, 1.0); got != 1216 {
		t.Fatalf("expected 1216 after an even win, got %d", got)
	}
	if got := CalculateElo(1200, 1200, 0.5); got != 1200 {
		t.Fatalf("expected unchanged rating after an even draw, got %d", got)
	}
	if ScoreFor(None, Red) != 0.5 || ScoreFor(Red, Red) != 1.0 || ScoreFor(Yellow, Red) != 0.0 {
		t.Fatalf("unexpected scores")
	}
}

func TestParseTierAndColor(t *testing.T) {
	if tier, err := ParseTier(" Advanced "); err != nil || tier != TierAdvanced {
		t.Fatalf("expected advanced, got %q %v", tier, err)
	}
	if _, err := ParseTier("grandmaster"); err != ErrUnknownTier {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
	if c, err := ParseColor("Y"); err != nil || c != Yellow {
		t.Fatalf("expected yellow, got %v %v", c, err)
	}
	if Red.Opponent() != Yellow || Yellow.Opponent() != Red || None.Opponent() != None {
		t.Fatalf("unexpected opponents")
	}
	if DisplayName(GetBotName(TierRandom), Red) != "Ronaldo Random (Red)" {
		t.Fatalf("unexpected display name")
	}
}

func TestTierRatingApplyOutcome(t *testing.T) {
	r := NewTierRating(TierAdvanced)
	if r.Rating != InitialRating || r.Name != "Norman Natural" {
		t.Fatalf("unexpected starting rating %+v", r)
	}

	r.ApplyOutcome(InitialRating, Red, Red)
	if r.Rating != 1216 || r.Wins != 1 || r.GamesPlayed != 1 {
		t.Fatalf("unexpected rating after win %+v", r)
	}

	r.ApplyOutcome(InitialRating, None, Red)
	if r.Draws != 1 || r.GamesPlayed != 2 {
		t.Fatalf("draw not counted %+v", r)
	}

	r.ApplyOutcome(InitialRating, Yellow, Red)
	if r.Losses != 1 || r.GamesPlayed != 3 {
		t.Fatalf("loss not counted %+v", r)
	}
}

func TestMatchRecordWinnerName(t *testing.T) {
	m := MatchRecord{RedName: "a", YellowName: "b", Winner: Yellow}
	if m.WinnerName() != "b" || m.IsDraw() {
		t.Fatalf("unexpected winner %q", m.WinnerName())
	}
	m.Winner = None
	if m.WinnerName() != "" || !m.IsDraw() {
		t.Fatalf("expected a draw")
	}
}
