package bot

import (
	"math/rand"
	"testing"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

func TestFindThreatImmediateWin(t *testing.T) {
	// red holds columns 1-3 of the bottom row
	b := buildBoard(t, 7, 6, [][2]int{{1, red}, {2, red}, {3, red}})

	col, ok := FindThreat(b, domain.Red, ThresholdWin)
	if !ok || col != 0 {
		t.Fatalf("expected leftmost winning column 0, got %d (%v)", col, ok)
	}
	if _, ok := FindThreat(b, domain.Yellow, ThresholdWin); ok {
		t.Fatalf("yellow has no winning move")
	}

	// once column 0 is capped below row 5, column 4 is the only win left
	b.Drop(0, domain.Yellow)
	col, ok = FindThreat(b, domain.Red, ThresholdWin)
	if !ok || col != 4 {
		t.Fatalf("expected column 4, got %d (%v)", col, ok)
	}
}

func TestFindThreatLongerDistances(t *testing.T) {
	b := buildBoard(t, 7, 6, [][2]int{{1, red}, {2, red}, {3, red}})

	// (4,5) sits on horizontal-c with columns 2,3 red and 5 empty
	col, ok := FindThreat(b, domain.Red, ThresholdTwo)
	if !ok || col != 4 {
		t.Fatalf("expected threshold 2 at column 4, got %d (%v)", col, ok)
	}
	// (1,4) sits on vertical-c above the red token at (1,5)
	col, ok = FindThreat(b, domain.Red, ThresholdThree)
	if !ok || col != 1 {
		t.Fatalf("expected threshold 3 at column 1, got %d (%v)", col, ok)
	}
}

func TestFindThreatRejectsBadThreshold(t *testing.T) {
	b := buildBoard(t, 7, 6, [][2]int{{1, red}, {2, red}, {3, red}})
	for _, th := range []int{0, 4, -1} {
		if _, ok := FindThreat(b, domain.Red, th); ok {
			t.Fatalf("threshold %d must never match", th)
		}
	}
}

func TestFindThreatSkipsFullColumns(t *testing.T) {
	// column 0 is full; red's three in column 1 are capped by yellow
	drops := [][2]int{}
	for i := 0; i < 6; i++ {
		drops = append(drops, [2]int{0, red + i%2})
	}
	b := buildBoard(t, 7, 6, drops)
	if _, ok := b.LandingRow(0); ok {
		t.Fatalf("column 0 should be full")
	}
	col, ok := FindThreat(b, domain.Red, ThresholdThree)
	if ok && col == 0 {
		t.Fatalf("full column must be skipped")
	}
}

func TestFindThreatIsIdempotent(t *testing.T) {
	b := buildBoard(t, 7, 6, [][2]int{{3, red}, {3, yellow}, {4, red}, {2, yellow}, {5, red}})
	before := b.String()
	for th := ThresholdWin; th <= ThresholdThree; th++ {
		for _, color := range []domain.Color{domain.Red, domain.Yellow} {
			c1, ok1 := FindThreat(b, color, th)
			c2, ok2 := FindThreat(b, color, th)
			if c1 != c2 || ok1 != ok2 {
				t.Fatalf("threshold %d %s: %d/%v then %d/%v", th, color, c1, ok1, c2, ok2)
			}
		}
	}
	if b.String() != before {
		t.Fatalf("FindThreat mutated the board")
	}
}

// A landing cell has threshold 1 exactly when dropping there wins.
func TestThresholdOneMatchesWinDetection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for game := 0; game < 200; game++ {
		b, _ := domain.NewBoard(7, 6)
		moves := rng.Intn(30)
		for i := 0; i < moves; i++ {
			open := b.OpenColumns()
			if len(open) == 0 {
				break
			}
			b.Drop(open[rng.Intn(len(open))], domain.Color(1+rng.Intn(2)))
		}
		grid := GridOf(b)
		for _, color := range []domain.Color{domain.Red, domain.Yellow} {
			for _, col := range b.OpenColumns() {
				row, _ := b.LandingRow(col)
				predicted := cellMatches(grid, Cell{Column: col, Row: row}, color, ThresholdWin, b)

				after := b.Clone()
				after.Drop(col, color)
				wins := domain.CheckWin(after, col, row, color)
				if predicted != wins {
					t.Fatalf("game %d column %d %s: threat=%v win=%v\n%s", game, col, color, predicted, wins, b)
				}
			}
		}
	}
}

func TestPositionalQueries(t *testing.T) {
	b := buildBoard(t, 7, 6, nil)
	if col, ok := CenterColumnIfOpen(b); !ok || col != 3 {
		t.Fatalf("expected center 3, got %d", col)
	}
	if col, ok := LeftmostOpenColumn(b); !ok || col != 0 {
		t.Fatalf("expected leftmost 0, got %d", col)
	}

	b = buildBoard(t, 7, 6, [][2]int{{3, red}, {0, yellow}})
	if _, ok := CenterColumnIfOpen(b); ok {
		t.Fatalf("center bottom is filled")
	}
	if col, ok := LeftmostOpenColumn(b); !ok || col != 1 {
		t.Fatalf("expected leftmost untouched column 1, got %d", col)
	}

	even := buildBoard(t, 8, 4, nil)
	if col, _ := CenterColumnIfOpen(even); col != 4 {
		t.Fatalf("expected 8/2=4, got %d", col)
	}
}
