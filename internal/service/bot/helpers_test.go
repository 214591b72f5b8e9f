package bot

import (
	"testing"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

// buildBoard drops tokens in order; each entry is {column, color}.
func buildBoard(t *testing.T, columns, rows int, drops [][2]int) *domain.Board {
	t.Helper()
	b, err := domain.NewBoard(columns, rows)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	for i, d := range drops {
		if _, err := b.Drop(d[0], domain.Color(d[1])); err != nil {
			t.Fatalf("drop %d (%v) failed: %v", i, d, err)
		}
	}
	return b
}

const (
	red    = int(domain.Red)
	yellow = int(domain.Yellow)
)

// fixedRand always returns the same index and counts how often it was asked.
type fixedRand struct {
	index int
	calls int
}

func (f *fixedRand) Intn(n int) int {
	f.calls++
	return f.index % n
}

func countTokens(b *domain.Board) int {
	n := 0
	for r := 0; r < b.RowCount(); r++ {
		for c := 0; c < b.ColumnCount(); c++ {
			if b.IsFilled(c, r) {
				n++
			}
		}
	}
	return n
}
