package bot

import (
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

// BoardReader is the read side of the board the engine scans.
type BoardReader interface {
	ColumnCount() int
	RowCount() int
	IsFilled(col, row int) bool
	ColorAt(col, row int) domain.Color
	LandingRow(col int) (int, bool)
}

// Board adds the single mutation a policy may perform.
type Board interface {
	BoardReader
	Drop(col int, color domain.Color) (int, error)
}

// Classify returns how many more tokens of color, counting the one about to
// land on the anchor, complete the line whose other three cells are companions.
// A line holding any opposing token, or none of color's tokens, is not a threat.
func Classify(companions [3]Cell, color domain.Color, b BoardReader) (int, bool) {
	same, empty := 0, 0
	for _, c := range companions {
		if !b.IsFilled(c.Column, c.Row) {
			empty++
			continue
		}
		if b.ColorAt(c.Column, c.Row) != color {
			return 0, false
		}
		same++
	}

	switch {
	case same == 3:
		return 1, true
	case same == 2 && empty == 1:
		return 2, true
	case same == 1 && empty == 2:
		return 3, true
	}
	return 0, false
}
