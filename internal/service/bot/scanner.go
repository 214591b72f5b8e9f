package bot

import (
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

const (
	ThresholdWin   = 1 // the drop itself completes four
	ThresholdTwo   = 2 // one more token after the drop
	ThresholdThree = 3 // two more tokens after the drop
)

// FindThreat scans columns left to right and returns the first one whose
// landing cell lies on a line classified exactly at threshold for color.
// The classification ignores how the opponent may answer in between.
func FindThreat(b BoardReader, color domain.Color, threshold int) (int, bool) {
	if threshold < ThresholdWin || threshold > ThresholdThree {
		return -1, false
	}
	grid := GridOf(b)
	for col := 0; col < grid.Columns; col++ {
		row, ok := b.LandingRow(col)
		if !ok {
			continue
		}
		if cellMatches(grid, Cell{Column: col, Row: row}, color, threshold, b) {
			return col, true
		}
	}
	return -1, false
}

func cellMatches(grid Grid, anchor Cell, color domain.Color, threshold int, b BoardReader) bool {
	patterns, err := grid.ValidPatterns(anchor)
	if err != nil {
		return false
	}
	for _, p := range patterns {
		companions, err := grid.Companions(anchor, p)
		if err != nil {
			continue
		}
		if n, ok := Classify(companions, color, b); ok && n == threshold {
			return true
		}
	}
	return false
}

// CenterColumnIfOpen returns the middle column when its bottom slot is still empty.
// It does not check the rest of the column.
func CenterColumnIfOpen(b BoardReader) (int, bool) {
	middle := b.ColumnCount() / 2
	if b.IsFilled(middle, b.RowCount()-1) {
		return -1, false
	}
	return middle, true
}

// LeftmostOpenColumn returns the first untouched column, scanning left to right.
func LeftmostOpenColumn(b BoardReader) (int, bool) {
	bottom := b.RowCount() - 1
	for col := 0; col < b.ColumnCount(); col++ {
		if !b.IsFilled(col, bottom) {
			return col, true
		}
	}
	return -1, false
}

// OpenColumns lists every column that can still take a token.
func OpenColumns(b BoardReader) []int {
	open := []int{}
	for col := 0; col < b.ColumnCount(); col++ {
		if _, ok := b.LandingRow(col); ok {
			open = append(open, col)
		}
	}
	return open
}
