package bot

import (
	"fmt"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

// Direction is the orientation of a four-cell line.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
	DiagonalDown // column and row grow together
	DiagonalUp   // row shrinks as column grows
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case DiagonalDown:
		return "diagonalDown"
	case DiagonalUp:
		return "diagonalUp"
	}
	return "unknown"
}

// Position is where the anchor cell sits inside the four-cell line:
// A is the leftmost (topmost for vertical lines) cell, D the rightmost (bottommost).
type Position int

const (
	PositionA Position = iota
	PositionB
	PositionC
	PositionD
)

func (p Position) String() string {
	return string(rune('a' + int(p)))
}

// Pattern is an offset template; it only becomes concrete when anchored at a cell.
type Pattern struct {
	Direction Direction
	Position  Position
}

func (p Pattern) String() string {
	return fmt.Sprintf("%s-%s", p.Direction, p.Position)
}

// Cell is a (column, row) coordinate; row 0 is the top of the grid.
type Cell struct {
	Column int
	Row    int
}

// Grid holds the immutable dimensions every geometry query is checked against.
type Grid struct {
	Columns int
	Rows    int
}

func GridOf(b BoardReader) Grid {
	return Grid{Columns: b.ColumnCount(), Rows: b.RowCount()}
}

func (g Grid) Contains(c Cell) bool {
	return c.Column >= 0 && c.Column < g.Columns && c.Row >= 0 && c.Row < g.Rows
}

// template stores the companion offsets of a pattern as {dCol, dRow}
// together with the span of the whole line relative to the anchor.
type template struct {
	pattern Pattern
	offsets [3][2]int
	minCol  int
	maxCol  int
	minRow  int
	maxRow  int
}

func newTemplate(d Direction, p Position, offsets [3][2]int) template {
	t := template{pattern: Pattern{Direction: d, Position: p}, offsets: offsets}
	for _, o := range offsets {
		t.minCol = min(t.minCol, o[0])
		t.maxCol = max(t.maxCol, o[0])
		t.minRow = min(t.minRow, o[1])
		t.maxRow = max(t.maxRow, o[1])
	}
	return t
}

// templates is in canonical scan order: Vertical A-D, Horizontal A-D,
// DiagonalDown A-D, DiagonalUp A-D.
var templates = [16]template{
	newTemplate(Vertical, PositionA, [3][2]int{{0, 1}, {0, 2}, {0, 3}}),
	newTemplate(Vertical, PositionB, [3][2]int{{0, -1}, {0, 1}, {0, 2}}),
	newTemplate(Vertical, PositionC, [3][2]int{{0, -2}, {0, -1}, {0, 1}}),
	newTemplate(Vertical, PositionD, [3][2]int{{0, -3}, {0, -2}, {0, -1}}),

	newTemplate(Horizontal, PositionA, [3][2]int{{1, 0}, {2, 0}, {3, 0}}),
	newTemplate(Horizontal, PositionB, [3][2]int{{-1, 0}, {1, 0}, {2, 0}}),
	newTemplate(Horizontal, PositionC, [3][2]int{{-2, 0}, {-1, 0}, {1, 0}}),
	newTemplate(Horizontal, PositionD, [3][2]int{{-3, 0}, {-2, 0}, {-1, 0}}),

	newTemplate(DiagonalDown, PositionA, [3][2]int{{1, 1}, {2, 2}, {3, 3}}),
	newTemplate(DiagonalDown, PositionB, [3][2]int{{-1, -1}, {1, 1}, {2, 2}}),
	newTemplate(DiagonalDown, PositionC, [3][2]int{{-2, -2}, {-1, -1}, {1, 1}}),
	newTemplate(DiagonalDown, PositionD, [3][2]int{{-3, -3}, {-2, -2}, {-1, -1}}),

	newTemplate(DiagonalUp, PositionA, [3][2]int{{1, -1}, {2, -2}, {3, -3}}),
	newTemplate(DiagonalUp, PositionB, [3][2]int{{-1, 1}, {1, -1}, {2, -2}}),
	newTemplate(DiagonalUp, PositionC, [3][2]int{{-2, 2}, {-1, 1}, {1, -1}}),
	newTemplate(DiagonalUp, PositionD, [3][2]int{{-3, 3}, {-2, 2}, {-1, 1}}),
}

func templateFor(p Pattern) (template, bool) {
	if p.Direction < Vertical || p.Direction > DiagonalUp || p.Position < PositionA || p.Position > PositionD {
		return template{}, false
	}
	return templates[int(p.Direction)*4+int(p.Position)], true
}

// AllPatterns returns the 16 patterns in canonical order.
func AllPatterns() []Pattern {
	out := make([]Pattern, len(templates))
	for i, t := range templates {
		out[i] = t.pattern
	}
	return out
}

func (g Grid) fits(anchor Cell, t template) bool {
	return anchor.Column+t.minCol >= 0 &&
		anchor.Column+t.maxCol < g.Columns &&
		anchor.Row+t.minRow >= 0 &&
		anchor.Row+t.maxRow < g.Rows
}

// ValidPatterns returns, in canonical order, every pattern whose four cells
// stay inside the grid when anchored at cell.
func (g Grid) ValidPatterns(cell Cell) ([]Pattern, error) {
	if !g.Contains(cell) {
		return nil, domain.ErrOutOfBounds
	}
	valid := make([]Pattern, 0, len(templates))
	for _, t := range templates {
		if g.fits(cell, t) {
			valid = append(valid, t.pattern)
		}
	}
	return valid, nil
}

// Companions returns the three non-anchor cells of pattern anchored at cell.
func (g Grid) Companions(cell Cell, p Pattern) ([3]Cell, error) {
	var out [3]Cell
	if !g.Contains(cell) {
		return out, domain.ErrOutOfBounds
	}
	t, ok := templateFor(p)
	if !ok || !g.fits(cell, t) {
		return out, domain.ErrInvalidPattern
	}
	for i, o := range t.offsets {
		out[i] = Cell{Column: cell.Column + o[0], Row: cell.Row + o[1]}
	}
	return out, nil
}
