package domain

import (
	"fmt"
	"strings"
)

// Board is the grid storage. slots[0] represents the top row and
// slots[rows-1] the bottom one; tokens fall towards the bottom.
type Board struct {
	columns int
	rows    int
	slots   [][]Color
}

// ValidateSize checks that a grid is at least ToWin on each side and within
// maxColumns x maxRows. A maximum of zero or less is unbounded.
func ValidateSize(columns, rows, maxColumns, maxRows int) error {
	if columns < ToWin || rows < ToWin {
		return fmt.Errorf("board %dx%d is smaller than %dx%d: %w", columns, rows, ToWin, ToWin, ErrInvalidDimensions)
	}
	if (maxColumns > 0 && columns > maxColumns) || (maxRows > 0 && rows > maxRows) {
		return fmt.Errorf("board %dx%d exceeds %dx%d: %w", columns, rows, maxColumns, maxRows, ErrInvalidDimensions)
	}
	return nil
}

func NewBoard(columns, rows int) (*Board, error) {
	if columns < ToWin || rows < ToWin {
		return nil, ErrInvalidDimensions
	}
	slots := make([][]Color, rows)
	for i := range slots {
		slots[i] = make([]Color, columns)
	}
	return &Board{columns: columns, rows: rows, slots: slots}, nil
}

func (b *Board) ColumnCount() int { return b.columns }

func (b *Board) RowCount() int { return b.rows }

func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && col < b.columns && row >= 0 && row < b.rows
}

func (b *Board) IsFilled(col, row int) bool {
	return b.InBounds(col, row) && b.slots[row][col] != None
}

// ColorAt is only meaningful for filled slots; empty or out-of-range cells report None.
func (b *Board) ColorAt(col, row int) Color {
	if !b.InBounds(col, row) {
		return None
	}
	return b.slots[row][col]
}

// LandingRow returns the lowest empty row of col, where the next token would land.
func (b *Board) LandingRow(col int) (int, bool) {
	if col < 0 || col >= b.columns {
		return -1, false
	}
	for row := b.rows - 1; row >= 0; row-- {
		if b.slots[row][col] == None {
			return row, true
		}
	}
	return -1, false
}

// Drop places one token of color in the lowest empty slot of col and
// returns the row it landed on. A full column leaves the board untouched.
func (b *Board) Drop(col int, color Color) (int, error) {
	if col < 0 || col >= b.columns {
		return -1, ErrOutOfBounds
	}
	if color != Red && color != Yellow {
		return -1, ErrUnknownColor
	}
	row, ok := b.LandingRow(col)
	if !ok {
		return -1, ErrColumnFull
	}
	b.slots[row][col] = color
	return row, nil
}

func (b *Board) OpenColumns() []int {
	open := []int{}
	for col := 0; col < b.columns; col++ {
		if b.slots[0][col] == None {
			open = append(open, col)
		}
	}
	return open
}

func (b *Board) IsFull() bool {
	for col := 0; col < b.columns; col++ {
		if b.slots[0][col] == None {
			return false
		}
	}
	return true
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	slots := make([][]Color, len(b.slots))
	for i := range b.slots {
		slots[i] = make([]Color, len(b.slots[i]))
		copy(slots[i], b.slots[i])
	}
	return &Board{columns: b.columns, rows: b.rows, slots: slots}
}

// Cells returns the row-major 0/1/2 encoding used on the wire and in storage.
func (b *Board) Cells() [][]int {
	cells := make([][]int, b.rows)
	for r := range b.slots {
		cells[r] = make([]int, b.columns)
		for c, slot := range b.slots[r] {
			cells[r][c] = int(slot)
		}
	}
	return cells
}

// BoardFromCells rebuilds a board from its Cells encoding. It rejects ragged
// grids, unknown slot values and tokens floating above an empty slot.
func BoardFromCells(cells [][]int) (*Board, error) {
	if len(cells) == 0 {
		return nil, ErrInvalidDimensions
	}
	b, err := NewBoard(len(cells[0]), len(cells))
	if err != nil {
		return nil, err
	}
	for r, line := range cells {
		if len(line) != b.columns {
			return nil, fmt.Errorf("row %d has %d columns, expected %d: %w", r, len(line), b.columns, ErrInvalidDimensions)
		}
		for c, v := range line {
			color := Color(v)
			if color != None && color != Red && color != Yellow {
				return nil, fmt.Errorf("slot (%d,%d) holds %d: %w", c, r, v, ErrUnknownColor)
			}
			b.slots[r][c] = color
		}
	}
	for c := 0; c < b.columns; c++ {
		for r := 1; r < b.rows; r++ {
			if b.slots[r-1][c] != None && b.slots[r][c] == None {
				return nil, fmt.Errorf("column %d has a token above an empty slot: %w", c, ErrInvalidMove)
			}
		}
	}
	return b, nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			switch b.slots[r][c] {
			case Red:
				sb.WriteByte('R')
			case Yellow:
				sb.WriteByte('Y')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < b.columns; c++ {
		sb.WriteString(fmt.Sprint(c % 10))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// this counts the number of disks in a specific direction
func (b *Board) CountInDirection(col, row, deltaCol, deltaRow int, color Color) int {
	count := 0
	c, r := col+deltaCol, row+deltaRow
	for b.InBounds(c, r) && b.slots[r][c] == color {
		count++
		c += deltaCol
		r += deltaRow
	}
	return count
}
