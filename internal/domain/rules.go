package domain

// lines through a cell: horizontal, vertical, diagonal \ and diagonal /
var winDirections = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// CheckWin reports whether the token at (col,row) completes four in a row
// for color. Only lines passing through that cell are examined.
func CheckWin(b *Board, col, row int, color Color) bool {
	if color == None || b.ColorAt(col, row) != color {
		return false
	}
	for _, d := range winDirections {
		total := 1 +
			b.CountInDirection(col, row, d[0], d[1], color) +
			b.CountInDirection(col, row, -d[0], -d[1], color)
		if total >= ToWin {
			return true
		}
	}
	return false
}
