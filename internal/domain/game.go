package domain

// Move is one token placement in a game.
type Move struct {
	Column int   `json:"column"`
	Row    int   `json:"row"`
	Color  Color `json:"color"`
}

type Game struct {
	Board     *Board
	Turn      Color
	Status    GameStatus
	Winner    Color
	MoveCount int
	Moves     []Move
}

// NewGame starts an empty game; Red always moves first.
func NewGame(columns, rows int) (*Game, error) {
	board, err := NewBoard(columns, rows)
	if err != nil {
		return nil, err
	}
	return &Game{
		Board:  board,
		Turn:   Red,
		Status: StatusActive,
		Winner: None,
	}, nil
}

func (g *Game) MakeMove(color Color, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameFinished
	}
	if color != g.Turn {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.Drop(column, color)
	if err != nil {
		return -1, err
	}

	g.MoveCount++
	g.Moves = append(g.Moves, Move{Column: column, Row: row, Color: color})

	if CheckWin(g.Board, column, row, color) {
		g.Status = StatusWon
		g.Winner = color
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.Turn = color.Opponent()
	return row, nil
}

// Resign ends the game in favour of the other color.
func (g *Game) Resign(color Color) error {
	if g.Status != StatusActive {
		return ErrGameFinished
	}
	g.Status = StatusWon
	g.Winner = color.Opponent()
	return nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// MoveColumns returns the column sequence of the game, for storage.
func (g *Game) MoveColumns() []int {
	cols := make([]int, len(g.Moves))
	for i, m := range g.Moves {
		cols[i] = m.Column
	}
	return cols
}
