package domain

import "strings"

// Color is the content of a board slot. None means the slot is empty.
type Color int

const (
	None   Color = 0
	Red    Color = 1
	Yellow Color = 2
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	default:
		return "none"
	}
}

// Opponent returns the other token color. None has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Yellow
	case Yellow:
		return Red
	default:
		return None
	}
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r", "1":
		return Red, nil
	case "yellow", "y", "2":
		return Yellow, nil
	}
	return None, ErrUnknownColor
}

// Tier selects which decision rules a bot consults.
type Tier string

const (
	TierRandom       Tier = "random"
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// Tiers lists every tier from weakest to strongest.
var Tiers = []Tier{TierRandom, TierBeginner, TierIntermediate, TierAdvanced}

func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tiers {
		if t == known {
			return t, nil
		}
	}
	return "", ErrUnknownTier
}

var BotNames = map[Tier]string{
	TierRandom:       "Ronaldo Random",
	TierBeginner:     "Benjamin Beginner",
	TierIntermediate: "Irvine Intermediate",
	TierAdvanced:     "Norman Natural",
}

func GetBotName(tier Tier) string {
	if name, ok := BotNames[tier]; ok {
		return name
	}
	return "BOT"
}

// DisplayName is how an agent is shown in a game, with its color.
func DisplayName(name string, color Color) string {
	if color == Red {
		return name + " (Red)"
	}
	return name + " (Yellow)"
}

const (
	DefaultColumns = 7
	DefaultRows    = 6
	ToWin          = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrOutOfBounds       Error = "cell is out of bounds"
	ErrInvalidPattern    Error = "pattern does not fit at this cell"
	ErrColumnFull        Error = "column is full"
	ErrNoOpenColumn      Error = "no open column left on the board"
	ErrInvalidDimensions Error = "invalid board dimensions"
	ErrInvalidMove       Error = "invalid move"
	ErrNotYourTurn       Error = "not your turn"
	ErrGameFinished      Error = "game is already finished"
	ErrUnknownTier       Error = "unknown tier"
	ErrUnknownColor      Error = "unknown color"
)
