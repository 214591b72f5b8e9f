package domain

import "time"

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonResign      = "resign"
	ReasonAbandoned   = "abandoned"
)

const (
	SourceArena = "arena"
	SourceHuman = "human"
)

// MatchRecord is a finished game as it is stored and published.
// A human seat has an empty tier.
type MatchRecord struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	RedName    string    `json:"redName"`
	RedTier    Tier      `json:"redTier,omitempty"`
	YellowName string    `json:"yellowName"`
	YellowTier Tier      `json:"yellowTier,omitempty"`
	Winner     Color     `json:"winner"`
	Reason     string    `json:"reason"`
	TotalMoves int       `json:"totalMoves"`
	Moves      []int     `json:"moves"`
	Board      [][]int   `json:"board"`
	Columns    int       `json:"columns"`
	Rows       int       `json:"rows"`
	CreatedAt  time.Time `json:"createdAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

func (m *MatchRecord) IsDraw() bool {
	return m.Winner == None
}

// WinnerName returns the name of the winning agent, or "" for a draw.
func (m *MatchRecord) WinnerName() string {
	switch m.Winner {
	case Red:
		return m.RedName
	case Yellow:
		return m.YellowName
	}
	return ""
}

// TierRating is the Elo standing of one bot tier.
type TierRating struct {
	Tier        Tier      `json:"tier"`
	Name        string    `json:"name"`
	Rating      int       `json:"rating"`
	GamesPlayed int       `json:"gamesPlayed"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Draws       int       `json:"draws"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTierRating returns the starting standing for tier.
func NewTierRating(tier Tier) TierRating {
	return TierRating{Tier: tier, Name: GetBotName(tier), Rating: InitialRating}
}

// ApplyOutcome records one game played as color and moves the rating against opponent.
func (r *TierRating) ApplyOutcome(opponent int, winner, color Color) {
	score := ScoreFor(winner, color)
	r.Rating = CalculateElo(r.Rating, opponent, score)
	r.GamesPlayed++
	switch score {
	case 1.0:
		r.Wins++
	case 0.0:
		r.Losses++
	default:
		r.Draws++
	}
}

type MatchEvent struct {
	Type  string       `json:"type"` // match_finished | game_started | move_made
	Match *MatchRecord `json:"match,omitempty"`
	Move  *MoveEvent   `json:"move,omitempty"`
	At    time.Time    `json:"at"`
}

type MoveEvent struct {
	GameID string `json:"gameId"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Color  Color  `json:"color"`
	Rule   string `json:"rule,omitempty"`
}

const (
	EventMatchFinished = "match_finished"
	EventGameStarted   = "game_started"
	EventMoveMade      = "move_made"
)
