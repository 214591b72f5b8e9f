package domain

// ClientMessage is what a websocket client sends.
type ClientMessage struct {
	Type   string `json:"type"` // init | make_move | resign
	Token  string `json:"token,omitempty"`
	Column int    `json:"column"`
}

// ServerMessage is pushed to a connected player.
type ServerMessage struct {
	Type     string    `json:"type"` // game_state | move_made | game_over | error
	Message  string    `json:"message,omitempty"`
	GameID   string    `json:"gameId,omitempty"`
	Column   int       `json:"column"`
	Row      int       `json:"row"`
	Player   string    `json:"player,omitempty"`
	Rule     string    `json:"rule,omitempty"`
	NextTurn string    `json:"nextTurn,omitempty"`
	Winner   string    `json:"winner,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	State    *Snapshot `json:"state,omitempty"`
}

// Snapshot is the public view of a game, shared by HTTP, websocket and cache.
type Snapshot struct {
	GameID     string     `json:"gameId"`
	RedName    string     `json:"redName"`
	YellowName string     `json:"yellowName"`
	BotTier    Tier       `json:"botTier,omitempty"`
	Columns    int        `json:"columns"`
	Rows       int        `json:"rows"`
	Board      [][]int    `json:"board"`
	Turn       string     `json:"turn"`
	Status     GameStatus `json:"status"`
	Winner     string     `json:"winner,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	MoveCount  int        `json:"moveCount"`
	Moves      []Move     `json:"moves"`
}
