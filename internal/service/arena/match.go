package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/service/bot"
	"github.com/iamasit07/connect4-agents/backend/pkg/uid"
)

// Agent is one seat of an arena match.
type Agent struct {
	Name string      `json:"name"`
	Tier domain.Tier `json:"tier"`
}

// NewAgent uses the tier's default bot name when name is empty.
func NewAgent(tier domain.Tier, name string) Agent {
	if name == "" {
		name = domain.GetBotName(tier)
	}
	return Agent{Name: name, Tier: tier}
}

type MatchConfig struct {
	ID      string
	Red     Agent
	Yellow  Agent
	Columns int
	Rows    int
	Seed    int64
	// OnTurn, when set, sees every turn right after it is played.
	OnTurn func(Turn, *domain.Board)
}

// Turn is one move together with the rule that chose it.
type Turn struct {
	Number int          `json:"number"`
	Color  domain.Color `json:"color"`
	Column int          `json:"column"`
	Row    int          `json:"row"`
	Rule   string       `json:"rule"`
}

type MatchResult struct {
	Record   domain.MatchRecord `json:"record"`
	Turns    []Turn             `json:"turns"`
	Seed     int64              `json:"seed"`
	Duration time.Duration      `json:"duration"`
	Final    *domain.Board      `json:"-"`
}

// RunMatch plays one bot-vs-bot game to completion. Red moves first.
func RunMatch(ctx context.Context, cfg MatchConfig) (*MatchResult, error) {
	if cfg.Columns == 0 {
		cfg.Columns = domain.DefaultColumns
	}
	if cfg.Rows == 0 {
		cfg.Rows = domain.DefaultRows
	}
	if cfg.ID == "" {
		cfg.ID = uid.GenerateMatchID()
	}

	game, err := domain.NewGame(cfg.Columns, cfg.Rows)
	if err != nil {
		return nil, err
	}

	rng := bot.NewRand(cfg.Seed)
	policies := map[domain.Color]*bot.Policy{}
	for color, agent := range map[domain.Color]Agent{domain.Red: cfg.Red, domain.Yellow: cfg.Yellow} {
		p, err := bot.NewTierPolicy(agent.Tier, color, rng)
		if err != nil {
			return nil, fmt.Errorf("%s seat: %w", color, err)
		}
		policies[color] = p
	}

	started := time.Now()
	turns := make([]Turn, 0, cfg.Columns*cfg.Rows)

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		color := game.Turn
		d, err := policies[color].Choose(game.Board)
		if err != nil {
			return nil, fmt.Errorf("%s could not move: %w", color, err)
		}
		row, err := game.MakeMove(color, d.Column)
		if err != nil {
			return nil, fmt.Errorf("%s played an illegal move in column %d: %w", color, d.Column, err)
		}

		turn := Turn{Number: game.MoveCount, Color: color, Column: d.Column, Row: row, Rule: d.Rule}
		turns = append(turns, turn)
		if cfg.OnTurn != nil {
			cfg.OnTurn(turn, game.Board)
		}
	}

	finished := time.Now()
	reason := domain.ReasonConnectFour
	if game.Status == domain.StatusDraw {
		reason = domain.ReasonDraw
	}

	return &MatchResult{
		Record: domain.MatchRecord{
			ID:         cfg.ID,
			Source:     domain.SourceArena,
			RedName:    cfg.Red.Name,
			RedTier:    cfg.Red.Tier,
			YellowName: cfg.Yellow.Name,
			YellowTier: cfg.Yellow.Tier,
			Winner:     game.Winner,
			Reason:     reason,
			TotalMoves: game.MoveCount,
			Moves:      game.MoveColumns(),
			Board:      game.Board.Cells(),
			Columns:    cfg.Columns,
			Rows:       cfg.Rows,
			CreatedAt:  started,
			FinishedAt: finished,
		},
		Turns:    turns,
		Seed:     cfg.Seed,
		Duration: finished.Sub(started),
		Final:    game.Board,
	}, nil
}
