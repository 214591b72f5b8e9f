package game

import (
	"context"
	"log"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/service/bot"
)

type MatchReader interface {
	GetMatchByID(ctx context.Context, id string) (*domain.MatchRecord, error)
}

// Service is the entry point for game logic (facade)
type Service struct {
	Sessions *SessionManager
	Matches  MatchReader
	Cache    SnapshotStore
}

func NewService(sessions *SessionManager, matches MatchReader, cache SnapshotStore) *Service {
	return &Service{
		Sessions: sessions,
		Matches:  matches,
		Cache:    cache,
	}
}

// GetSnapshot looks a game up in the cache, then in memory, then in storage.
// It returns nil, nil for an unknown game.
func (s *Service) GetSnapshot(ctx context.Context, gameID string) (*domain.Snapshot, error) {
	if s.Cache != nil {
		snap, err := s.Cache.GetSnapshot(ctx, gameID)
		if err != nil {
			log.Printf("[REDIS] Snapshot lookup for %s failed: %v", gameID, err)
		} else if snap != nil {
			return snap, nil
		}
	}

	if session, ok := s.Sessions.GetSessionByGameID(gameID); ok {
		return session.Snapshot(), nil
	}

	if s.Matches == nil {
		return nil, nil
	}
	m, err := s.Matches.GetMatchByID(ctx, gameID)
	if err != nil || m == nil {
		return nil, err
	}
	return snapshotFromRecord(m), nil
}

func snapshotFromRecord(m *domain.MatchRecord) *domain.Snapshot {
	snap := &domain.Snapshot{
		GameID:     m.ID,
		RedName:    m.RedName,
		YellowName: m.YellowName,
		Columns:    m.Columns,
		Rows:       m.Rows,
		Board:      m.Board,
		Reason:     m.Reason,
		MoveCount:  m.TotalMoves,
		Status:     domain.StatusWon,
		Moves:      []domain.Move{},
	}
	if m.IsDraw() {
		snap.Status = domain.StatusDraw
	} else {
		snap.Winner = m.Winner.String()
	}
	if m.RedTier != "" {
		snap.BotTier = m.RedTier
	} else {
		snap.BotTier = m.YellowTier
	}
	return snap
}

// BotMoveResult is the answer to a one-off move request.
type BotMoveResult struct {
	bot.Decision
	Board [][]int `json:"board"`
}

// BotMove picks and plays tier's move as color on a board given in its cell
// encoding. The caller's board is not modified.
func (s *Service) BotMove(cells [][]int, color domain.Color, tier domain.Tier, seed int64) (*BotMoveResult, error) {
	board, err := domain.BoardFromCells(cells)
	if err != nil {
		return nil, err
	}
	policy, err := bot.NewTierPolicy(tier, color, bot.NewRand(seed))
	if err != nil {
		return nil, err
	}
	d, err := policy.Move(board)
	if err != nil {
		return nil, err
	}
	return &BotMoveResult{Decision: d, Board: board.Cells()}, nil
}
