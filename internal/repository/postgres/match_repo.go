package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/lib/pq"
)

type MatchRepo struct {
	DB *sql.DB
}

func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{DB: db}
}

const matchColumns = `id, source, red_name, red_tier, yellow_name, yellow_tier, winner, reason,
	total_moves, moves, board_state, columns_count, rows_count, created_at, finished_at`

// SaveMatch inserts a finished match, or overwrites the result of an existing one.
func (r *MatchRepo) SaveMatch(ctx context.Context, m *domain.MatchRecord) error {
	args, err := saveMatchArgs(m)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO matches (` + matchColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (id) DO UPDATE SET
		winner = EXCLUDED.winner,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		moves = EXCLUDED.moves,
		board_state = EXCLUDED.board_state,
		finished_at = EXCLUDED.finished_at;
	`

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", m.ID, err)
	}
	return nil
}

// saveMatchArgs lines up the insert parameters in matchColumns order. JSONB
// values go out as strings: pgx encodes []byte as bytea in simple protocol.
func saveMatchArgs(m *domain.MatchRecord) ([]any, error) {
	movesJSON, err := json.Marshal(m.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal moves: %w", err)
	}
	boardJSON, err := json.Marshal(m.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board state: %w", err)
	}
	return []any{
		m.ID, m.Source, m.RedName, string(m.RedTier), m.YellowName, string(m.YellowTier),
		int(m.Winner), m.Reason, m.TotalMoves, string(movesJSON), string(boardJSON),
		m.Columns, m.Rows, m.CreatedAt, m.FinishedAt,
	}, nil
}

// GetMatchByID returns nil, nil when the match does not exist.
func (r *MatchRepo) GetMatchByID(ctx context.Context, id string) (*domain.MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1;`

	m, err := scanMatch(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match by ID: %w", err)
	}
	return m, nil
}

// ListRecentMatches returns the newest matches first. When tiers is not empty
// only matches where either seat played one of those tiers are returned.
func (r *MatchRepo) ListRecentMatches(ctx context.Context, limit int, tiers []domain.Tier) ([]domain.MatchRecord, error) {
	query := `
	SELECT ` + matchColumns + `
	FROM matches
	WHERE $2::text[] IS NULL OR red_tier = ANY($2::text[]) OR yellow_tier = ANY($2::text[])
	ORDER BY finished_at DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, query, limit, pq.Array(tierStrings(tiers)))
	if err != nil {
		return nil, fmt.Errorf("failed to query recent matches: %w", err)
	}
	defer rows.Close()

	matches := []domain.MatchRecord{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// DeleteMatchesOlderThan removes matches finished more than days ago.
func (r *MatchRepo) DeleteMatchesOlderThan(ctx context.Context, days int) (int64, error) {
	query := `DELETE FROM matches WHERE finished_at < NOW() - make_interval(days => $1);`

	res, err := r.DB.ExecContext(ctx, query, days)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old matches: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*domain.MatchRecord, error) {
	var m domain.MatchRecord
	var redTier, yellowTier string
	var winner int
	var movesJSON, boardJSON []byte

	err := row.Scan(
		&m.ID, &m.Source, &m.RedName, &redTier, &m.YellowName, &yellowTier,
		&winner, &m.Reason, &m.TotalMoves, &movesJSON, &boardJSON,
		&m.Columns, &m.Rows, &m.CreatedAt, &m.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	m.RedTier = domain.Tier(redTier)
	m.YellowTier = domain.Tier(yellowTier)
	m.Winner = domain.Color(winner)
	if err := decodeMatchJSON(&m, movesJSON, boardJSON); err != nil {
		return nil, err
	}
	return &m, nil
}

func decodeMatchJSON(m *domain.MatchRecord, movesJSON, boardJSON []byte) error {
	m.Moves = []int{}
	if len(movesJSON) > 0 {
		if err := json.Unmarshal(movesJSON, &m.Moves); err != nil {
			return fmt.Errorf("failed to unmarshal moves: %w", err)
		}
	}
	if len(boardJSON) > 0 && string(boardJSON) != "null" {
		if err := json.Unmarshal(boardJSON, &m.Board); err != nil {
			return fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}
	return nil
}

// tierStrings keeps a nil slice nil so the query sees a NULL filter.
func tierStrings(tiers []domain.Tier) []string {
	if len(tiers) == 0 {
		return nil
	}
	out := make([]string, len(tiers))
	for i, t := range tiers {
		out[i] = string(t)
	}
	return out
}
