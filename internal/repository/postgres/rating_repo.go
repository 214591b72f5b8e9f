package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

type RatingRepo struct {
	DB *sql.DB
}

func NewRatingRepo(db *sql.DB) *RatingRepo {
	return &RatingRepo{DB: db}
}

// GetRatings returns every rated tier, strongest first.
func (r *RatingRepo) GetRatings(ctx context.Context) ([]domain.TierRating, error) {
	query := `
	SELECT tier, name, rating, games_played, wins, losses, draws, updated_at
	FROM tier_ratings
	ORDER BY rating DESC, tier ASC;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	ratings := []domain.TierRating{}
	for rows.Next() {
		var tr domain.TierRating
		var tier string
		if err := rows.Scan(&tier, &tr.Name, &tr.Rating, &tr.GamesPlayed, &tr.Wins, &tr.Losses, &tr.Draws, &tr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		tr.Tier = domain.Tier(tier)
		ratings = append(ratings, tr)
	}
	return ratings, rows.Err()
}

// ApplyResult moves the Elo of both tiers of a finished bot-vs-bot game
// inside one transaction.
func (r *RatingRepo) ApplyResult(ctx context.Context, redTier, yellowTier domain.Tier, winner domain.Color) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	locked := make(map[domain.Tier]domain.TierRating, 2)
	for _, tier := range lockOrder(redTier, yellowTier) {
		tr, err := r.lockRatingTx(ctx, tx, tier)
		if err != nil {
			return err
		}
		locked[tier] = tr
	}
	red, yellow := locked[redTier], locked[yellowTier]

	redBefore, yellowBefore := red.Rating, yellow.Rating
	red.ApplyOutcome(yellowBefore, winner, domain.Red)
	yellow.ApplyOutcome(redBefore, winner, domain.Yellow)

	if err := r.updateRatingTx(ctx, tx, red); err != nil {
		return err
	}
	if err := r.updateRatingTx(ctx, tx, yellow); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockOrder returns the distinct tiers of a game sorted by name. Every
// transaction locks rows in this order, whichever color each tier played.
func lockOrder(redTier, yellowTier domain.Tier) []domain.Tier {
	switch {
	case redTier == yellowTier:
		return []domain.Tier{redTier}
	case redTier < yellowTier:
		return []domain.Tier{redTier, yellowTier}
	default:
		return []domain.Tier{yellowTier, redTier}
	}
}

// lockRatingTx creates the row on first use and locks it for the transaction.
func (r *RatingRepo) lockRatingTx(ctx context.Context, tx *sql.Tx, tier domain.Tier) (domain.TierRating, error) {
	start := domain.NewTierRating(tier)
	insert := `
	INSERT INTO tier_ratings (tier, name, rating)
	VALUES ($1, $2, $3)
	ON CONFLICT (tier) DO NOTHING;
	`
	if _, err := tx.ExecContext(ctx, insert, string(tier), start.Name, start.Rating); err != nil {
		return start, fmt.Errorf("failed to create rating for %s: %w", tier, err)
	}

	query := `
	SELECT name, rating, games_played, wins, losses, draws
	FROM tier_ratings
	WHERE tier = $1
	FOR UPDATE;
	`
	tr := domain.TierRating{Tier: tier}
	err := tx.QueryRowContext(ctx, query, string(tier)).Scan(&tr.Name, &tr.Rating, &tr.GamesPlayed, &tr.Wins, &tr.Losses, &tr.Draws)
	if errors.Is(err, sql.ErrNoRows) {
		return start, fmt.Errorf("rating for %s vanished inside transaction", tier)
	}
	if err != nil {
		return start, fmt.Errorf("failed to lock rating for %s: %w", tier, err)
	}
	return tr, nil
}

func (r *RatingRepo) updateRatingTx(ctx context.Context, tx *sql.Tx, tr domain.TierRating) error {
	query := `
	UPDATE tier_ratings
	SET rating = $2, games_played = $3, wins = $4, losses = $5, draws = $6, updated_at = NOW()
	WHERE tier = $1;
	`
	if _, err := tx.ExecContext(ctx, query, string(tr.Tier), tr.Rating, tr.GamesPlayed, tr.Wins, tr.Losses, tr.Draws); err != nil {
		return fmt.Errorf("failed to update rating for %s: %w", tr.Tier, err)
	}
	return nil
}
