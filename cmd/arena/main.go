// Command arena plays a series of bot-vs-bot games from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iamasit07/connect4-agents/backend/internal/config"
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/event"
	"github.com/iamasit07/connect4-agents/backend/internal/repository/postgres"
	"github.com/iamasit07/connect4-agents/backend/internal/service/arena"
	"github.com/iamasit07/connect4-agents/backend/internal/service/leaderboard"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	red := flag.String("red", string(domain.TierAdvanced), "tier playing Red (random, beginner, intermediate, advanced)")
	yellow := flag.String("yellow", string(domain.TierRandom), "tier playing Yellow")
	games := flag.Int("games", 1, "number of games to play")
	seed := flag.Int64("seed", 0, "base seed, 0 picks one from the clock")
	columns := flag.Int("columns", cfg.BoardColumns, "board width")
	rows := flag.Int("rows", cfg.BoardRows, "board height")
	alternate := flag.Bool("alternate", false, "swap colors every other game")
	verbose := flag.Bool("verbose", false, "print every game's moves and final board")
	flag.Parse()

	redTier, err := domain.ParseTier(*red)
	if err != nil {
		log.Fatalf("-red: %v", err)
	}
	yellowTier, err := domain.ParseTier(*yellow)
	if err != nil {
		log.Fatalf("-yellow: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		recorder    arena.MatchRecorder
		ratingStore leaderboard.RatingStore = leaderboard.NewMemoryStore()
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DBDriver, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		recorder = postgres.NewMatchRepo(db)
		ratingStore = postgres.NewRatingRepo(db)
	}

	publisher := event.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()

	ratings := leaderboard.NewService(ratingStore, nil)
	svc := arena.NewService(recorder, ratings, publisher, cfg.ArenaWorkers, 0)

	summary, err := svc.RunSeries(ctx, arena.SeriesRequest{
		A:         arena.NewAgent(redTier, ""),
		B:         arena.NewAgent(yellowTier, ""),
		Games:     *games,
		Seed:      *seed,
		Alternate: *alternate,
		Columns:   *columns,
		Rows:      *rows,
	})
	if summary == nil {
		log.Fatalf("Arena failed: %v", err)
	}
	if err != nil {
		log.Printf("Series stopped early: %v", err)
	}

	if *verbose {
		for i, m := range summary.Matches {
			printMatch(i, &m)
		}
	}
	printSummary(summary)

	if board, err := ratings.Leaderboard(ctx); err == nil {
		fmt.Println("\nRatings:")
		for _, r := range board {
			fmt.Printf("  %-22s %5d  (%d games)\n", r.Name, r.Rating, r.GamesPlayed)
		}
	}
}

func printMatch(i int, m *domain.MatchRecord) {
	fmt.Printf("Game %d: %s vs %s\n", i+1,
		domain.DisplayName(m.RedName, domain.Red), domain.DisplayName(m.YellowName, domain.Yellow))

	moves := make([]string, len(m.Moves))
	for n, col := range m.Moves {
		color := domain.Red
		if n%2 == 1 {
			color = domain.Yellow
		}
		moves[n] = fmt.Sprintf("%c%d", strings.ToUpper(color.String())[0], col)
	}
	fmt.Println("  moves:", strings.Join(moves, " "))

	if board, err := domain.BoardFromCells(m.Board); err == nil {
		fmt.Print(board.String())
	}
	if m.IsDraw() {
		fmt.Printf("  draw after %d moves\n\n", m.TotalMoves)
	} else {
		fmt.Printf("  %s wins after %d moves\n\n", m.WinnerName(), m.TotalMoves)
	}
}

func printSummary(s *arena.SeriesSummary) {
	fmt.Printf("%d games, base seed %d, %v\n", s.Games, s.BaseSeed, s.Duration)
	for _, st := range []arena.Standing{s.A, s.B} {
		fmt.Printf("  %-22s W %3d  L %3d  D %3d\n", st.Agent.Name, st.Wins, st.Losses, st.Draws)
	}
}
