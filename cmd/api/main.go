package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-agents/backend/internal/config"
	"github.com/iamasit07/connect4-agents/backend/internal/event"
	"github.com/iamasit07/connect4-agents/backend/internal/repository/postgres"
	"github.com/iamasit07/connect4-agents/backend/internal/repository/redis"
	"github.com/iamasit07/connect4-agents/backend/internal/service/arena"
	"github.com/iamasit07/connect4-agents/backend/internal/service/cleanup"
	"github.com/iamasit07/connect4-agents/backend/internal/service/game"
	"github.com/iamasit07/connect4-agents/backend/internal/service/leaderboard"
	transportHttp "github.com/iamasit07/connect4-agents/backend/internal/transport/http"
	"github.com/iamasit07/connect4-agents/backend/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// 1. Optional PostgreSQL. Without it games live in memory only.
	var (
		db            *sql.DB
		matchRepo     *postgres.MatchRepo
		ratingStore   leaderboard.RatingStore = leaderboard.NewMemoryStore()
		gameRecorder  game.MatchRecorder
		gameReader    game.MatchReader
		arenaRecorder arena.MatchRecorder
		matchStore    transportHttp.MatchStore
		matchPruner   cleanup.MatchPruner
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(cfg.DBDriver, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

		matchRepo = postgres.NewMatchRepo(db)
		ratingStore = postgres.NewRatingRepo(db)
		gameRecorder, gameReader, arenaRecorder = matchRepo, matchRepo, matchRepo
		matchStore, matchPruner = matchRepo, matchRepo
	} else {
		log.Println("[DB] DATABASE_URL not set, match history disabled")
	}

	// 2. Optional Redis for snapshots and the leaderboard
	var (
		snapshots  game.SnapshotStore
		boardCache leaderboard.Cache
	)
	if client := redis.InitRedis(rootCtx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB); client != nil {
		cache := redis.NewRedisCache(client)
		defer cache.Close()
		snapshots = redis.NewSnapshotCache(cache, cfg.SnapshotTTL)
		boardCache = redis.NewLeaderboardCache(cache, time.Minute)
	}

	// 3. Match events
	publisher := event.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()

	// 4. Services
	ratings := leaderboard.NewService(ratingStore, boardCache)
	sessionManager := game.NewSessionManager(gameRecorder, snapshots, publisher, cfg.BotMoveDelay)
	gameService := game.NewService(sessionManager, gameReader, snapshots)
	arenaService := arena.NewService(arenaRecorder, ratings, publisher, cfg.ArenaWorkers, cfg.ArenaMaxGames)

	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.JWTSecret, cfg.AllowedOrigins)

	// 5. Background workers
	cleanup.NewWorker(sessionManager, matchPruner, cfg.CleanupInterval, cfg.MatchRetentionDays).Start(rootCtx)

	// 6. Router
	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		GameService:    gameService,
		Arena:          arenaService,
		Leaderboard:    ratings,
		Matches:        matchStore,
		Notifier:       connManager,
		WebSocket:      wsHandler.HandleWebSocket,
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.GameTokenTTL,
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins,
		BoardColumns:   cfg.BoardColumns,
		BoardRows:      cfg.BoardRows,
		MaxColumns:     cfg.BoardMaxColumns,
		MaxRows:        cfg.BoardMaxRows,
		MaxBodyBytes:   1 << 20,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	sessionManager.Wait()
	log.Println("Server exited")
}
