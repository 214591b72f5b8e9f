package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-agents/backend/internal/service/arena"
	"github.com/iamasit07/connect4-agents/backend/internal/service/game"
	"github.com/iamasit07/connect4-agents/backend/internal/service/leaderboard"
	"github.com/iamasit07/connect4-agents/backend/internal/transport/http/middleware"
)

// RouterDeps carries everything the HTTP layer needs. Matches is nil when
// no database is configured.
type RouterDeps struct {
	GameService    *game.Service
	Arena          *arena.Service
	Leaderboard    *leaderboard.Service
	Matches        MatchStore
	Notifier       game.Notifier
	WebSocket      http.HandlerFunc
	JWTSecret      string
	TokenTTL       time.Duration
	Production     bool
	AllowedOrigins []string
	BoardColumns   int
	BoardRows      int
	MaxColumns     int
	MaxRows        int
	MaxBodyBytes   int64
}

func NewRouter(d RouterDeps) *gin.Engine {
	botHandler := NewBotHandler(d.GameService, d.MaxColumns, d.MaxRows)
	gameHandler := &GameHandler{
		GameService:  d.GameService,
		Notifier:     d.Notifier,
		JWTSecret:    d.JWTSecret,
		TokenTTL:     d.TokenTTL,
		Production:   d.Production,
		BoardColumns: d.BoardColumns,
		BoardRows:    d.BoardRows,
		MaxColumns:   d.MaxColumns,
		MaxRows:      d.MaxRows,
	}
	arenaHandler := &ArenaHandler{
		Arena:        d.Arena,
		BoardColumns: d.BoardColumns,
		BoardRows:    d.BoardRows,
		MaxColumns:   d.MaxColumns,
		MaxRows:      d.MaxRows,
	}
	matchHandler := &MatchHandler{Matches: d.Matches}
	leaderboardHandler := &LeaderboardHandler{Leaderboard: d.Leaderboard}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(d.AllowedOrigins))
	router.Use(middleware.BodyLimitMiddleware(d.MaxBodyBytes))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/bot/move", botHandler.Move)

		api.POST("/games", gameHandler.Create)
		api.GET("/games", gameHandler.List)
		api.GET("/games/:id", gameHandler.Get)

		api.POST("/arena", arenaHandler.Run)
		api.GET("/matches", matchHandler.List)
		api.GET("/matches/:id", matchHandler.Get)
		api.GET("/leaderboard", leaderboardHandler.Get)
	}

	// Seat-protected routes
	seat := api.Group("/games/:id")
	seat.Use(middleware.GameTokenMiddleware(d.JWTSecret))
	{
		seat.POST("/moves", gameHandler.Move)
		seat.POST("/resign", gameHandler.Resign)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	if d.WebSocket != nil {
		router.GET("/ws", gin.WrapF(d.WebSocket))
	}

	return router
}
