package http

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/service/game"
	"github.com/iamasit07/connect4-agents/backend/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-agents/backend/pkg/auth"
	"github.com/iamasit07/connect4-agents/backend/pkg/httputil"
)

type GameHandler struct {
	GameService  *game.Service
	Notifier     game.Notifier
	JWTSecret    string
	TokenTTL     time.Duration
	Production   bool
	BoardColumns int
	BoardRows    int
	MaxColumns   int
	MaxRows      int
}

type createGameRequest struct {
	PlayerName string `json:"playerName"`
	Color      string `json:"color"`
	Tier       string `json:"tier" binding:"required"`
	Columns    int    `json:"columns"`
	Rows       int    `json:"rows"`
}

type createGameResponse struct {
	GameID string           `json:"gameId"`
	Token  string           `json:"token"`
	Color  string           `json:"color"`
	State  *domain.Snapshot `json:"state"`
}

// Create starts a human vs bot game and hands out the seat token.
func (h *GameHandler) Create(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		respondError(c, err)
		return
	}
	color := domain.Red
	if req.Color != "" {
		if color, err = domain.ParseColor(req.Color); err != nil {
			respondError(c, err)
			return
		}
	}
	columns, rows := req.Columns, req.Rows
	if columns == 0 {
		columns = h.BoardColumns
	}
	if rows == 0 {
		rows = h.BoardRows
	}
	if err := domain.ValidateSize(columns, rows, h.MaxColumns, h.MaxRows); err != nil {
		respondError(c, err)
		return
	}

	session, err := h.GameService.Sessions.CreateSession(req.PlayerName, color, tier, columns, rows, h.Notifier)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateGameToken(h.JWTSecret, session.GameID, color.String(), h.TokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	httputil.SetGameCookie(c.Writer, token, h.TokenTTL, h.Production)

	c.JSON(http.StatusCreated, createGameResponse{
		GameID: session.GameID,
		Token:  token,
		Color:  color.String(),
		State:  session.Snapshot(),
	})
}

// List returns the games currently held in memory in a stable order.
func (h *GameHandler) List(c *gin.Context) {
	games := h.GameService.Sessions.ListSessions()
	sort.Slice(games, func(i, j int) bool {
		return games[i].GameID < games[j].GameID
	})
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *GameHandler) Get(c *gin.Context) {
	snap, err := h.GameService.GetSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if snap == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

func (h *GameHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, color, ok := h.seat(c)
	if !ok {
		return
	}
	if err := session.HandleMove(color, *req.Column, h.Notifier); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": session.Snapshot()})
}

func (h *GameHandler) Resign(c *gin.Context) {
	session, color, ok := h.seat(c)
	if !ok {
		return
	}
	if err := session.Resign(color, h.Notifier); err != nil {
		respondError(c, err)
		return
	}
	httputil.ClearGameCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"state": session.Snapshot()})
}

func (h *GameHandler) seat(c *gin.Context) (*game.GameSession, domain.Color, bool) {
	color, ok := middleware.SeatColor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing game token"})
		return nil, domain.None, false
	}
	session, exists := h.GameService.Sessions.GetSessionByGameID(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return nil, domain.None, false
	}
	return session, color, true
}
