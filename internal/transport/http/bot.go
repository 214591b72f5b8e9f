package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/service/game"
)

type BotHandler struct {
	GameService *game.Service
	MaxColumns  int
	MaxRows     int
}

func NewBotHandler(gs *game.Service, maxColumns, maxRows int) *BotHandler {
	return &BotHandler{GameService: gs, MaxColumns: maxColumns, MaxRows: maxRows}
}

type botMoveRequest struct {
	Tier  string  `json:"tier" binding:"required"`
	Color string  `json:"color" binding:"required"`
	Board [][]int `json:"board" binding:"required"`
	Seed  int64   `json:"seed"`
}

// Move answers which column a tier would play on the posted board.
func (h *BotHandler) Move(c *gin.Context) {
	var req botMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	columns := 0
	if len(req.Board) > 0 {
		columns = len(req.Board[0])
	}
	if err := domain.ValidateSize(columns, len(req.Board), h.MaxColumns, h.MaxRows); err != nil {
		respondError(c, err)
		return
	}

	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		respondError(c, err)
		return
	}
	color, err := domain.ParseColor(req.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.GameService.BotMove(req.Board, color, tier, req.Seed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
