package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/internal/service/arena"
)

type ArenaHandler struct {
	Arena        *arena.Service
	BoardColumns int
	BoardRows    int
	MaxColumns   int
	MaxRows      int
}

type arenaRequest struct {
	Red        string `json:"red" binding:"required"`
	Yellow     string `json:"yellow" binding:"required"`
	RedName    string `json:"redName"`
	YellowName string `json:"yellowName"`
	Games      int    `json:"games"`
	Seed       int64  `json:"seed"`
	Alternate  bool   `json:"alternate"`
	Columns    int    `json:"columns"`
	Rows       int    `json:"rows"`
}

// Run plays a bot-vs-bot series and returns its summary.
func (h *ArenaHandler) Run(c *gin.Context) {
	var req arenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	redTier, err := domain.ParseTier(req.Red)
	if err != nil {
		respondError(c, err)
		return
	}
	yellowTier, err := domain.ParseTier(req.Yellow)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Columns == 0 {
		req.Columns = h.BoardColumns
	}
	if req.Rows == 0 {
		req.Rows = h.BoardRows
	}
	if err := domain.ValidateSize(req.Columns, req.Rows, h.MaxColumns, h.MaxRows); err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.Arena.RunSeries(c.Request.Context(), arena.SeriesRequest{
		A:         arena.NewAgent(redTier, req.RedName),
		B:         arena.NewAgent(yellowTier, req.YellowName),
		Games:     req.Games,
		Seed:      req.Seed,
		Alternate: req.Alternate,
		Columns:   req.Columns,
		Rows:      req.Rows,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
