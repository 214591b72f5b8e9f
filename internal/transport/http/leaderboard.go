package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-agents/backend/internal/service/leaderboard"
)

type LeaderboardHandler struct {
	Leaderboard *leaderboard.Service
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	ratings, err := h.Leaderboard.Leaderboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": ratings})
}
