package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
)

type MatchStore interface {
	GetMatchByID(ctx context.Context, id string) (*domain.MatchRecord, error)
	ListRecentMatches(ctx context.Context, limit int, tiers []domain.Tier) ([]domain.MatchRecord, error)
}

type MatchHandler struct {
	Matches MatchStore
}

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 100
)

// List serves /api/matches?limit=N&tier=a&tier=b.
func (h *MatchHandler) List(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := defaultMatchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxMatchLimit)
	}

	var tiers []domain.Tier
	for _, raw := range c.QueryArray("tier") {
		tier, err := domain.ParseTier(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		tiers = append(tiers, tier)
	}

	matches, err := h.Matches.ListRecentMatches(c.Request.Context(), limit, tiers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (h *MatchHandler) Get(c *gin.Context) {
	if !h.available(c) {
		return
	}

	match, err := h.Matches.GetMatchByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if match == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *MatchHandler) available(c *gin.Context) bool {
	if h.Matches == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Match history requires a database"})
		return false
	}
	return true
}
