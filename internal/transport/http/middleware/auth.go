package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-agents/backend/internal/domain"
	"github.com/iamasit07/connect4-agents/backend/pkg/auth"
	"github.com/iamasit07/connect4-agents/backend/pkg/httputil"
)

const (
	ContextGameID = "game_id"
	ContextColor  = "color"
)

// GameTokenMiddleware lets a request through only with a valid game token
// for the game named by the :id route parameter.
func GameTokenMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Token (Header or Cookie)
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing game token"})
			return
		}

		// 2. Validate JWT Signature
		claims, err := auth.ValidateGameToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired game token"})
			return
		}

		// 3. Token must belong to this game
		if id := c.Param("id"); id != "" && id != claims.GameID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this game"})
			return
		}

		color, err := domain.ParseColor(claims.Color)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid seat in game token"})
			return
		}

		c.Set(ContextGameID, claims.GameID)
		c.Set(ContextColor, color)
		c.Next()
	}
}

// SeatColor returns the color stored by GameTokenMiddleware.
func SeatColor(c *gin.Context) (domain.Color, bool) {
	v, ok := c.Get(ContextColor)
	if !ok {
		return domain.None, false
	}
	color, ok := v.(domain.Color)
	return color, ok
}
