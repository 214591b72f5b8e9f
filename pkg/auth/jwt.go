package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GameClaims binds a token to one seat of one game.
type GameClaims struct {
	GameID string `json:"game_id"`
	Color  string `json:"color"`
	jwt.RegisteredClaims
}

// GenerateGameToken creates a signed token that lets its holder move for color in gameID.
func GenerateGameToken(secret, gameID, color string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}

	claims := &GameClaims{
		GameID: gameID,
		Color:  color,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateGameToken validates a game token and returns its claims
func ValidateGameToken(secret, tokenString string) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid {
		if claims.GameID == "" {
			return nil, errors.New("token has no game id")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
