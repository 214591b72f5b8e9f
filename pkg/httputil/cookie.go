package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const GameCookieName = "game_token"

func SetGameCookie(w http.ResponseWriter, token string, ttl time.Duration, production bool) {
	cookie := &http.Cookie{
		Name:     GameCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production,
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearGameCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     GameCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func GetTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(GameCookieName)
	if err != nil {
		return "", errors.New("game cookie not found")
	}
	if cookie.Value == "" {
		return "", errors.New("game cookie is empty")
	}
	return cookie.Value, nil
}

// GetTokenFromRequest prefers the Authorization header and falls back to the cookie.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	token, err := GetTokenFromCookie(r)
	if err == nil {
		return token, nil
	}

	return "", errors.New("no game token found in header or cookie")
}
