package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := GetTokenFromRequest(r); err == nil {
		t.Fatalf("expected missing token error")
	}

	r.AddCookie(&http.Cookie{Name: GameCookieName, Value: "from-cookie"})
	if got, _ := GetTokenFromRequest(r); got != "from-cookie" {
		t.Fatalf("expected cookie token, got %q", got)
	}

	r.Header.Set("Authorization", "Bearer from-header")
	if got, _ := GetTokenFromRequest(r); got != "from-header" {
		t.Fatalf("expected header token, got %q", got)
	}
}

func TestSetGameCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetGameCookie(rec, "tok", time.Hour, false)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != GameCookieName || c.Value != "tok" || c.MaxAge != 3600 || !c.HttpOnly {
		t.Fatalf("unexpected cookie %+v", c)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected lax cookie outside production")
	}
}
