package chat

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type stubMinter struct {
	lastID string
	err    error
}

func (s *stubMinter) CreateToken(userID string) (string, error) {
	s.lastID = userID
	if s.err != nil {
		return "", s.err
	}
	return "chat-token-for-" + userID, nil
}

func makeApp(minter TokenMinter) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			claims := jwt.MapClaims{"user_id": v}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	NewHandler(minter).RegisterProtectedRoutes(app)
	return app
}

func TestGetToken(t *testing.T) {
	minter := &stubMinter{}
	app := makeApp(minter)

	req := httptest.NewRequest("GET", "/api/chat/token", nil)
	req.Header.Set("X-User-ID", "u-5")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"chatToken":"chat-token-for-u-5"`) {
		t.Fatalf("unexpected body: %s", string(b))
	}
	if minter.lastID != "u-5" {
		t.Fatalf("expected token minted for u-5, got %q", minter.lastID)
	}
}

func TestGetToken_MinterError(t *testing.T) {
	app := makeApp(&stubMinter{err: errors.New("provider unavailable")})

	req := httptest.NewRequest("GET", "/api/chat/token", nil)
	req.Header.Set("X-User-ID", "u-5")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "provider unavailable") {
		t.Fatalf("error detail should pass through, got %s", string(b))
	}
}

func TestGetToken_Unauthenticated(t *testing.T) {
	app := makeApp(&stubMinter{})

	req := httptest.NewRequest("GET", "/api/chat/token", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}
