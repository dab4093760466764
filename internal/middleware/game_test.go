package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type stubGames map[string]bool

func (s stubGames) GameExists(gameID string) bool {
	return s[gameID]
}

func TestEnsureGame(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/game/:gameId?", EnsureGame(stubGames{"known": true}), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("gameID").(string))
	})

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "known game", path: "/game/known", want: fiber.StatusOK},
		{name: "unknown game", path: "/game/other", want: fiber.StatusNotFound},
		{name: "missing id", path: "/game/", want: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("%s: unexpected status: got=%d want=%d", tt.name, resp.StatusCode, tt.want)
		}
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/ws/:gameId", EnsureGame(stubGames{"known": true}), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws/known", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("unexpected status: got=%d want=%d", resp.StatusCode, fiber.StatusUpgradeRequired)
	}
}
