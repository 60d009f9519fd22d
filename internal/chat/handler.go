package chat

import (
	"github.com/gofiber/fiber/v2"

	"chat-app-backend/internal/auth"
)

// TokenMinter mints provider-scoped chat tokens. Satisfied by *stream.Client.
type TokenMinter interface {
	CreateToken(userID string) (string, error)
}

type Handler struct {
	minter TokenMinter
}

func NewHandler(minter TokenMinter) *Handler {
	return &Handler{minter: minter}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/chat/token", h.getToken)
}

func (h *Handler) getToken(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	token, err := h.minter.CreateToken(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"chatToken": token})
}
