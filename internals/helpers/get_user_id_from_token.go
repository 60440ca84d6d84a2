package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken mengambil user_id (UUID) yang sudah dihydrate oleh middleware AuthJWT.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID tidak valid")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User ID dalam token tidak valid")
	}
	return id, nil
}

// GetUserIDFromTokenOptional: sama, tapi nil jika tidak ada token (endpoint campuran).
func GetUserIDFromTokenOptional(c *fiber.Ctx) *uuid.UUID {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}
