package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/backoffice/internal/config"
	"github.com/example/backoffice/internal/utils"
)

const userContextKey = "currentUserID"

// AuthMiddleware validates bearer JWTs and stores the operator id in context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Sessão não informada")
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Cabeçalho de autorização inválido")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, strings.TrimSpace(token))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Sessão expirada, faça login novamente")
		}

		c.Locals(userContextKey, userID)
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated operator id from context.
func GetCurrentUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(userContextKey).(string)
	return id, ok && id != ""
}
