package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/utils"
)

// ListClients returns the storefront clients, alphabetically.
func (h *OrderHandler) ListClients(c *fiber.Ctx) error {
	var clients []models.Client
	if err := h.db.Scopes(utils.ParsePage(c).Scope).Order("name asc").Find(&clients).Error; err != nil {
		return err
	}
	return c.JSON(clients)
}
