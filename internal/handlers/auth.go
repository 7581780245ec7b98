package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/backoffice/internal/config"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/utils"
)

// AuthHandler issues operator sessions.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Login exchanges e-mail and password for a JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginInput
	if err := bind(c, &req); err != nil {
		return err
	}

	var user models.AdminUser
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "E-mail ou senha inválidos")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "E-mail ou senha inválidos")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao gerar o token")
	}

	return c.JSON(models.Session{Token: token, User: user})
}
