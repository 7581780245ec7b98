// Package handlers implements the sandbox back-office API consumed by the
// admin client. Every mutation answers {"message": ...} and every error
// is rendered the same way by ErrorHandler.
package handlers

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/utils"
)

// ErrorHandler renders every error as a structured message payload.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Erro interno do servidor"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Printf("[API] %s %s failed: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(models.Message{Message: msg})
}

func reply(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(models.Message{Message: msg})
}

func replyID(c *fiber.Ctx, code int, msg, id string) error {
	return c.Status(code).JSON(models.Message{Message: msg, ID: id})
}

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, utils.ValidationMessage(err))
	}
	return nil
}

// first loads the record with id into dst or answers 404 with notFound.
func first(db *gorm.DB, dst any, id, notFound string) error {
	if err := db.First(dst, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, notFound)
		}
		return err
	}
	return nil
}

// Storage keeps uploaded images on disk and serves them under /uploads.
type Storage struct {
	dir string
}

// NewStorage prepares dir for uploads.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the directory holding the files.
func (s *Storage) Dir() string {
	return s.dir
}

// Save stores the multipart "file" field and returns its public URL and the
// stored name, which doubles as the image id.
func (s *Storage) Save(c *fiber.Ctx) (string, string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "Envie uma imagem no campo file")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", "", err
	}
	return c.BaseURL() + "/uploads/" + name, name, nil
}

// Remove deletes a stored file. Missing files are ignored.
func (s *Storage) Remove(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[Storage] Failed to remove %s: %v", name, err)
	}
}
