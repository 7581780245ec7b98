package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/backoffice/internal/models"
)

// CatalogHandler manages categories.
type CatalogHandler struct {
	db      *gorm.DB
	storage *Storage
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB, storage *Storage) *CatalogHandler {
	return &CatalogHandler{db: db, storage: storage}
}

// ListCategories returns every category, newest first.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Order("created_at desc").Find(&categories).Error; err != nil {
		return err
	}
	return c.JSON(categories)
}

// CategoriesWithProducts returns categories with their products, for the
// category then product pickers.
func (h *CatalogHandler) CategoriesWithProducts(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Preload("Products", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("name asc")
	}).Order("name asc").Find(&categories).Error; err != nil {
		return err
	}
	return c.JSON(categories)
}

// CreateCategory persists a new category and returns its id.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in models.CategoryInput
	if err := bind(c, &in); err != nil {
		return err
	}

	category := models.Category{Name: in.Name, Description: in.Description, Active: true}
	if err := h.db.Create(&category).Error; err != nil {
		return err
	}

	return replyID(c, fiber.StatusCreated, "Categoria cadastrada com sucesso", category.ID)
}

// UpdateCategory changes the name and description of a category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := first(h.db, &category, c.Params("id"), "Categoria não encontrada"); err != nil {
		return err
	}

	var in models.CategoryInput
	if err := bind(c, &in); err != nil {
		return err
	}

	if err := h.db.Model(&category).Updates(map[string]any{
		"name":        in.Name,
		"description": in.Description,
	}).Error; err != nil {
		return err
	}

	return reply(c, fiber.StatusOK, "Categoria alterada com sucesso")
}

// SetCategoryActive activates or deactivates a category.
func (h *CatalogHandler) SetCategoryActive(c *fiber.Ctx) error {
	var category models.Category
	if err := first(h.db, &category, c.Params("id"), "Categoria não encontrada"); err != nil {
		return err
	}

	var in models.ActiveInput
	if err := bind(c, &in); err != nil {
		return err
	}

	if err := h.db.Model(&category).Update("active", in.Active).Error; err != nil {
		return err
	}

	if in.Active {
		return reply(c, fiber.StatusOK, "Categoria ativada com sucesso")
	}
	return reply(c, fiber.StatusOK, "Categoria desativada com sucesso")
}

// CategoryThumbnail attaches the thumbnail of a newly created category.
func (h *CatalogHandler) CategoryThumbnail(c *fiber.Ctx) error {
	return h.saveThumbnail(c, "Imagem cadastrada com sucesso")
}

// UpdateCategoryThumbnail swaps the thumbnail of an existing category and
// removes the previous file.
func (h *CatalogHandler) UpdateCategoryThumbnail(c *fiber.Ctx) error {
	return h.saveThumbnail(c, "Imagem alterada com sucesso")
}

func (h *CatalogHandler) saveThumbnail(c *fiber.Ctx, msg string) error {
	var category models.Category
	if err := first(h.db, &category, c.Params("id"), "Categoria não encontrada"); err != nil {
		return err
	}

	url, name, err := h.storage.Save(c)
	if err != nil {
		return err
	}

	previous := category.ThumbnailID
	if err := h.db.Model(&category).Updates(map[string]any{
		"thumbnail":    url,
		"thumbnail_id": name,
	}).Error; err != nil {
		h.storage.Remove(name)
		return err
	}
	h.storage.Remove(previous)

	return reply(c, fiber.StatusOK, msg)
}
