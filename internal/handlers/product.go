package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/backoffice/internal/models"
)

// ProductHandler manages products and their sizes.
type ProductHandler struct {
	db      *gorm.DB
	storage *Storage
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB, storage *Storage) *ProductHandler {
	return &ProductHandler{db: db, storage: storage}
}

// RegisterProductRoutes mounts the product endpoints on router.
func (h *ProductHandler) RegisterProductRoutes(router fiber.Router) {
	router.Get("/products", h.ListProducts)
	router.Post("/products", h.CreateProduct)
	router.Put("/products/active/:id", h.SetProductActive)
	router.Put("/products/thumbnail/:id", h.ProductThumbnail)
	router.Put("/products/:id", h.UpdateProduct)

	router.Get("/sizes/:productId", h.ListSizes)
	router.Post("/sizes/:productId", h.CreateSize)
	router.Delete("/sizes/:id", h.DeleteSize)
}

// ListProducts returns every product with its category. An optional
// categoryId query narrows the list.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	query := h.db.Preload("Category").Order("created_at desc")
	if v := c.Query("categoryId"); v != "" {
		query = query.Where("category_id = ?", v)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) ensureCategory(id string) error {
	var category models.Category
	return first(h.db, &category, id, "Categoria não encontrada")
}

// CreateProduct persists a new product and returns its id.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := h.ensureCategory(in.CategoryID); err != nil {
		return err
	}
	product := models.Product{
		Name:             in.Name,
		CategoryID:       in.CategoryID,
		Price:            in.Price,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		Video:            in.Video,
		Active:           true,
	}
	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return replyID(c, fiber.StatusCreated, "Produto cadastrado com sucesso", product.ID)
}

// UpdateProduct replaces the editable fields of a product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := first(h.db, &product, c.Params("id"), "Produto não encontrado"); err != nil {
		return err
	}

	var in models.ProductInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := h.ensureCategory(in.CategoryID); err != nil {
		return err
	}

	if err := h.db.Model(&product).Updates(map[string]any{
		"name":              in.Name,
		"category_id":       in.CategoryID,
		"price":             in.Price,
		"short_description": in.ShortDescription,
		"description":       in.Description,
		"video":             in.Video,
	}).Error; err != nil {
		return err
	}

	return reply(c, fiber.StatusOK, "Produto alterado com sucesso")
}

// SetProductActive activates or deactivates a product.
func (h *ProductHandler) SetProductActive(c *fiber.Ctx) error {
	var product models.Product
	if err := first(h.db, &product, c.Params("id"), "Produto não encontrado"); err != nil {
		return err
	}

	var in models.ActiveInput
	if err := bind(c, &in); err != nil {
		return err
	}

	if err := h.db.Model(&product).Update("active", in.Active).Error; err != nil {
		return err
	}

	if in.Active {
		return reply(c, fiber.StatusOK, "Produto ativado com sucesso")
	}
	return reply(c, fiber.StatusOK, "Produto desativado com sucesso")
}

// ProductThumbnail replaces the thumbnail of a product.
func (h *ProductHandler) ProductThumbnail(c *fiber.Ctx) error {
	var product models.Product
	if err := first(h.db, &product, c.Params("id"), "Produto não encontrado"); err != nil {
		return err
	}

	url, name, err := h.storage.Save(c)
	if err != nil {
		return err
	}

	previous := product.ThumbnailID
	if err := h.db.Model(&product).Updates(map[string]any{
		"thumbnail":    url,
		"thumbnail_id": name,
	}).Error; err != nil {
		h.storage.Remove(name)
		return err
	}
	h.storage.Remove(previous)

	return reply(c, fiber.StatusOK, "Imagem alterada com sucesso")
}

// ListSizes returns the sizes of a product.
func (h *ProductHandler) ListSizes(c *fiber.Ctx) error {
	var sizes []models.Size
	if err := h.db.Where("product_id = ?", c.Params("productId")).Order("created_at asc").Find(&sizes).Error; err != nil {
		return err
	}
	return c.JSON(sizes)
}

// CreateSize adds a size to a product.
func (h *ProductHandler) CreateSize(c *fiber.Ctx) error {
	var product models.Product
	if err := first(h.db, &product, c.Params("productId"), "Produto não encontrado"); err != nil {
		return err
	}

	var in models.SizeInput
	if err := bind(c, &in); err != nil {
		return err
	}

	size := models.Size{ProductID: product.ID, Size: in.Size}
	if err := h.db.Create(&size).Error; err != nil {
		return err
	}

	return replyID(c, fiber.StatusCreated, "Tamanho cadastrado com sucesso", size.ID)
}

// DeleteSize removes a size.
func (h *ProductHandler) DeleteSize(c *fiber.Ctx) error {
	res := h.db.Delete(&models.Size{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Tamanho não encontrado")
	}
	return reply(c, fiber.StatusOK, "Tamanho excluído com sucesso")
}
