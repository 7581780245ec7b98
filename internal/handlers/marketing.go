package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/status"
	"github.com/example/backoffice/internal/utils"
)

// MarketingHandler manages product images and storefront banners.
type MarketingHandler struct {
	db      *gorm.DB
	storage *Storage
}

// NewMarketingHandler constructs MarketingHandler.
func NewMarketingHandler(db *gorm.DB, storage *Storage) *MarketingHandler {
	return &MarketingHandler{db: db, storage: storage}
}

// RegisterMediaRoutes mounts the image endpoints on router.
func (h *MarketingHandler) RegisterMediaRoutes(router fiber.Router) {
	router.Get("/tables/:productId", h.ListTables)
	router.Post("/tables/:productId", h.CreateTable)
	router.Delete("/tables/:id", h.DeleteTable)

	router.Get("/modeling/:productId", h.ListModeling)
	router.Post("/modeling/:productId", h.CreateModeling)
	router.Delete("/modeling/:id", h.DeleteModeling)

	router.Get("/catalogs/:productId", h.ListCatalog)
	router.Post("/catalogs/:productId", h.CreateCatalog)
	router.Delete("/catalogs/:id", h.DeleteCatalog)

	router.Get("/banners/:origin", h.ListBanners)
	router.Post("/banners", h.CreateBanner)
	router.Delete("/banners/:id", h.DeleteBanner)
}

func (h *MarketingHandler) product(c *fiber.Ctx) (models.Product, error) {
	var product models.Product
	err := first(h.db, &product, c.Params("productId"), "Produto não encontrado")
	return product, err
}

func (h *MarketingHandler) listByProduct(c *fiber.Ctx, dst any) error {
	if err := h.db.Where("product_id = ?", c.Params("productId")).Order("created_at asc").Find(dst).Error; err != nil {
		return err
	}
	return c.JSON(dst)
}

// deleteImage removes the record with id from model's table and its file.
func (h *MarketingHandler) deleteImage(c *fiber.Ctx, record any, imageID func() string, notFound, done string) error {
	if err := first(h.db, record, c.Params("id"), notFound); err != nil {
		return err
	}
	if err := h.db.Delete(record).Error; err != nil {
		return err
	}
	h.storage.Remove(imageID())
	return reply(c, fiber.StatusOK, done)
}

// ListTables returns the measurement tables of a product.
func (h *MarketingHandler) ListTables(c *fiber.Ctx) error {
	var items []models.TableImage
	return h.listByProduct(c, &items)
}

// CreateTable stores a measurement table image for a product.
func (h *MarketingHandler) CreateTable(c *fiber.Ctx) error {
	product, err := h.product(c)
	if err != nil {
		return err
	}
	url, name, err := h.storage.Save(c)
	if err != nil {
		return err
	}
	item := models.TableImage{ProductID: product.ID, Image: url, ImageID: name}
	if err := h.db.Create(&item).Error; err != nil {
		h.storage.Remove(name)
		return err
	}
	return replyID(c, fiber.StatusCreated, "Tabela cadastrada com sucesso", item.ID)
}

// DeleteTable removes a measurement table.
func (h *MarketingHandler) DeleteTable(c *fiber.Ctx) error {
	var item models.TableImage
	return h.deleteImage(c, &item, func() string { return item.ImageID }, "Tabela não encontrada", "Tabela excluída com sucesso")
}

// ListModeling returns the modeling entries of a product.
func (h *MarketingHandler) ListModeling(c *fiber.Ctx) error {
	var items []models.ModelingEntry
	return h.listByProduct(c, &items)
}

// CreateModeling stores a modeling image with its title and description.
func (h *MarketingHandler) CreateModeling(c *fiber.Ctx) error {
	product, err := h.product(c)
	if err != nil {
		return err
	}

	meta := models.ModelingMeta{Title: c.FormValue("title"), Description: c.FormValue("description")}
	if err := utils.ValidateStruct(meta); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, utils.ValidationMessage(err))
	}

	url, name, err := h.storage.Save(c)
	if err != nil {
		return err
	}
	item := models.ModelingEntry{
		ProductID:   product.ID,
		Title:       meta.Title,
		Description: meta.Description,
		Image:       url,
		ImageID:     name,
	}
	if err := h.db.Create(&item).Error; err != nil {
		h.storage.Remove(name)
		return err
	}
	return replyID(c, fiber.StatusCreated, "Modelagem cadastrada com sucesso", item.ID)
}

// DeleteModeling removes a modeling entry.
func (h *MarketingHandler) DeleteModeling(c *fiber.Ctx) error {
	var item models.ModelingEntry
	return h.deleteImage(c, &item, func() string { return item.ImageID }, "Modelagem não encontrada", "Modelagem excluída com sucesso")
}

// ListCatalog returns the gallery of a product.
func (h *MarketingHandler) ListCatalog(c *fiber.Ctx) error {
	var items []models.CatalogImage
	return h.listByProduct(c, &items)
}

// CreateCatalog stores a gallery image for a product.
func (h *MarketingHandler) CreateCatalog(c *fiber.Ctx) error {
	product, err := h.product(c)
	if err != nil {
		return err
	}
	url, name, err := h.storage.Save(c)
	if err != nil {
		return err
	}
	item := models.CatalogImage{ProductID: product.ID, Image: url, ImageID: name}
	if err := h.db.Create(&item).Error; err != nil {
		h.storage.Remove(name)
		return err
	}
	return replyID(c, fiber.StatusCreated, "Imagem cadastrada com sucesso", item.ID)
}

// DeleteCatalog removes a gallery image.
func (h *MarketingHandler) DeleteCatalog(c *fiber.Ctx) error {
	var item models.CatalogImage
	return h.deleteImage(c, &item, func() string { return item.ImageID }, "Imagem não encontrada", "Imagem excluída com sucesso")
}

// ListBanners returns the banners of a storefront page.
func (h *MarketingHandler) ListBanners(c *fiber.Ctx) error {
	origin, err := status.ParseBannerOrigin(c.Params("origin"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Origem inválida")
	}
	var items []models.Banner
	if err := h.db.Where("origin = ?", origin).Order("created_at desc").Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(items)
}

// CreateBanner stores a banner image with its origin and redirect.
func (h *MarketingHandler) CreateBanner(c *fiber.Ctx) error {
	meta := models.BannerMeta{
		Origin:   status.BannerOrigin(c.FormValue("origin")),
		Redirect: c.FormValue("redirect"),
	}
	if err := utils.ValidateStruct(meta); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, utils.ValidationMessage(err))
	}

	url, name, err := h.storage.Save(c)
	if err != nil {
		return err
	}
	item := models.Banner{Banner: url, BannerID: name, Origin: meta.Origin, Redirect: meta.Redirect}
	if err := h.db.Create(&item).Error; err != nil {
		h.storage.Remove(name)
		return err
	}
	return replyID(c, fiber.StatusCreated, "Banner cadastrado com sucesso", item.ID)
}

// DeleteBanner removes a banner.
func (h *MarketingHandler) DeleteBanner(c *fiber.Ctx) error {
	var item models.Banner
	return h.deleteImage(c, &item, func() string { return item.BannerID }, "Banner não encontrado", "Banner excluído com sucesso")
}
