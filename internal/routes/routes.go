package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/example/backoffice/internal/config"
	"github.com/example/backoffice/internal/handlers"
	"github.com/example/backoffice/internal/middleware"
	"github.com/example/backoffice/internal/notify"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, storage *handlers.Storage, notifier notify.Notifier) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, storage)
	productHandler := handlers.NewProductHandler(db, storage)
	marketingHandler := handlers.NewMarketingHandler(db, storage)
	orderHandler := handlers.NewOrderHandler(db, notifier)

	app.Static("/uploads", storage.Dir())
	app.Post("/sessions", authHandler.Login)

	// Protected routes
	protected := app.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/categories", catalogHandler.ListCategories)
	protected.Post("/categories", catalogHandler.CreateCategory)
	protected.Put("/categories/:id", catalogHandler.UpdateCategory)
	protected.Put("/activeCategory/:id", catalogHandler.SetCategoryActive)
	protected.Put("/thumbnailCateogry/:id", catalogHandler.CategoryThumbnail)
	protected.Put("/updateThumbnailCategory/:id", catalogHandler.UpdateCategoryThumbnail)
	protected.Get("/findCategoriesWithProducts", catalogHandler.CategoriesWithProducts)

	productHandler.RegisterProductRoutes(protected)
	marketingHandler.RegisterMediaRoutes(protected)

	protected.Get("/orders/:search/:value", orderHandler.SearchOrders)
	protected.Put("/orders/status/:id", orderHandler.UpdateStatus)
	protected.Put("/orders/shipping/:id", orderHandler.UpdateShipping)
	protected.Get("/order/payment/:checkoutId/:orderId", orderHandler.PaymentInfo)
	protected.Get("/print/:id", orderHandler.PrintOrder)
	protected.Get("/clients", orderHandler.ListClients)
}

// NewApp builds the sandbox Fiber application with every route registered.
func NewApp(db *gorm.DB, cfg *config.Config, storage *handlers.Storage, notifier notify.Notifier) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Loja Backoffice Sandbox",
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	Register(app, db, cfg, storage, notifier)
	return app
}
