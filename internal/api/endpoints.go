package api

import (
	"context"
	"io"
	"net/http"

	"github.com/example/backoffice/internal/models"
)

// Login opens a session and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	var session models.Session
	err := c.do(ctx, requestOpts{
		Method: http.MethodPost,
		Path:   "/sessions",
		Body:   models.LoginInput{Email: email, Password: password},
	}, &session)
	if err != nil {
		return session, err
	}
	c.SetToken(session.Token)
	return session, nil
}

// Upload sends a prepared multipart body to path.
func (c *Client) Upload(ctx context.Context, method, path string, body io.Reader, contentType string) (models.Message, error) {
	var msg models.Message
	err := c.do(ctx, requestOpts{Method: method, Path: path, RawBody: body, ContentType: contentType}, &msg)
	return msg, err
}

func (c *Client) list(ctx context.Context, path string, out any) error {
	return c.do(ctx, requestOpts{Method: http.MethodGet, Path: path}, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any) (models.Message, error) {
	var msg models.Message
	err := c.do(ctx, requestOpts{Method: method, Path: path, Body: body}, &msg)
	return msg, err
}

// Categories lists every category.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.list(ctx, "/categories", &out)
	return out, err
}

// CategoriesWithProducts lists categories with their products embedded.
func (c *Client) CategoriesWithProducts(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.list(ctx, "/findCategoriesWithProducts", &out)
	return out, err
}

// CreateCategory creates a category. The response carries the new id.
func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) (models.Message, error) {
	return c.send(ctx, http.MethodPost, "/categories", in)
}

// UpdateCategory replaces a category's name and description.
func (c *Client) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (models.Message, error) {
	return c.send(ctx, http.MethodPut, join("categories", id), in)
}

// SetCategoryActive activates or deactivates a category.
func (c *Client) SetCategoryActive(ctx context.Context, id string, active bool) (models.Message, error) {
	return c.send(ctx, http.MethodPut, join("activeCategory", id), models.ActiveInput{Active: active})
}

// CategoryThumbnailPath attaches the first thumbnail of a new category. The
// misspelling is part of the deployed API.
func CategoryThumbnailPath(id string) string {
	return join("thumbnailCateogry", id)
}

// UpdateCategoryThumbnailPath replaces the thumbnail of an existing category.
func UpdateCategoryThumbnailPath(id string) string {
	return join("updateThumbnailCategory", id)
}

// Products lists every product.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.list(ctx, "/products", &out)
	return out, err
}

// CreateProduct creates a product. The response carries the new id.
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (models.Message, error) {
	return c.send(ctx, http.MethodPost, "/products", in)
}

// UpdateProduct replaces a product's fields.
func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Message, error) {
	return c.send(ctx, http.MethodPut, join("products", id), in)
}

// SetProductActive activates or deactivates a product.
func (c *Client) SetProductActive(ctx context.Context, id string, active bool) (models.Message, error) {
	return c.send(ctx, http.MethodPut, join("products", "active", id), models.ActiveInput{Active: active})
}

// ProductThumbnailPath is the upload path of a product thumbnail.
func ProductThumbnailPath(id string) string {
	return join("products", "thumbnail", id)
}

// Sizes lists the sizes of a product.
func (c *Client) Sizes(ctx context.Context, productID string) ([]models.Size, error) {
	var out []models.Size
	err := c.list(ctx, join("sizes", productID), &out)
	return out, err
}

// CreateSize adds a size to a product.
func (c *Client) CreateSize(ctx context.Context, productID string, in models.SizeInput) (models.Message, error) {
	return c.send(ctx, http.MethodPost, join("sizes", productID), in)
}

// DeleteSize removes a size.
func (c *Client) DeleteSize(ctx context.Context, id string) (models.Message, error) {
	return c.send(ctx, http.MethodDelete, join("sizes", id), nil)
}

// Tables lists the measurement tables of a product.
func (c *Client) Tables(ctx context.Context, productID string) ([]models.TableImage, error) {
	var out []models.TableImage
	err := c.list(ctx, join("tables", productID), &out)
	return out, err
}

// DeleteTable removes a measurement table.
func (c *Client) DeleteTable(ctx context.Context, id string) (models.Message, error) {
	return c.send(ctx, http.MethodDelete, join("tables", id), nil)
}

// TablePath is the upload path of a product's measurement table.
func TablePath(productID string) string { return join("tables", productID) }

// Modeling lists the modeling entries of a product.
func (c *Client) Modeling(ctx context.Context, productID string) ([]models.ModelingEntry, error) {
	var out []models.ModelingEntry
	err := c.list(ctx, join("modeling", productID), &out)
	return out, err
}

// DeleteModeling removes a modeling entry.
func (c *Client) DeleteModeling(ctx context.Context, id string) (models.Message, error) {
	return c.send(ctx, http.MethodDelete, join("modeling", id), nil)
}

// ModelingPath is the upload path of a product's modeling entry.
func ModelingPath(productID string) string { return join("modeling", productID) }

// Catalog lists the catalog images of a product.
func (c *Client) Catalog(ctx context.Context, productID string) ([]models.CatalogImage, error) {
	var out []models.CatalogImage
	err := c.list(ctx, join("catalogs", productID), &out)
	return out, err
}

// DeleteCatalog removes a catalog image.
func (c *Client) DeleteCatalog(ctx context.Context, id string) (models.Message, error) {
	return c.send(ctx, http.MethodDelete, join("catalogs", id), nil)
}

// CatalogPath is the upload path of a product's catalog image.
func CatalogPath(productID string) string { return join("catalogs", productID) }

// Banners lists the banners of a page.
func (c *Client) Banners(ctx context.Context, origin string) ([]models.Banner, error) {
	var out []models.Banner
	err := c.list(ctx, join("banners", origin), &out)
	return out, err
}

// DeleteBanner removes a banner.
func (c *Client) DeleteBanner(ctx context.Context, id string) (models.Message, error) {
	return c.send(ctx, http.MethodDelete, join("banners", id), nil)
}

// BannerPath is the upload path of a new banner.
const BannerPath = "/banners"

// OrderSearch selects how orders are looked up.
type OrderSearch string

const (
	SearchAll    OrderSearch = "all"
	SearchClient OrderSearch = "client"
	SearchID     OrderSearch = "id"
)

// Orders searches orders. value is ignored for SearchAll.
func (c *Client) Orders(ctx context.Context, by OrderSearch, value string) ([]models.Order, error) {
	if by == SearchAll || by == "" {
		by, value = SearchAll, "all"
	}
	var out []models.Order
	err := c.list(ctx, join("orders", string(by), value), &out)
	return out, err
}

// UpdateOrderStatus moves an order to new order and payment statuses.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, in models.StatusInput) (models.Message, error) {
	return c.send(ctx, http.MethodPut, join("orders", "status", id), in)
}

// UpdateShipping records the tracking code of an order.
func (c *Client) UpdateShipping(ctx context.Context, id string, in models.ShippingInput) (models.Message, error) {
	return c.send(ctx, http.MethodPut, join("orders", "shipping", id), in)
}

// PaymentInfo fetches the external payment record of an order.
func (c *Client) PaymentInfo(ctx context.Context, checkoutID, orderID string) (models.PaymentInfo, error) {
	var out models.PaymentInfo
	err := c.list(ctx, join("order", "payment", checkoutID, orderID), &out)
	return out, err
}

// PrintOrder fetches the printable summary of an order.
func (c *Client) PrintOrder(ctx context.Context, id string) (models.OrderPrint, error) {
	var out models.OrderPrint
	err := c.list(ctx, join("print", id), &out)
	return out, err
}

// Clients lists every client.
func (c *Client) Clients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	err := c.list(ctx, "/clients", &out)
	return out, err
}
