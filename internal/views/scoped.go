package views

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/upload"
)

var errNoProduct = errors.New("no product selected")

// Cascade is the category then product picker of product-scoped screens.
type Cascade struct {
	Tree *lrm.Controller[models.Category]

	mu         sync.Mutex
	categoryID string
	productID  string
}

func newCascade(d Deps, name string) *Cascade {
	return &Cascade{
		Tree: newController(d, name+" tree", categoryKey, false, func(ctx context.Context, _ string) ([]models.Category, error) {
			return d.API.CategoriesWithProducts(ctx)
		}),
	}
}

// Selected returns the chosen category and product ids.
func (c *Cascade) Selected() (categoryID, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categoryID, c.productID
}

// Products lists the products of the chosen category.
func (c *Cascade) Products() []models.Product {
	categoryID, _ := c.Selected()
	if categoryID == "" {
		return nil
	}
	cat, ok := c.Tree.Find(categoryID)
	if !ok {
		return nil
	}
	return cat.Products
}

// Scoped is a child collection keyed by the selected product.
type Scoped[T any] struct {
	Cascade *Cascade
	List    *lrm.Controller[T]

	deps   Deps
	remove func(ctx context.Context, id string) (models.Message, error)
}

func newScoped[T any](d Deps, name string, key func(T) string, fetch lrm.Fetcher[T], remove func(ctx context.Context, id string) (models.Message, error)) *Scoped[T] {
	return &Scoped[T]{
		Cascade: newCascade(d, name),
		List:    newController(d, name, key, true, fetch),
		deps:    d,
		remove:  remove,
	}
}

// Load reads the category tree and the child list.
func (s *Scoped[T]) Load(ctx context.Context) error {
	return errors.Join(s.Cascade.Tree.Load(ctx), s.List.Load(ctx))
}

// Run polls the category tree and the child list until ctx is done.
func (s *Scoped[T]) Run(ctx context.Context) {
	runAll(ctx, s.Cascade.Tree.Run, s.List.Run)
}

// SelectCategory chooses a category and clears the product, which empties
// the child list without a request.
func (s *Scoped[T]) SelectCategory(ctx context.Context, categoryID string) error {
	s.Cascade.mu.Lock()
	s.Cascade.categoryID = categoryID
	s.Cascade.productID = ""
	s.Cascade.mu.Unlock()
	return s.List.SetFilter(ctx, "")
}

// SelectProduct chooses the product whose children are listed.
func (s *Scoped[T]) SelectProduct(ctx context.Context, productID string) error {
	s.Cascade.mu.Lock()
	s.Cascade.productID = productID
	s.Cascade.mu.Unlock()
	return s.List.SetFilter(ctx, productID)
}

// Delete removes the child with id, marking its row busy meanwhile.
func (s *Scoped[T]) Delete(ctx context.Context, id string) lrm.Result {
	return s.List.Do(ctx, id, lrm.Delete, func(ctx context.Context) (models.Message, error) {
		return s.remove(ctx, id)
	})
}

func (s *Scoped[T]) product() (string, bool) {
	_, productID := s.Cascade.Selected()
	return productID, productID != ""
}

func (s *Scoped[T]) noProduct() lrm.Result {
	return warn(s.deps.notifier(), errors.Join(lrm.ErrValidation, errNoProduct), "Selecione um produto")
}

// Sizes is the product size screen.
type Sizes struct {
	*Scoped[models.Size]
}

// NewSizes constructs the size store.
func NewSizes(d Deps) *Sizes {
	return &Sizes{newScoped(d, "sizes", sizeKey,
		func(ctx context.Context, productID string) ([]models.Size, error) {
			return d.API.Sizes(ctx, productID)
		},
		d.API.DeleteSize,
	)}
}

// Add creates a size for the selected product.
func (v *Sizes) Add(ctx context.Context, in models.SizeInput) lrm.Result {
	productID, ok := v.product()
	if !ok {
		return v.noProduct()
	}
	return v.List.Submit(ctx, lrm.Mutation{
		Intent:  lrm.Create,
		Payload: in,
		Send: func(ctx context.Context) (models.Message, error) {
			return v.deps.API.CreateSize(ctx, productID, in)
		},
	})
}

// Tables is the measurement table screen.
type Tables struct {
	*Scoped[models.TableImage]
	Image *upload.Uploader
}

// NewTables constructs the measurement table store.
func NewTables(d Deps) *Tables {
	return &Tables{
		Scoped: newScoped(d, "tables", tableKey,
			func(ctx context.Context, productID string) ([]models.TableImage, error) {
				return d.API.Tables(ctx, productID)
			},
			d.API.DeleteTable,
		),
		Image: d.uploader(),
	}
}

// Add uploads the selected image as a table of the selected product.
func (v *Tables) Add(ctx context.Context) lrm.Result {
	productID, ok := v.product()
	if !ok {
		return v.noProduct()
	}
	return uploadAndReconcile(ctx, v.Image, v.List, upload.Target{
		Method: http.MethodPost, Path: api.TablePath(productID), CloseOnSuccess: true,
	}, nil)
}

// Modeling is the modeling screen.
type Modeling struct {
	*Scoped[models.ModelingEntry]
	Image *upload.Uploader
}

// NewModeling constructs the modeling store.
func NewModeling(d Deps) *Modeling {
	return &Modeling{
		Scoped: newScoped(d, "modeling", modelingKey,
			func(ctx context.Context, productID string) ([]models.ModelingEntry, error) {
				return d.API.Modeling(ctx, productID)
			},
			d.API.DeleteModeling,
		),
		Image: d.uploader(),
	}
}

// Add uploads the selected image with its title and description.
func (v *Modeling) Add(ctx context.Context, meta models.ModelingMeta) lrm.Result {
	productID, ok := v.product()
	if !ok {
		return v.noProduct()
	}
	return uploadAndReconcile(ctx, v.Image, v.List, upload.Target{
		Method: http.MethodPost, Path: api.ModelingPath(productID), CloseOnSuccess: true,
	}, meta)
}

// Catalog is the product gallery screen.
type Catalog struct {
	*Scoped[models.CatalogImage]
	Image *upload.Uploader
}

// NewCatalog constructs the catalog store.
func NewCatalog(d Deps) *Catalog {
	return &Catalog{
		Scoped: newScoped(d, "catalog", catalogKey,
			func(ctx context.Context, productID string) ([]models.CatalogImage, error) {
				return d.API.Catalog(ctx, productID)
			},
			d.API.DeleteCatalog,
		),
		Image: d.uploader(),
	}
}

// Add uploads the selected image into the selected product's gallery.
func (v *Catalog) Add(ctx context.Context) lrm.Result {
	productID, ok := v.product()
	if !ok {
		return v.noProduct()
	}
	return uploadAndReconcile(ctx, v.Image, v.List, upload.Target{
		Method: http.MethodPost, Path: api.CatalogPath(productID), CloseOnSuccess: true,
	}, nil)
}

func runAll(ctx context.Context, runners ...func(context.Context)) {
	var wg sync.WaitGroup
	for _, run := range runners {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(run)
	}
	wg.Wait()
}
