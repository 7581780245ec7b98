package views

import (
	"context"
	"net/http"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/upload"
)

// Products is the product screen. Its filter is an optional category id.
type Products struct {
	List       *lrm.Controller[models.Product]
	Categories *lrm.Controller[models.Category]
	Thumb      *upload.Uploader

	deps Deps
}

// NewProducts constructs the product store.
func NewProducts(d Deps) *Products {
	return &Products{
		List: newController(d, "products", productKey, false, func(ctx context.Context, categoryID string) ([]models.Product, error) {
			all, err := d.API.Products(ctx)
			if err != nil || categoryID == "" {
				return all, err
			}
			filtered := make([]models.Product, 0, len(all))
			for _, p := range all {
				if p.CategoryID == categoryID {
					filtered = append(filtered, p)
				}
			}
			return filtered, nil
		}),
		Categories: newController(d, "product categories", categoryKey, false, func(ctx context.Context, _ string) ([]models.Category, error) {
			return d.API.Categories(ctx)
		}),
		Thumb: d.uploader(),
		deps:  d,
	}
}

// FilterByCategory restricts the list to one category; empty shows all.
func (v *Products) FilterByCategory(ctx context.Context, categoryID string) error {
	return v.List.SetFilter(ctx, categoryID)
}

// Create is the first step of adding a product; the thumbnail follows with
// the returned id.
func (v *Products) Create(ctx context.Context, in models.ProductInput) lrm.Result {
	return v.List.Submit(ctx, lrm.Mutation{
		Intent:  lrm.Create,
		Payload: in,
		Send: func(ctx context.Context) (models.Message, error) {
			return v.deps.API.CreateProduct(ctx, in)
		},
	})
}

// Edit stages the product with id and returns its editable fields.
func (v *Products) Edit(id string) (models.ProductInput, error) {
	p, err := v.List.BeginEdit(id)
	if err != nil {
		return models.ProductInput{}, err
	}
	return models.ProductInput{
		Name:             p.Name,
		CategoryID:       p.CategoryID,
		Price:            p.Price,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Video:            p.Video,
	}, nil
}

// Update saves the staged product.
func (v *Products) Update(ctx context.Context, in models.ProductInput) lrm.Result {
	_, id, ok := v.List.Staging()
	if !ok {
		return warn(v.deps.notifier(), lrm.ErrNotFound, lrm.ErrNotFound.Error())
	}
	return v.List.Submit(ctx, lrm.Mutation{
		Intent:     lrm.Update,
		ID:         id,
		Payload:    in,
		CloseModal: true,
		Send: func(ctx context.Context) (models.Message, error) {
			return v.deps.API.UpdateProduct(ctx, id, in)
		},
	})
}

// SetActive activates or deactivates a product. The mirror changes only
// through the reconciliation that follows.
func (v *Products) SetActive(ctx context.Context, id string, active bool) lrm.Result {
	return v.List.Do(ctx, id, lrm.Action, func(ctx context.Context) (models.Message, error) {
		return v.deps.API.SetProductActive(ctx, id, active)
	})
}

// UploadThumbnail attaches the selected image to the product with id.
func (v *Products) UploadThumbnail(ctx context.Context, id string) lrm.Result {
	return uploadAndReconcile(ctx, v.Thumb, v.List, upload.Target{
		Method:         http.MethodPut,
		Path:           api.ProductThumbnailPath(id),
		CloseOnSuccess: true,
	}, nil)
}
