package views

import (
	"context"
	"net/http"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/upload"
)

// Categories is the category screen.
type Categories struct {
	List  *lrm.Controller[models.Category]
	Thumb *upload.Uploader

	deps Deps
}

// NewCategories constructs the category store.
func NewCategories(d Deps) *Categories {
	return &Categories{
		List: newController(d, "categories", categoryKey, false, func(ctx context.Context, _ string) ([]models.Category, error) {
			return d.API.Categories(ctx)
		}),
		Thumb: d.uploader(),
		deps:  d,
	}
}

// Create is the first step of adding a category. The result carries the new
// id so the caller can open the thumbnail step; the modal stays open.
func (v *Categories) Create(ctx context.Context, in models.CategoryInput) lrm.Result {
	return v.List.Submit(ctx, lrm.Mutation{
		Intent:  lrm.Create,
		Payload: in,
		Send: func(ctx context.Context) (models.Message, error) {
			return v.deps.API.CreateCategory(ctx, in)
		},
	})
}

// Edit stages the category with id and returns its editable fields.
func (v *Categories) Edit(id string) (models.CategoryInput, error) {
	c, err := v.List.BeginEdit(id)
	if err != nil {
		return models.CategoryInput{}, err
	}
	return models.CategoryInput{Name: c.Name, Description: c.Description}, nil
}

// Update saves the staged category.
func (v *Categories) Update(ctx context.Context, in models.CategoryInput) lrm.Result {
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
			return v.deps.API.UpdateCategory(ctx, id, in)
		},
	})
}

// SetActive activates or deactivates a category.
func (v *Categories) SetActive(ctx context.Context, id string, active bool) lrm.Result {
	return v.List.Do(ctx, id, lrm.Action, func(ctx context.Context) (models.Message, error) {
		return v.deps.API.SetCategoryActive(ctx, id, active)
	})
}

// UploadThumbnail attaches the selected image to the category with id. It is
// the second step of Create.
func (v *Categories) UploadThumbnail(ctx context.Context, id string) lrm.Result {
	return uploadAndReconcile(ctx, v.Thumb, v.List, upload.Target{
		Method:         http.MethodPut,
		Path:           api.CategoryThumbnailPath(id),
		CloseOnSuccess: true,
	}, nil)
}

// ChangeThumbnail replaces the thumbnail of an existing category with the
// selected image.
func (v *Categories) ChangeThumbnail(ctx context.Context, id string) lrm.Result {
	return uploadAndReconcile(ctx, v.Thumb, v.List, upload.Target{
		Method:         http.MethodPut,
		Path:           api.UpdateCategoryThumbnailPath(id),
		CloseOnSuccess: true,
	}, nil)
}
