package views

import (
	"context"
	"net/http"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/status"
	"github.com/example/backoffice/internal/upload"
)

// Banners is the banner screen, filtered by the page the banners show on.
type Banners struct {
	List  *lrm.Controller[models.Banner]
	Image *upload.Uploader

	deps Deps
}

// NewBanners constructs the banner store showing origin.
func NewBanners(d Deps, origin status.BannerOrigin) *Banners {
	list := lrm.New(lrm.Options[models.Banner]{
		Name:          "banners",
		Key:           bannerKey,
		RequireFilter: true,
		Filter:        string(origin),
		Interval:      d.Interval,
		Notifier:      d.notifier(),
		Fetch: func(ctx context.Context, origin string) ([]models.Banner, error) {
			return d.API.Banners(ctx, origin)
		},
	})
	return &Banners{List: list, Image: d.uploader(), deps: d}
}

// ShowOrigin switches the page whose banners are listed.
func (v *Banners) ShowOrigin(ctx context.Context, origin status.BannerOrigin) error {
	return v.List.SetFilter(ctx, string(origin))
}

// Add uploads the selected image as a banner.
func (v *Banners) Add(ctx context.Context, meta models.BannerMeta) lrm.Result {
	return uploadAndReconcile(ctx, v.Image, v.List, upload.Target{
		Method: http.MethodPost, Path: api.BannerPath, CloseOnSuccess: true,
	}, meta)
}

// Delete removes the banner with id.
func (v *Banners) Delete(ctx context.Context, id string) lrm.Result {
	return v.List.Do(ctx, id, lrm.Delete, func(ctx context.Context) (models.Message, error) {
		return v.deps.API.DeleteBanner(ctx, id)
	})
}
