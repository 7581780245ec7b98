// Package views holds one store per admin screen. Each store owns its own
// mirrors, staging and busy flags; stores never share state.
package views

import (
	"context"
	"time"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/upload"
)

// Deps are the collaborators shared by every store.
type Deps struct {
	API            *api.Client
	Notifier       notify.Notifier
	Interval       time.Duration
	MaxUploadBytes int64
}

func (d Deps) notifier() notify.Notifier {
	if d.Notifier == nil {
		return notify.Discard
	}
	return d.Notifier
}

func (d Deps) uploader() *upload.Uploader {
	return upload.New(d.API, d.notifier(), d.MaxUploadBytes)
}

func newController[T any](d Deps, name string, key func(T) string, requireFilter bool, fetch lrm.Fetcher[T]) *lrm.Controller[T] {
	return lrm.New(lrm.Options[T]{
		Name:          name,
		Fetch:         fetch,
		Key:           key,
		RequireFilter: requireFilter,
		Interval:      d.Interval,
		Notifier:      d.notifier(),
	})
}

func warn(n notify.Notifier, err error, msg string) lrm.Result {
	n.Notify(notify.Notification{Level: notify.Warning, Message: msg, At: time.Now()})
	return lrm.Failed(err)
}

// uploadAndReconcile sends the uploader's file and, on success, reconciles
// the list the image belongs to.
func uploadAndReconcile[T any](ctx context.Context, u *upload.Uploader, list *lrm.Controller[T], t upload.Target, meta any) lrm.Result {
	res := u.Upload(ctx, t, meta)
	if res.OK {
		_ = list.Reconcile(ctx)
	}
	return res
}

func categoryKey(c models.Category) string {
	return c.ID
}

func productKey(p models.Product) string {
	return p.ID
}

func sizeKey(s models.Size) string {
	return s.ID
}

func tableKey(t models.TableImage) string {
	return t.ID
}

func modelingKey(m models.ModelingEntry) string {
	return m.ID
}

func catalogKey(c models.CatalogImage) string {
	return c.ID
}

func bannerKey(b models.Banner) string {
	return b.ID
}

func orderKey(o models.Order) string {
	return o.ID
}

func clientKey(c models.Client) string {
	return c.ID
}
