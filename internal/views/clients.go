package views

import (
	"context"

	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
)

// Clients is the read-only client list.
type Clients struct {
	List *lrm.Controller[models.Client]
}

// NewClients constructs the client store.
func NewClients(d Deps) *Clients {
	return &Clients{
		List: newController(d, "clients", clientKey, false, func(ctx context.Context, _ string) ([]models.Client, error) {
			return d.API.Clients(ctx)
		}),
	}
}
