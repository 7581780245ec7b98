package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/status"
)

var (
	errShippingClosed = errors.New("shipping info is editable only while shipping")
	errNoCheckout     = errors.New("order has no checkout id")
)

// Orders is the sales screen.
type Orders struct {
	List    *lrm.Controller[models.Order]
	Clients *Clients

	deps Deps
}

// NewOrders constructs the order store. It starts searching all orders.
func NewOrders(d Deps) *Orders {
	list := lrm.New(lrm.Options[models.Order]{
		Name:     "orders",
		Key:      orderKey,
		Filter:   searchFilter(api.SearchAll, ""),
		Interval: d.Interval,
		Notifier: d.notifier(),
		Fetch: func(ctx context.Context, filter string) ([]models.Order, error) {
			by, value := parseSearch(filter)
			return d.API.Orders(ctx, by, value)
		},
	})
	return &Orders{List: list, Clients: NewClients(d), deps: d}
}

func searchFilter(by api.OrderSearch, value string) string {
	return string(by) + ":" + value
}

func parseSearch(filter string) (api.OrderSearch, string) {
	by, value, _ := strings.Cut(filter, ":")
	return api.OrderSearch(by), value
}

// Search switches the search mode. value is a client id or order id.
func (v *Orders) Search(ctx context.Context, by api.OrderSearch, value string) error {
	if by != api.SearchAll && strings.TrimSpace(value) == "" {
		v.deps.notifier().Notify(notify.Notification{Level: notify.Warning, Message: "Informe um valor para a busca", At: time.Now()})
		return fmt.Errorf("%w: empty %s search", lrm.ErrValidation, by)
	}
	return v.List.SetFilter(ctx, searchFilter(by, strings.TrimSpace(value)))
}

// Open returns the order with id from the mirror.
func (v *Orders) Open(id string) (models.Order, error) {
	return v.List.BeginEdit(id)
}

// UpdateStatus moves the order with id to new statuses.
func (v *Orders) UpdateStatus(ctx context.Context, id string, in models.StatusInput) lrm.Result {
	return v.List.Submit(ctx, lrm.Mutation{
		Intent:     lrm.Update,
		ID:         id,
		Payload:    in,
		CloseModal: true,
		Send: func(ctx context.Context) (models.Message, error) {
			return v.deps.API.UpdateOrderStatus(ctx, id, in)
		},
	})
}

// UpdateShipping records tracking info. Only orders in the shipping stage
// accept it.
func (v *Orders) UpdateShipping(ctx context.Context, id string, in models.ShippingInput) lrm.Result {
	order, ok := v.List.Find(id)
	if !ok {
		return warn(v.deps.notifier(), lrm.ErrNotFound, lrm.ErrNotFound.Error())
	}
	if !order.OrderStatus.AllowsShipping() {
		return warn(v.deps.notifier(), errors.Join(lrm.ErrValidation, errShippingClosed),
			fmt.Sprintf("Informações de envio só podem ser alteradas com o pedido em %q", status.OrderShipping.Label().Text))
	}
	return v.List.Submit(ctx, lrm.Mutation{
		Intent:     lrm.Update,
		ID:         id,
		Payload:    in,
		CloseModal: true,
		Send: func(ctx context.Context) (models.Message, error) {
			return v.deps.API.UpdateShipping(ctx, id, in)
		},
	})
}

// PaymentInfo looks up the external payment record of the order with id.
func (v *Orders) PaymentInfo(ctx context.Context, id string) (models.PaymentInfo, error) {
	order, ok := v.List.Find(id)
	if !ok {
		warn(v.deps.notifier(), lrm.ErrNotFound, lrm.ErrNotFound.Error())
		return models.PaymentInfo{}, lrm.ErrNotFound
	}
	if order.CheckoutID == "" {
		warn(v.deps.notifier(), errNoCheckout, "Pedido sem informações de pagamento")
		return models.PaymentInfo{}, errNoCheckout
	}
	info, err := v.deps.API.PaymentInfo(ctx, order.CheckoutID, order.ID)
	if err != nil {
		v.deps.notifier().Notify(notify.Notification{Level: notify.Error, Message: api.MessageOf(err, "Erro ao buscar o pagamento"), At: time.Now()})
		return info, err
	}
	return info, nil
}

// Print fetches the printable summary of the order with id.
func (v *Orders) Print(ctx context.Context, id string) (models.OrderPrint, error) {
	out, err := v.deps.API.PrintOrder(ctx, id)
	if err != nil {
		v.deps.notifier().Notify(notify.Notification{Level: notify.Error, Message: api.MessageOf(err, "Erro ao gerar a impressão"), At: time.Now()})
		return out, err
	}
	return out, nil
}

// Run polls the orders and clients until ctx is done.
func (v *Orders) Run(ctx context.Context) {
	runAll(ctx, v.List.Run, v.Clients.List.Run)
}
