package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/backoffice/internal/middleware"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/status"
	"github.com/example/backoffice/internal/utils"
)

// OrderHandler manages orders and the client list.
type OrderHandler struct {
	db       *gorm.DB
	notifier notify.Notifier
}

// NewOrderHandler constructs OrderHandler. notifier receives a warning for
// every refused or cancelled payment.
func NewOrderHandler(db *gorm.DB, notifier notify.Notifier) *OrderHandler {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &OrderHandler{db: db, notifier: notifier}
}

func (h *OrderHandler) withDetails() *gorm.DB {
	return h.db.Preload("Client").Preload("Items.Product").Preload("Items.Size")
}

// SearchOrders lists orders. search is all, client or id.
func (h *OrderHandler) SearchOrders(c *fiber.Ctx) error {
	query := h.withDetails().Order("created_at desc")
	value := c.Params("value")

	switch c.Params("search") {
	case "all":
	case "client":
		query = query.Where("client_id = ?", value)
	case "id":
		query = query.Where("id = ?", value)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Tipo de busca inválido")
	}

	var orders []models.Order
	if err := query.Scopes(utils.ParsePage(c).Scope).Find(&orders).Error; err != nil {
		return err
	}
	return c.JSON(orders)
}

// UpdateStatus moves an order to new order and payment statuses.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var order models.Order
	if err := first(h.db, &order, c.Params("id"), "Pedido não encontrado"); err != nil {
		return err
	}

	var in models.StatusInput
	if err := bind(c, &in); err != nil {
		return err
	}

	if err := h.db.Model(&order).Updates(map[string]any{
		"order_status":   in.OrderStatus,
		"payment_status": in.PaymentStatus,
	}).Error; err != nil {
		return err
	}

	operator, _ := middleware.GetCurrentUserID(c)
	log.Printf("[Orders] %s moved to %s/%s by %s", order.ID, in.OrderStatus, in.PaymentStatus, operator)

	if in.PaymentStatus == status.PaymentRefused || in.PaymentStatus == status.PaymentCancel {
		h.notifier.Notify(notify.Notification{
			Level:   notify.Warning,
			Message: "Pagamento do pedido " + order.ID + ": " + in.PaymentStatus.Label().Text,
		})
	}

	return reply(c, fiber.StatusOK, "Status alterado com sucesso")
}

// UpdateShipping records the tracking information of an order. Only orders
// in the shipping stage accept it.
func (h *OrderHandler) UpdateShipping(c *fiber.Ctx) error {
	var order models.Order
	if err := first(h.db, &order, c.Params("id"), "Pedido não encontrado"); err != nil {
		return err
	}
	if !order.OrderStatus.AllowsShipping() {
		return fiber.NewError(fiber.StatusConflict, "O pedido ainda não está em fase de envio")
	}

	var in models.ShippingInput
	if err := bind(c, &in); err != nil {
		return err
	}

	if err := h.db.Model(&order).Updates(map[string]any{
		"shipping_code":        in.ShippingCode,
		"shipping_information": in.ShippingInformation,
	}).Error; err != nil {
		return err
	}

	return reply(c, fiber.StatusOK, "Informações de envio salvas com sucesso")
}

// PaymentInfo returns the payment record linked to an order's checkout.
func (h *OrderHandler) PaymentInfo(c *fiber.Ctx) error {
	var order models.Order
	if err := first(h.db, &order, c.Params("orderId"), "Pedido não encontrado"); err != nil {
		return err
	}
	if order.CheckoutID == "" || order.CheckoutID != c.Params("checkoutId") {
		return fiber.NewError(fiber.StatusNotFound, "Pagamento não encontrado")
	}

	info := models.PaymentInfo{Status: "unpaid", Method: []string{"card"}}
	if order.PaymentStatus == status.PaymentPaidOut {
		info.Status = "paid"
	}
	if order.PaymentMethod != "" {
		info.Method = strings.Split(order.PaymentMethod, ",")
	}
	return c.JSON(info)
}

// PrintOrder returns the printable summary of an order.
func (h *OrderHandler) PrintOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := first(h.withDetails(), &order, c.Params("id"), "Pedido não encontrado"); err != nil {
		return err
	}

	out := models.OrderPrint{
		Order: order.ID,
		Date:  utils.FormatDate(order.CreatedAt),
		Items: order.Items,
		Total: utils.FormatMoney(order.Total),
	}
	if order.Client != nil {
		out.Client = order.Client.Name
		out.Address = order.Client.Address()
	} else {
		log.Printf("[Orders] Order %s has no client", order.ID)
	}
	return c.JSON(out)
}
