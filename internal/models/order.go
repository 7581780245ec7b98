package models

import (
	"github.com/shopspring/decimal"

	"github.com/example/backoffice/internal/status"
)

// Order is a customer purchase tracked through fulfilment.
type Order struct {
	BaseModel
	ClientID            string               `gorm:"type:varchar(36);index" json:"clientId"`
	Client              *Client              `json:"client,omitempty"`
	Items               []OrderItem          `json:"OrderItems,omitempty"`
	OrderStatus         status.OrderStatus   `gorm:"type:varchar(16);default:payment" json:"orderStatus"`
	PaymentStatus       status.PaymentStatus `gorm:"type:varchar(16);default:waiting" json:"paymentStatus"`
	CheckoutID          string               `json:"checkoutId,omitempty"`
	PaymentMethod       string               `json:"paymentMethod,omitempty"`
	Observation         string               `json:"observation"`
	ShippingCode        string               `json:"shippingCode"`
	ShippingInformation string               `json:"shippingInformation"`
	Total               decimal.Decimal      `gorm:"type:decimal(12,2)" json:"total"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	BaseModel
	OrderID   string          `gorm:"type:varchar(36);index" json:"orderId"`
	ProductID string          `gorm:"type:varchar(36)" json:"productId"`
	Product   *Product        `json:"product,omitempty"`
	SizeID    string          `gorm:"type:varchar(36)" json:"sizeId"`
	Size      *Size           `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
}

// LineTotal computes the line value from the product price when the server
// did not send one.
func (i OrderItem) LineTotal() decimal.Decimal {
	if !i.Total.IsZero() || i.Product == nil {
		return i.Total
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PaymentInfo is the external payment record linked through an order's
// checkout id.
type PaymentInfo struct {
	Status string   `json:"status"`
	Method []string `json:"method"`
}

// OrderPrint is the printable summary of an order.
type OrderPrint struct {
	Order   string      `json:"order"`
	Client  string      `json:"client"`
	Address string      `json:"address"`
	Date    string      `json:"data"`
	Items   []OrderItem `json:"items"`
	Total   string      `json:"total"`
}
