package models

import (
	"github.com/shopspring/decimal"

	"github.com/example/backoffice/internal/status"
)

// CategoryInput is the create/update body for a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// ProductInput is the create/update body for a product.
type ProductInput struct {
	Name             string          `json:"name" validate:"required,max=160"`
	CategoryID       string          `json:"categoryId" validate:"required"`
	Price            decimal.Decimal `json:"price" validate:"gtzero"`
	ShortDescription string          `json:"shortDescription" validate:"max=300"`
	Description      string          `json:"description"`
	Video            string          `json:"video,omitempty" validate:"omitempty,url"`
}

// SizeInput is the body for adding a size to a product.
type SizeInput struct {
	Size string `json:"size" validate:"required,max=20"`
}

// ActiveInput toggles a category or product.
type ActiveInput struct {
	Active bool `json:"active"`
}

// StatusInput moves an order through fulfilment and payment.
type StatusInput struct {
	OrderStatus   status.OrderStatus   `json:"orderStatus" validate:"required,oneof=payment design production packing shipping finish"`
	PaymentStatus status.PaymentStatus `json:"paymentStatus" validate:"required,oneof=waiting paidOut refused cancel"`
}

// ShippingInput records the carrier tracking for an order.
type ShippingInput struct {
	ShippingCode        string `json:"shippingCode" validate:"required"`
	ShippingInformation string `json:"shippingInformation"`
}

// LoginInput is the body of POST /sessions.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ModelingMeta is the metadata sent with a modeling image.
type ModelingMeta struct {
	Title       string `schema:"title" validate:"required"`
	Description string `schema:"description" validate:"required"`
}

// BannerMeta is the metadata sent with a banner image.
type BannerMeta struct {
	Origin   status.BannerOrigin `schema:"origin" validate:"required,oneof=index products product catalog cart other"`
	Redirect string              `schema:"redirect,omitempty"`
}
