// Package status centralizes the enumerations shown across admin screens and
// the label, color and icon used to render each value.
package status

import (
	"fmt"
	"strconv"
)

// OrderStatus is the fulfilment stage of an order.
type OrderStatus string

const (
	OrderPayment    OrderStatus = "payment"
	OrderDesign     OrderStatus = "design"
	OrderProduction OrderStatus = "production"
	OrderPacking    OrderStatus = "packing"
	OrderShipping   OrderStatus = "shipping"
	OrderFinish     OrderStatus = "finish"
)

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentWaiting PaymentStatus = "waiting"
	PaymentPaidOut PaymentStatus = "paidOut"
	PaymentRefused PaymentStatus = "refused"
	PaymentCancel  PaymentStatus = "cancel"
)

// BannerOrigin tags the storefront page a banner is displayed on.
type BannerOrigin string

const (
	OriginIndex    BannerOrigin = "index"
	OriginProducts BannerOrigin = "products"
	OriginProduct  BannerOrigin = "product"
	OriginCatalog  BannerOrigin = "catalog"
	OriginCart     BannerOrigin = "cart"
	OriginOther    BannerOrigin = "other"
)

// Label describes how an enum value is rendered.
type Label struct {
	Text  string
	Color string
	Icon  string
	// Step is the 1-based position in the value's natural order.
	Step int
}

var orderLabels = map[OrderStatus]Label{
	OrderPayment:    {Text: "Pagamento", Color: "gold", Icon: "dollar", Step: 1},
	OrderDesign:     {Text: "Design", Color: "purple", Icon: "edit", Step: 2},
	OrderProduction: {Text: "Em Produção", Color: "blue", Icon: "node-index", Step: 3},
	OrderPacking:    {Text: "Preparando Envio", Color: "cyan", Icon: "box-plot", Step: 4},
	OrderShipping:   {Text: "Enviado", Color: "geekblue", Icon: "car", Step: 5},
	OrderFinish:     {Text: "Finalizado", Color: "success", Icon: "check", Step: 6},
}

var paymentLabels = map[PaymentStatus]Label{
	PaymentWaiting: {Text: "Aguardando", Color: "warning", Icon: "clock", Step: 1},
	PaymentPaidOut: {Text: "Aprovado", Color: "success", Icon: "check", Step: 2},
	PaymentRefused: {Text: "Recusado", Color: "default", Icon: "stop", Step: 3},
	PaymentCancel:  {Text: "Cancelado", Color: "error", Icon: "close", Step: 4},
}

var originLabels = map[BannerOrigin]Label{
	OriginIndex:    {Text: "Página Inicial", Color: "blue", Icon: "home", Step: 1},
	OriginProducts: {Text: "Produtos", Color: "blue", Icon: "appstore", Step: 2},
	OriginProduct:  {Text: "Produto", Color: "blue", Icon: "tag", Step: 3},
	OriginCatalog:  {Text: "Catálogo", Color: "blue", Icon: "book", Step: 4},
	OriginCart:     {Text: "Carrinho", Color: "blue", Icon: "shopping-cart", Step: 5},
	OriginOther:    {Text: "Outros", Color: "default", Icon: "ellipsis", Step: 6},
}

var unknown = Label{Text: "Desconhecido", Color: "default", Icon: "question"}

// Label returns the rendering of s, or a neutral label for unknown values.
func (s OrderStatus) Label() Label {
	if l, ok := orderLabels[s]; ok {
		return l
	}
	return unknown
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderLabels[s]
	return ok
}

// AllowsShipping reports whether shipping details may be edited in this stage.
func (s OrderStatus) AllowsShipping() bool {
	return s == OrderShipping
}

func (s OrderStatus) String() string { return string(s) }

// Label returns the rendering of s, or a neutral label for unknown values.
func (s PaymentStatus) Label() Label {
	if l, ok := paymentLabels[s]; ok {
		return l
	}
	return unknown
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	_, ok := paymentLabels[s]
	return ok
}

func (s PaymentStatus) String() string { return string(s) }

// Label returns the rendering of o, or a neutral label for unknown values.
func (o BannerOrigin) Label() Label {
	if l, ok := originLabels[o]; ok {
		return l
	}
	return unknown
}

// Valid reports whether o is a known banner origin.
func (o BannerOrigin) Valid() bool {
	_, ok := originLabels[o]
	return ok
}

func (o BannerOrigin) String() string { return string(o) }

// ParseOrderStatus validates raw input against the known order statuses.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// ParsePaymentStatus validates raw input against the known payment statuses.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	s := PaymentStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
	return s, nil
}

// ParseBannerOrigin validates raw input against the known banner origins.
func ParseBannerOrigin(raw string) (BannerOrigin, error) {
	o := BannerOrigin(raw)
	if !o.Valid() {
		return "", fmt.Errorf("unknown banner origin %q", raw)
	}
	return o, nil
}

// Option is a selectable value with its display text.
type Option struct {
	Value string
	Text  string
}

// OrderStatuses lists order statuses in fulfilment order, numbered for
// selection lists ("1 - Pagamento").
func OrderStatuses() []Option {
	values := []OrderStatus{OrderPayment, OrderDesign, OrderProduction, OrderPacking, OrderShipping, OrderFinish}
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		l := v.Label()
		opts = append(opts, Option{Value: string(v), Text: strconv.Itoa(l.Step) + " - " + l.Text})
	}
	return opts
}

// PaymentStatuses lists payment statuses in display order.
func PaymentStatuses() []Option {
	values := []PaymentStatus{PaymentWaiting, PaymentPaidOut, PaymentRefused, PaymentCancel}
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Value: string(v), Text: v.Label().Text})
	}
	return opts
}

// BannerOrigins lists banner origins in display order.
func BannerOrigins() []Option {
	values := []BannerOrigin{OriginIndex, OriginProducts, OriginProduct, OriginCatalog, OriginCart, OriginOther}
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Value: string(v), Text: v.Label().Text})
	}
	return opts
}
