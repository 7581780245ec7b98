package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusLabels(t *testing.T) {
	assert.Equal(t, "Em Produção", OrderProduction.Label().Text)
	assert.Equal(t, "car", OrderShipping.Label().Icon)
	assert.Equal(t, "Desconhecido", OrderStatus("lost").Label().Text)
	assert.False(t, OrderStatus("lost").Valid())
}

func TestPaymentStatusColors(t *testing.T) {
	assert.Equal(t, "error", PaymentCancel.Label().Color)
	assert.Equal(t, "success", PaymentPaidOut.Label().Color)
	assert.Equal(t, "default", PaymentRefused.Label().Color)
	assert.Equal(t, "warning", PaymentWaiting.Label().Color)
}

func TestOrderStatusOptionsAreNumbered(t *testing.T) {
	opts := OrderStatuses()
	require.Len(t, opts, 6)
	assert.Equal(t, Option{Value: "payment", Text: "1 - Pagamento"}, opts[0])
	assert.Equal(t, Option{Value: "finish", Text: "6 - Finalizado"}, opts[5])
}

func TestParse(t *testing.T) {
	s, err := ParseOrderStatus("packing")
	require.NoError(t, err)
	assert.Equal(t, OrderPacking, s)

	_, err = ParsePaymentStatus("paid")
	assert.Error(t, err)

	o, err := ParseBannerOrigin("cart")
	require.NoError(t, err)
	assert.Equal(t, OriginCart, o)
}

func TestAllowsShipping(t *testing.T) {
	assert.True(t, OrderShipping.AllowsShipping())
	assert.False(t, OrderPacking.AllowsShipping())
}
