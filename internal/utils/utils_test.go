package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", FormatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,99", FormatMoney(decimal.RequireFromString("0.99")))
	assert.Equal(t, "R$ 89,90", FormatMoney(decimal.RequireFromString("89.9")))
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney("89.90")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("89.9")))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "19 de outubro de 2026", FormatDate(d))
	assert.Equal(t, "19/10/2026 10:00", FormatDateTime(d))
	assert.Equal(t, "1 de março de 2024", FormatDate(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

type namedInput struct {
	Name   string `validate:"required"`
	Origin string `validate:"required,oneof=index cart"`
}

func TestValidationMessages(t *testing.T) {
	err := ValidateStruct(namedInput{Origin: "nowhere"})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "Digite um nome")
	assert.Contains(t, msg, "Origin deve ser um de: index cart.")

	assert.NoError(t, ValidateStruct(namedInput{Name: "Camisetas", Origin: "cart"}))
}

type pricedInput struct {
	Price decimal.Decimal `validate:"gtzero"`
	Stock int           `validate:"gtzero"`
}

func TestGreaterThanZero(t *testing.T) {
	assert.NoError(t, ValidateStruct(pricedInput{Price: decimal.RequireFromString("0.01"), Stock: 1}))

	for _, price := range []string{"0", "-89.90"} {
		err := ValidateStruct(pricedInput{Price: decimal.RequireFromString(price), Stock: 1})
		require.Error(t, err, price)
		assert.Equal(t, "Informe um preço maior que zero", ValidationMessage(err))
	}

	err := ValidateStruct(pricedInput{Price: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Equal(t, "Stock deve ser maior que zero.", ValidationMessage(err))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "admin-1", time.Minute)
	require.NoError(t, err)

	id, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", id)

	_, err = ParseToken("other", token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("admin")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "admin"))
	assert.False(t, CheckPassword(hash, "nope"))
	assert.False(t, CheckPassword("", "admin"))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}
