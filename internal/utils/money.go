package utils

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var brl = accounting.Accounting{Symbol: "R$ ", Precision: 2, Thousand: ".", Decimal: ","}

// FormatMoney renders an amount in Brazilian reais, e.g. "R$ 1.234,50".
func FormatMoney(amount decimal.Decimal) string {
	return brl.FormatMoneyDecimal(amount)
}

// ParseMoney accepts both "1234.50" and "1.234,50" inputs.
func ParseMoney(raw string) (decimal.Decimal, error) {
	if d, err := decimal.NewFromString(raw); err == nil {
		return d, nil
	}
	return decimal.NewFromString(accounting.UnformatNumber(raw, 2, "BRL"))
}
