package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	PriceMaxDigits     = 12
	PriceDecimalPlaces = 6
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

var maxPrice = decimal.New(1, PriceMaxDigits-PriceDecimalPlaces)

// ValidatePrice checks that amount fits numeric(12, 6) and is not negative.
func ValidatePrice(amount decimal.Decimal) string {
	switch {
	case amount.IsNegative():
		return "Ensure this value is greater than or equal to 0."
	case !amount.Round(PriceDecimalPlaces).Equal(amount):
		return "Ensure that there are no more than 6 decimal places."
	case amount.GreaterThanOrEqual(maxPrice):
		return "Ensure that there are no more than 12 digits in total."
	}
	return ""
}
