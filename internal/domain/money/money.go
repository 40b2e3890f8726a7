// Package money converts decimal totals into gateway minor units.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {}, "KRW": {}, "MGA": {},
	"PYG": {}, "RWF": {}, "UGX": {}, "VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// Exponent returns the number of minor-unit digits for an ISO currency.
func Exponent(currency string) int32 {
	if _, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]; ok {
		return 0
	}
	return 2
}

// ToMinorUnits rounds half up to the nearest minor unit.
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	return amount.Shift(Exponent(currency)).Round(0).IntPart()
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(units int64, currency string) decimal.Decimal {
	return decimal.New(units, -Exponent(currency))
}

// Round2 rounds a display amount to two decimals.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
