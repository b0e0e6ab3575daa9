package currency

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoundCurrency rounds half away from zero: 100.125 becomes 100.13 and
// -100.125 becomes -100.13 at two places.
func RoundCurrency(amount float64, decimalPlaces int) float64 {
	return roundDecimal(toDecimal(amount), decimalPlaces)
}

func RoundToCurrency(amount float64, c Currency) float64 {
	return RoundCurrency(amount, c.DecimalPlaces)
}

func ConvertCurrency(amount, rate float64, decimalPlaces int) float64 {
	return roundDecimal(toDecimal(amount).Mul(toDecimal(rate)), decimalPlaces)
}

// ReverseRate derives the B→A rate from an A→B rate. Non-positive rates
// yield zero.
func ReverseRate(rate float64) float64 {
	r := toDecimal(rate)
	if !r.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(1).Div(r).InexactFloat64()
}

// FormatReverseRate renders 1/rate with six fixed decimals for rate
// inspection, independent of either currency's own precision.
func FormatReverseRate(rate float64) string {
	r := toDecimal(rate)
	if !r.IsPositive() {
		return decimal.Zero.StringFixed(6)
	}
	return decimal.NewFromInt(1).Div(r).StringFixed(6)
}

func CalculatePercentage(amount, percentage float64, decimalPlaces int) float64 {
	return roundDecimal(toDecimal(amount).Mul(toDecimal(percentage)).Div(hundred), decimalPlaces)
}

func CalculateTax(amount, taxRate float64, decimalPlaces int) float64 {
	return CalculatePercentage(amount, taxRate, decimalPlaces)
}

// CalculateNetAmount subtracts the rounded tax from amount.
func CalculateNetAmount(amount, taxRate float64, decimalPlaces int) float64 {
	tax := CalculateTax(amount, taxRate, decimalPlaces)
	return roundDecimal(toDecimal(amount).Sub(toDecimal(tax)), decimalPlaces)
}

func SumCurrencyAmounts(amounts []float64, decimalPlaces int) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(toDecimal(a))
	}
	return roundDecimal(total, decimalPlaces)
}

func SubtractCurrencyAmounts(a, b float64, decimalPlaces int) float64 {
	return roundDecimal(toDecimal(a).Sub(toDecimal(b)), decimalPlaces)
}

func MultiplyCurrencyAmount(amount, multiplier float64, decimalPlaces int) float64 {
	return roundDecimal(toDecimal(amount).Mul(toDecimal(multiplier)), decimalPlaces)
}

// DivideCurrencyAmount returns 0 when divisor is zero.
func DivideCurrencyAmount(amount, divisor float64, decimalPlaces int) float64 {
	d := toDecimal(divisor)
	if d.IsZero() {
		return 0
	}
	return roundDecimal(toDecimal(amount).Div(d), decimalPlaces)
}

// CompareCurrencyAmounts rounds both sides to the currency's precision first,
// so values that differ only past that precision compare equal.
func CompareCurrencyAmounts(a, b float64, c Currency) int {
	p := places(c.DecimalPlaces)
	return toDecimal(a).Round(p).Cmp(toDecimal(b).Round(p))
}
