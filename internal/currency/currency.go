// Package currency holds the money helpers used across payroll: formatting,
// parsing, validation and rounding-consistent arithmetic. Amounts are float64
// at the edges; every operation goes through shopspring/decimal internally
// and rounds half away from zero at the currency's decimal places.
package currency

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

type Currency struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int    `json:"decimal_places"`
}

var knownCurrencies = map[string]Currency{
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$", DecimalPlaces: 2},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€", DecimalPlaces: 2},
	"GBP": {Code: "GBP", Name: "British Pound", Symbol: "£", DecimalPlaces: 2},
	"JPY": {Code: "JPY", Name: "Japanese Yen", Symbol: "¥", DecimalPlaces: 0},
	"INR": {Code: "INR", Name: "Indian Rupee", Symbol: "₹", DecimalPlaces: 2},
	"PHP": {Code: "PHP", Name: "Philippine Peso", Symbol: "₱", DecimalPlaces: 2},
	"AUD": {Code: "AUD", Name: "Australian Dollar", Symbol: "A$", DecimalPlaces: 2},
	"CAD": {Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", DecimalPlaces: 2},
	"CNY": {Code: "CNY", Name: "Chinese Yuan", Symbol: "CN¥", DecimalPlaces: 2},
	"SGD": {Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", DecimalPlaces: 2},
	"MYR": {Code: "MYR", Name: "Malaysian Ringgit", Symbol: "RM", DecimalPlaces: 2},
	"LKR": {Code: "LKR", Name: "Sri Lankan Rupee", Symbol: "Rs", DecimalPlaces: 2},
	"NZD": {Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", DecimalPlaces: 2},
	"CHF": {Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", DecimalPlaces: 2},
	"AED": {Code: "AED", Name: "UAE Dirham", Symbol: "AED", DecimalPlaces: 2},
}

// currencyMarks are every known symbol and code, longest first so "CN¥"
// goes before "¥".
var currencyMarks = func() []string {
	seen := make(map[string]bool)
	var marks []string
	for _, c := range knownCurrencies {
		for _, mark := range []string{c.Symbol, c.Code} {
			if mark != "" && !seen[mark] {
				seen[mark] = true
				marks = append(marks, mark)
			}
		}
	}
	slices.SortFunc(marks, func(a, b string) int {
		if n := cmp.Compare(len(b), len(a)); n != 0 {
			return n
		}
		return cmp.Compare(a, b)
	})
	return marks
}()

// Lookup returns the built-in definition for an ISO code. Codes are case
// sensitive.
func Lookup(code string) (Currency, bool) {
	c, ok := knownCurrencies[code]
	return c, ok
}

// All returns the built-in currencies ordered by code.
func All() []Currency {
	codes := slices.Sorted(maps.Keys(knownCurrencies))
	all := make([]Currency, len(codes))
	for i, code := range codes {
		all[i] = knownCurrencies[code]
	}
	return all
}

func IsValidCurrencyCode(code string) bool {
	_, ok := knownCurrencies[code]
	return ok
}

// GetCurrencySymbol falls back to the code itself for unknown currencies.
func GetCurrencySymbol(code string) string {
	if c, ok := knownCurrencies[code]; ok {
		return c.Symbol
	}
	return code
}

// GetCurrencyDisplayName falls back to the code itself for unknown currencies.
func GetCurrencyDisplayName(code string) string {
	if c, ok := knownCurrencies[code]; ok {
		return c.Name
	}
	return code
}

func toDecimal(amount float64) decimal.Decimal {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amount)
}

func places(decimalPlaces int) int32 {
	if decimalPlaces < 0 {
		return 0
	}
	return int32(decimalPlaces)
}

func roundDecimal(d decimal.Decimal, decimalPlaces int) float64 {
	return d.Round(places(decimalPlaces)).InexactFloat64()
}
