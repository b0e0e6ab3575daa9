package funcs

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/cradoe/peoplepay/internal/currency"
)

var TemplateFuncs = template.FuncMap{
	// Time functions
	"now":        time.Now,
	"formatTime": formatTime,

	// String functions
	"uppercase": strings.ToUpper,
	"lowercase": strings.ToLower,
	"join":      strings.Join,

	// Money functions
	"formatMoney":    formatMoney,
	"currencySymbol": currency.GetCurrencySymbol,

	// Slice functions
	"slice": func(values ...any) []any { return values },
}

func formatTime(format string, t time.Time) string {
	return t.Format(format)
}

// formatMoney renders amount in the given currency, falling back to the
// plain amount with the code appended for unknown codes.
func formatMoney(amount float64, code string) string {
	c, ok := currency.Lookup(code)
	if !ok {
		return fmt.Sprintf("%.2f %s", currency.RoundCurrency(amount, 2), code)
	}
	return currency.FormatCurrency(amount, c, currency.FormatOptions{})
}
