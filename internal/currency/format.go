package currency

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	rgxNumeric    = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
	rgxNonNumeric = regexp.MustCompile(`[^\d.\-]`)
	spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ")
)

type FormatOptions struct {
	HideSymbol bool
	ShowCode   bool
	// Locale controls digit grouping; the zero value formats as English.
	Locale language.Tag
}

// FormatCurrency renders amount with grouping separators and exactly
// DecimalPlaces fraction digits, e.g. "-$1,234.50" or "₹1,000.00 INR".
func FormatCurrency(amount float64, c Currency, opts FormatOptions) string {
	tag := opts.Locale
	if tag.IsRoot() {
		tag = language.English
	}

	rounded := toDecimal(amount).Round(places(c.DecimalPlaces))
	negative := rounded.IsNegative()
	if negative {
		rounded = rounded.Neg()
	}

	p := message.NewPrinter(tag)
	body := p.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(int(places(c.DecimalPlaces)))))

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	if !opts.HideSymbol {
		b.WriteString(c.Symbol)
	}
	b.WriteString(body)
	if opts.ShowCode && c.Code != "" {
		b.WriteString(" ")
		b.WriteString(c.Code)
	}

	return b.String()
}

// separators are the grouping and decimal symbols of one locale, with the
// pattern an amount written in that locale must match.
type separators struct {
	group   string
	decimal string
	pattern *regexp.Regexp
}

var (
	englishSeparators = newSeparators(",", ".")
	separatorCache    sync.Map
)

// newSeparators accepts ungrouped digits, thousands grouping and Indian
// lakh grouping. Any other placement of the group symbol is rejected.
func newSeparators(group, point string) *separators {
	g := regexp.QuoteMeta(group)
	d := regexp.QuoteMeta(point)
	integer := `(?:\d+|\d{1,3}(?:` + g + `\d{3})+|\d{1,2}(?:` + g + `\d{2})+` + g + `\d{3})`

	return &separators{
		group:   group,
		decimal: point,
		pattern: regexp.MustCompile(`^[+-]?(?:` + integer + `(?:` + d + `\d*)?|` + d + `\d+)$`),
	}
}

func separatorsFor(tag language.Tag) *separators {
	if tag.IsRoot() {
		return englishSeparators
	}

	key := tag.String()
	if cached, ok := separatorCache.Load(key); ok {
		return cached.(*separators)
	}

	sep := deriveSeparators(tag)
	separatorCache.Store(key, sep)
	return sep
}

// deriveSeparators reads the symbols off a sample printed for tag. Locales
// that do not print ASCII digits fall back to English.
func deriveSeparators(tag language.Tag) *separators {
	sample := spaceReplacer.Replace(message.NewPrinter(tag).Sprint(number.Decimal(1234567.5, number.Scale(1))))

	var (
		runs    []string
		digits  strings.Builder
		current strings.Builder
	)
	for _, r := range sample {
		if r >= '0' && r <= '9' {
			if current.Len() > 0 {
				runs = append(runs, current.String())
				current.Reset()
			}
			digits.WriteRune(r)
			continue
		}
		current.WriteRune(r)
	}

	if digits.String() != "12345675" || current.Len() > 0 || len(runs) == 0 {
		return englishSeparators
	}

	point := runs[len(runs)-1]
	if len(runs) == 1 {
		return newSeparators("", point)
	}

	group := runs[0]
	for _, run := range runs[:len(runs)-1] {
		if run != group {
			return englishSeparators
		}
	}
	if group == point {
		return englishSeparators
	}

	return newSeparators(group, point)
}

// stripMark removes a currency symbol or code from s. A mark ending in a
// letter also takes an abbreviation dot with it, so "Rs.100" reads as 100.
func stripMark(s, mark string) string {
	if mark == "" {
		return s
	}
	if last, _ := utf8.DecodeLastRuneInString(mark); unicode.IsLetter(last) {
		s = strings.ReplaceAll(s, mark+".", "")
	}
	return strings.ReplaceAll(s, mark, "")
}

func cleanAmount(s string, c Currency) string {
	cleaned := stripMark(s, c.Symbol)
	cleaned = stripMark(cleaned, c.Code)

	return strings.TrimSpace(spaceReplacer.Replace(cleaned))
}

// parseAmount returns the amount and its canonical form, with the group
// symbols removed and "." as the decimal point.
func parseAmount(s string, c Currency, tag language.Tag) (decimal.Decimal, string, bool) {
	sep := separatorsFor(tag)

	cleaned := cleanAmount(s, c)
	if !sep.pattern.MatchString(cleaned) {
		return decimal.Zero, cleaned, false
	}

	canonical := cleaned
	if sep.group != "" {
		canonical = strings.ReplaceAll(canonical, sep.group, "")
	}
	canonical = strings.Replace(canonical, sep.decimal, ".", 1)

	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero, canonical, false
	}

	return d, canonical, true
}

// ParseCurrency reverses FormatCurrency for English-formatted input.
// Unparseable input yields 0.
func ParseCurrency(s string, c Currency) float64 {
	return ParseCurrencyLocale(s, c, language.Und)
}

// ParseCurrencyLocale reverses FormatCurrency for a string formatted with
// the given locale. Separators that do not follow the locale's grouping,
// such as "1.234,50" read as English, yield 0.
func ParseCurrencyLocale(s string, c Currency, tag language.Tag) float64 {
	d, _, ok := parseAmount(s, c, tag)
	if !ok {
		return 0
	}
	return d.InexactFloat64()
}

type AmountOptions struct {
	Min           *float64
	Max           *float64
	AllowNegative bool
	// Locale is the locale value was typed in; the zero value reads English.
	Locale language.Tag
}

type AmountResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateCurrencyAmount checks user input in order: numeric, sign, bounds,
// then precision.
func ValidateCurrencyAmount(value string, c Currency, opts AmountOptions) AmountResult {
	d, canonical, ok := parseAmount(value, c, opts.Locale)
	if !ok {
		return AmountResult{Error: "Please enter a valid amount"}
	}

	if d.IsNegative() && !opts.AllowNegative {
		return AmountResult{Error: "Amount cannot be negative"}
	}

	if opts.Min != nil && d.LessThan(toDecimal(*opts.Min)) {
		return AmountResult{Error: fmt.Sprintf("Amount must be at least %s", FormatCurrency(*opts.Min, c, FormatOptions{Locale: opts.Locale}))}
	}

	if opts.Max != nil && d.GreaterThan(toDecimal(*opts.Max)) {
		return AmountResult{Error: fmt.Sprintf("Amount cannot exceed %s", FormatCurrency(*opts.Max, c, FormatOptions{Locale: opts.Locale}))}
	}

	if fractionDigits(canonical) > int(places(c.DecimalPlaces)) {
		if c.DecimalPlaces <= 0 {
			return AmountResult{Error: "Amount must be a whole number"}
		}
		return AmountResult{Error: fmt.Sprintf("Amount cannot have more than %d decimal places", c.DecimalPlaces)}
	}

	return AmountResult{Valid: true}
}

func fractionDigits(s string) int {
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	return len(strings.TrimRight(s[idx+1:], "0"))
}

// NormalizeCurrencyAmount accepts a number or a formatted string, strips
// any symbols and separators, and rounds to decimalPlaces. Anything it
// cannot read, NaN included, becomes 0.
func NormalizeCurrencyAmount(value any, decimalPlaces int) float64 {
	var amount float64

	switch v := value.(type) {
	case float64:
		amount = v
	case float32:
		amount = float64(v)
	case int:
		amount = float64(v)
	case int32:
		amount = float64(v)
	case int64:
		amount = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		amount = f
	case string:
		cleaned := v
		for _, mark := range currencyMarks {
			cleaned = stripMark(cleaned, mark)
		}
		cleaned = rgxNonNumeric.ReplaceAllString(cleaned, "")
		if !rgxNumeric.MatchString(cleaned) {
			return 0
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		amount = f
	default:
		return 0
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}

	return RoundCurrency(amount, decimalPlaces)
}
