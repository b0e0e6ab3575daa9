package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// Result is the outcome of a single field check. Validators never panic or
// return errors; a failure is Valid=false with a display message.
type Result struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// AgeRule bounds the age implied by a date of birth, in whole years.
type AgeRule struct {
	Min int
	Max int
}

var (
	// DefaultAgeRule is applied by the shared profile validator.
	DefaultAgeRule = AgeRule{Min: 16, Max: 100}
	// OnboardingAgeRule is the stricter bound used by the onboarding wizard.
	OnboardingAgeRule = AgeRule{Min: 18, Max: 100}
)

const minPhoneDigits = 7

var (
	rgxNonDigit    = regexp.MustCompile(`\D`)
	rgxBankAccount = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	rgxIBAN        = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{1,30}$`)
	rgxSWIFT       = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

var postalCodePatterns = map[string]*regexp.Regexp{
	"US": regexp.MustCompile(`^\d{5}(-\d{4})?$`),
	"UK": regexp.MustCompile(`(?i)^[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}$`),
	"GB": regexp.MustCompile(`(?i)^[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}$`),
	"CA": regexp.MustCompile(`(?i)^[A-Z]\d[A-Z][ -]?\d[A-Z]\d$`),
	"IN": regexp.MustCompile(`^\d{4,6}$`),
	"AU": regexp.MustCompile(`^\d{4,6}$`),
	"PH": regexp.MustCompile(`^\d{4,6}$`),
	"LK": regexp.MustCompile(`^\d{5}$`),
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func valid(field string) Result {
	return Result{Field: field, Valid: true}
}

func invalid(field, message string) Result {
	return Result{Field: field, Message: message}
}

func ValidateEmail(value string, required bool) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return invalid("email", "Email is required")
		}
		return valid("email")
	}

	if !IsEmail(value) {
		return invalid("email", "Please enter a valid email address")
	}

	return valid("email")
}

func ValidatePhone(value string, required bool) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return invalid("phone", "Phone number is required")
		}
		return valid("phone")
	}

	if !Matches(value, RgxPhoneNumber) {
		return invalid("phone", "Phone number can only contain digits, spaces, hyphens, plus signs and parentheses")
	}

	if len(rgxNonDigit.ReplaceAllString(value, "")) < minPhoneDigits {
		return invalid("phone", fmt.Sprintf("Phone number must contain at least %d digits", minPhoneDigits))
	}

	return valid("phone")
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// calendarDay keeps only t's date as it reads in t's own zone.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Age returns completed years between dob and now.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// ValidateDateOfBirth accepts YYYY-MM-DD or RFC 3339 dates. now is passed in
// so callers and tests control the reference day; both are compared as
// calendar dates, with now read in its own zone.
func ValidateDateOfBirth(value string, required bool, rule AgeRule, now time.Time) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return invalid("date_of_birth", "Date of birth is required")
		}
		return valid("date_of_birth")
	}

	dob, ok := parseDate(value)
	if !ok {
		return invalid("date_of_birth", "Please enter a valid date")
	}

	dob = calendarDay(dob)
	today := calendarDay(now)

	if dob.After(today) {
		return invalid("date_of_birth", "Date of birth cannot be in the future")
	}

	age := Age(dob, today)
	if age < rule.Min {
		return invalid("date_of_birth", fmt.Sprintf("Employee must be at least %d years old", rule.Min))
	}
	if age > rule.Max {
		return invalid("date_of_birth", fmt.Sprintf("Please enter a valid date of birth (age cannot exceed %d years)", rule.Max))
	}

	return valid("date_of_birth")
}

// ValidatePostalCode checks value against the country's pattern. Countries
// without a pattern accept any non-empty value.
func ValidatePostalCode(value, countryCode string, required bool) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return invalid("postal_code", "Postal code is required")
		}
		return valid("postal_code")
	}

	rx, ok := postalCodePatterns[strings.ToUpper(countryCode)]
	if !ok {
		return valid("postal_code")
	}

	if !rx.MatchString(value) {
		return invalid("postal_code", fmt.Sprintf("Please enter a valid postal code for %s", strings.ToUpper(countryCode)))
	}

	return valid("postal_code")
}

func ValidateBankAccount(value string, required bool) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return invalid("account_number", "Bank account number is required")
		}
		return valid("account_number")
	}

	if !Matches(value, rgxBankAccount) {
		return invalid("account_number", "Bank account number can only contain letters and numbers")
	}
	if !MinRunes(value, 4) {
		return invalid("account_number", "Bank account number must be at least 4 characters")
	}

	return valid("account_number")
}

// NormalizeIBAN strips spaces and upper-cases the value.
func NormalizeIBAN(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), ""))
}

func ValidateIBAN(value string, required bool) Result {
	iban := NormalizeIBAN(value)
	if iban == "" {
		if required {
			return invalid("iban", "IBAN is required")
		}
		return valid("iban")
	}

	if !Matches(iban, rgxIBAN) {
		return invalid("iban", "Please enter a valid IBAN")
	}

	return valid("iban")
}

func ValidateSWIFT(value string, required bool) Result {
	code := strings.ToUpper(strings.TrimSpace(value))
	if code == "" {
		if required {
			return invalid("swift_code", "SWIFT/BIC code is required")
		}
		return valid("swift_code")
	}

	if !Matches(code, rgxSWIFT) {
		return invalid("swift_code", "Please enter a valid SWIFT/BIC code")
	}

	return valid("swift_code")
}

// ValidateRequired rejects nil, nil pointers and blank strings.
func ValidateRequired(field, label string, value any) Result {
	if isBlank(value) {
		return invalid(field, fmt.Sprintf("%s is required", label))
	}
	return valid(field)
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}

	switch v := value.(type) {
	case string:
		return !NotBlank(v)
	case *string:
		return v == nil || !NotBlank(*v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}

	return false
}
