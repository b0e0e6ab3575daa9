package countryfields

import (
	"fmt"
	"sort"
	"strings"
)

type FieldResult struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// GetCountryFields returns the government ID fields for countryCode in
// display order. Codes are matched exactly; anything unknown gets the
// DEFAULT fields.
func GetCountryFields(countryCode string) []GovernmentIDField {
	return defaultRegistry.fields(countryCode)
}

// GetMergedCountryFields concatenates the fields of each country in order,
// skipping names already contributed by an earlier country. The first
// country to define a name wins.
func GetMergedCountryFields(countryCodes []string) []GovernmentIDField {
	return defaultRegistry.mergedFields(countryCodes)
}

// SupportedCountries lists the codes with their own field set, sorted.
func SupportedCountries() []string {
	codes := defaultRegistry.countryCodes()
	sort.Strings(codes)
	return codes
}

func ValidateField(field GovernmentIDField, value string) FieldResult {
	result := FieldResult{Field: field.Name, Valid: true}

	if strings.TrimSpace(value) == "" {
		if field.Required {
			result.Valid = false
			result.Message = fmt.Sprintf("%s is required", field.Label)
		}
		return result
	}

	if field.Validation == nil || field.Validation.Pattern == "" {
		return result
	}

	rx, err := defaultRegistry.pattern(field.Validation.Pattern)
	if err != nil {
		// an unusable pattern cannot reject input
		return result
	}

	if !rx.MatchString(value) {
		result.Valid = false
		result.Message = field.Validation.Message
		if result.Message == "" {
			result.Message = fmt.Sprintf("Invalid %s format", field.Label)
		}
	}

	return result
}

// ValidateFields checks values against every field and returns the failure
// message for each invalid field name. An empty map means all passed.
func ValidateFields(fields []GovernmentIDField, values map[string]string) map[string]string {
	errs := make(map[string]string)

	for _, field := range fields {
		result := ValidateField(field, values[field.Name])
		if !result.Valid {
			errs[field.Name] = result.Message
		}
	}

	return errs
}
