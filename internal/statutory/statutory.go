package statutory

import "sort"

// ComponentType tags a country-mandated payroll contribution or deduction.
type ComponentType string

const (
	EPF            ComponentType = "EPF"
	ESI            ComponentType = "ESI"
	PT             ComponentType = "PT"
	TDS            ComponentType = "TDS"
	SSS            ComponentType = "SSS"
	PhilHealth     ComponentType = "PHILHEALTH"
	PagIBIG        ComponentType = "PAGIBIG"
	Superannuation ComponentType = "SUPERANNUATION"
	EPFMY          ComponentType = "EPF_MY"
	SOCSO          ComponentType = "SOCSO"
	EIS            ComponentType = "EIS"
	CPF            ComponentType = "CPF"
	EPFLK          ComponentType = "EPF_LK"
	ETF            ComponentType = "ETF"
	FICA           ComponentType = "FICA"
	FUTA           ComponentType = "FUTA"
	NI             ComponentType = "NI"
)

var componentsByCountry = map[string][]ComponentType{
	"IN": {EPF, ESI, PT, TDS},
	"PH": {SSS, PhilHealth, PagIBIG},
	"AU": {Superannuation},
	"MY": {EPFMY, SOCSO, EIS},
	"SG": {CPF},
	"LK": {EPFLK, ETF},
	"US": {FICA, FUTA},
	"GB": {NI},
}

var componentLabels = map[ComponentType]string{
	EPF:            "Employees' Provident Fund",
	ESI:            "Employees' State Insurance",
	PT:             "Professional Tax",
	TDS:            "Tax Deducted at Source",
	SSS:            "Social Security System",
	PhilHealth:     "PhilHealth",
	PagIBIG:        "Pag-IBIG Fund",
	Superannuation: "Superannuation Guarantee",
	EPFMY:          "Employees Provident Fund (KWSP)",
	SOCSO:          "Social Security Organisation",
	EIS:            "Employment Insurance System",
	CPF:            "Central Provident Fund",
	EPFLK:          "Employees' Provident Fund (Sri Lanka)",
	ETF:            "Employees' Trust Fund",
	FICA:           "Federal Insurance Contributions Act",
	FUTA:           "Federal Unemployment Tax Act",
	NI:             "National Insurance",
}

// GetStatutoryComponentsForCountry returns the component types applicable to
// the country. The code is matched exactly; unknown codes get an empty list
// rather than a fallback.
func GetStatutoryComponentsForCountry(code string) []ComponentType {
	components, ok := componentsByCountry[code]
	if !ok {
		return []ComponentType{}
	}

	out := make([]ComponentType, len(components))
	copy(out, components)
	return out
}

func IsStatutoryComponentApplicable(code string, componentType ComponentType) bool {
	for _, c := range componentsByCountry[code] {
		if c == componentType {
			return true
		}
	}

	return false
}

// ComponentLabel returns the display name, or the raw tag when unknown.
func ComponentLabel(componentType ComponentType) string {
	if label, ok := componentLabels[componentType]; ok {
		return label
	}

	return string(componentType)
}

func SupportedCountries() []string {
	codes := make([]string, 0, len(componentsByCountry))
	for code := range componentsByCountry {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes
}
