package countryfields

import (
	"fmt"
	"regexp"

	"github.com/cradoe/peoplepay/assets"
	"gopkg.in/yaml.v3"
)

// DefaultCountry is the registry entry served for unknown country codes.
const DefaultCountry = "DEFAULT"

const registryPath = "config/government_id_fields.yaml"

type ValidationRule struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Message string `yaml:"message" json:"message,omitempty"`
}

// GovernmentIDField describes one country-specific identification input.
// Name is unique within a country's field set.
type GovernmentIDField struct {
	Name        string          `yaml:"name" json:"name"`
	Label       string          `yaml:"label" json:"label"`
	Placeholder string          `yaml:"placeholder" json:"placeholder"`
	Required    bool            `yaml:"required" json:"required"`
	Validation  *ValidationRule `yaml:"validation" json:"validation,omitempty"`
	HelperText  string          `yaml:"helper_text" json:"helper_text,omitempty"`
}

type registryDocument struct {
	Countries map[string][]GovernmentIDField `yaml:"countries"`
}

type registry struct {
	countries map[string][]GovernmentIDField
	patterns  map[string]*regexp.Regexp
}

var defaultRegistry = mustLoadRegistry()

func mustLoadRegistry() *registry {
	data, err := assets.EmbeddedFiles.ReadFile(registryPath)
	if err != nil {
		panic(fmt.Sprintf("countryfields: reading %s: %v", registryPath, err))
	}

	reg, err := parseRegistry(data)
	if err != nil {
		panic(fmt.Sprintf("countryfields: %v", err))
	}

	return reg
}

func parseRegistry(data []byte) (*registry, error) {
	var doc registryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding registry: %w", err)
	}

	if _, ok := doc.Countries[DefaultCountry]; !ok {
		return nil, fmt.Errorf("registry has no %s entry", DefaultCountry)
	}

	reg := &registry{
		countries: doc.Countries,
		patterns:  make(map[string]*regexp.Regexp),
	}

	for code, fields := range doc.Countries {
		seen := make(map[string]bool, len(fields))
		for _, field := range fields {
			if field.Name == "" {
				return nil, fmt.Errorf("country %s: field without a name", code)
			}
			if seen[field.Name] {
				return nil, fmt.Errorf("country %s: duplicate field %q", code, field.Name)
			}
			seen[field.Name] = true

			if field.Validation == nil || field.Validation.Pattern == "" {
				continue
			}
			if _, ok := reg.patterns[field.Validation.Pattern]; ok {
				continue
			}
			rx, err := regexp.Compile(field.Validation.Pattern)
			if err != nil {
				return nil, fmt.Errorf("country %s field %s: %w", code, field.Name, err)
			}
			reg.patterns[field.Validation.Pattern] = rx
		}
	}

	return reg, nil
}

func (reg *registry) fields(countryCode string) []GovernmentIDField {
	fields, ok := reg.countries[countryCode]
	if !ok {
		fields = reg.countries[DefaultCountry]
	}

	return cloneFields(fields)
}

func (reg *registry) mergedFields(countryCodes []string) []GovernmentIDField {
	merged := []GovernmentIDField{}
	seen := make(map[string]bool)

	for _, code := range countryCodes {
		for _, field := range reg.fields(code) {
			if seen[field.Name] {
				continue
			}
			seen[field.Name] = true
			merged = append(merged, field)
		}
	}

	return merged
}

// pattern returns the compiled expression for p. Patterns outside the
// registry are compiled on demand and not retained.
func (reg *registry) pattern(p string) (*regexp.Regexp, error) {
	if rx, ok := reg.patterns[p]; ok {
		return rx, nil
	}

	return regexp.Compile(p)
}

func (reg *registry) countryCodes() []string {
	codes := make([]string, 0, len(reg.countries))
	for code := range reg.countries {
		if code == DefaultCountry {
			continue
		}
		codes = append(codes, code)
	}

	return codes
}

func cloneFields(fields []GovernmentIDField) []GovernmentIDField {
	out := make([]GovernmentIDField, len(fields))
	for i, field := range fields {
		out[i] = field
		if field.Validation != nil {
			rule := *field.Validation
			out[i].Validation = &rule
		}
	}

	return out
}
