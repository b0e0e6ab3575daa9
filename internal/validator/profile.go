package validator

import (
	"fmt"
	"time"

	"github.com/cradoe/peoplepay/internal/countryfields"
	"github.com/cradoe/peoplepay/internal/models"
)

type ProfileOptions struct {
	// Now is the reference time for date-of-birth checks; zero means time.Now.
	Now time.Time
	// AgeRule defaults to DefaultAgeRule when left zero.
	AgeRule AgeRule
	// EnforceRequiredIDs also reports required government IDs that are
	// missing, not only the ones supplied in the wrong format.
	EnforceRequiredIDs bool
}

type ProfileResult struct {
	Valid        bool              `json:"valid"`
	Errors       map[string]string `json:"errors"`
	FieldResults []Result          `json:"field_results"`
}

type profileCheck struct {
	results []Result
	v       Validator
}

func (pc *profileCheck) add(field string, result Result) {
	result.Field = field
	pc.results = append(pc.results, result)
	pc.v.CheckField(result.Valid, field, result.Message)
}

// ValidateProfileData runs the field validators that apply to the values
// present on p and aggregates the outcome. Empty fields are skipped; the
// onboarding completeness check lives in the profile package.
func ValidateProfileData(p models.ProfileData, opts ProfileOptions) ProfileResult {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	rule := opts.AgeRule
	if rule == (AgeRule{}) {
		rule = DefaultAgeRule
	}

	pc := &profileCheck{}

	if NotBlank(p.WorkEmail) {
		pc.add("work_email", ValidateEmail(p.WorkEmail, true))
	}
	if NotBlank(p.PersonalEmail) {
		pc.add("personal_email", ValidateEmail(p.PersonalEmail, true))
	}
	if NotBlank(p.PersonalMobile) {
		pc.add("personal_mobile", ValidatePhone(p.PersonalMobile, true))
	}
	if NotBlank(p.WorkPhone) {
		pc.add("work_phone", ValidatePhone(p.WorkPhone, true))
	}
	if NotBlank(p.DateOfBirth) {
		pc.add("date_of_birth", ValidateDateOfBirth(p.DateOfBirth, true, rule, now))
	}
	if NotBlank(p.PresentAddress.PostalCode) {
		pc.add("present_address.postal_code", ValidatePostalCode(p.PresentAddress.PostalCode, p.PresentAddress.Country, true))
	}
	if NotBlank(p.PermanentAddress.PostalCode) {
		pc.add("permanent_address.postal_code", ValidatePostalCode(p.PermanentAddress.PostalCode, p.PermanentAddress.Country, true))
	}
	if NotBlank(p.Bank.AccountNumber) {
		pc.add("bank.account_number", ValidateBankAccount(p.Bank.AccountNumber, true))
	}
	if NotBlank(p.Bank.IBAN) {
		pc.add("bank.iban", ValidateIBAN(p.Bank.IBAN, true))
	}
	if NotBlank(p.Bank.SwiftCode) {
		pc.add("bank.swift_code", ValidateSWIFT(p.Bank.SwiftCode, true))
	}

	for i, contact := range p.Emergency {
		prefix := fmt.Sprintf("emergency_contacts[%d]", i)
		pc.add(prefix+".name", ValidateRequired("name", "Contact name", contact.Name))
		pc.add(prefix+".phone_number", ValidatePhone(contact.PhoneNumber, true))
	}

	if len(p.EmploymentCountries) > 0 {
		for _, field := range countryfields.GetMergedCountryFields(p.EmploymentCountries) {
			value := p.GovernmentIDs[field.Name]
			if !NotBlank(value) && !opts.EnforceRequiredIDs {
				continue
			}
			r := countryfields.ValidateField(field, value)
			pc.add("government_ids."+field.Name, Result{Valid: r.Valid, Message: r.Message})
		}
	}

	errs := pc.v.FieldErrors
	if errs == nil {
		errs = map[string]string{}
	}
	results := pc.results
	if results == nil {
		results = []Result{}
	}

	return ProfileResult{
		Valid:        !pc.v.HasErrors(),
		Errors:       errs,
		FieldResults: results,
	}
}
