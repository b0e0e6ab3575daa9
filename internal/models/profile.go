package models

import "strings"

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// IsComplete reports whether every address line is filled in.
func (a Address) IsComplete() bool {
	for _, v := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	IsPrimary    bool   `json:"is_primary"`
}

type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
	SwiftCode     string `json:"swift_code"`
}

type Preferences struct {
	Language string `json:"language"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`
}

// ProfileData is the flat profile record edited by the onboarding wizard and
// the profile editor. Zero values mean "not provided".
type ProfileData struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`

	WorkEmail      string `json:"work_email"`
	PersonalEmail  string `json:"personal_email"`
	PersonalMobile string `json:"personal_mobile"`
	WorkPhone      string `json:"work_phone"`

	PresentAddress   Address `json:"present_address"`
	PermanentAddress Address `json:"permanent_address"`

	// GovernmentIDs is keyed by registry field name, e.g. "pan".
	GovernmentIDs map[string]string `json:"government_ids"`

	// EmploymentCountries drives which government-ID fields apply.
	EmploymentCountries []string `json:"employment_countries"`

	Bank        BankDetails        `json:"bank"`
	Preferences Preferences        `json:"preferences"`
	Emergency   []EmergencyContact `json:"emergency_contacts"`
}

// NewProfileData returns an empty profile with its collections allocated.
func NewProfileData() ProfileData {
	return ProfileData{
		GovernmentIDs:       map[string]string{},
		EmploymentCountries: []string{},
		Emergency:           []EmergencyContact{},
	}
}
