package profile

import "strings"

type Mode string

const (
	ModeOnboarding Mode = "onboarding"
	ModeFull       Mode = "full"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeOnboarding:
		return ModeOnboarding, true
	case ModeFull, "":
		return ModeFull, true
	}
	return "", false
}

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleEmployee, "":
		return RoleEmployee, true
	case RoleHR:
		return RoleHR, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

const (
	TabPersonal      = "personal"
	TabContact       = "contact"
	TabAddress       = "address"
	TabGovernmentIDs = "government_ids"
	TabEmergency     = "emergency_contacts"
	TabBank          = "bank"
	TabEmployment    = "employment"
	TabPreferences   = "preferences"
	TabCompensation  = "compensation"
)

type Tab struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	// Editable is false for tabs shown read-only to the current role.
	Editable bool `json:"editable"`
}

// TabsManager decides which profile sections are shown. Government IDs
// depend on employment countries, so they only appear once the profile has
// an employment record.
type TabsManager struct {
	Mode          Mode
	Role          Role
	HasEmployment bool
}

func NewTabsManager(mode Mode, role Role, hasEmployment bool) *TabsManager {
	return &TabsManager{Mode: mode, Role: role, HasEmployment: hasEmployment}
}

func (m *TabsManager) privileged() bool {
	return m.Role == RoleHR || m.Role == RoleAdmin
}

func (m *TabsManager) baseTabs() []Tab {
	tabs := []Tab{
		{Key: TabPersonal, Label: "Personal Information", Editable: true},
		{Key: TabContact, Label: "Contact Details", Editable: true},
		{Key: TabAddress, Label: "Address", Editable: true},
	}

	if m.HasEmployment {
		tabs = append(tabs, Tab{Key: TabGovernmentIDs, Label: "Government IDs", Editable: true})
	}

	tabs = append(tabs, Tab{Key: TabEmergency, Label: "Emergency Contacts", Editable: true})

	if m.Mode == ModeOnboarding {
		return tabs
	}

	tabs = append(tabs, Tab{Key: TabBank, Label: "Bank Details", Editable: true})

	if m.HasEmployment || m.privileged() {
		tabs = append(tabs, Tab{Key: TabEmployment, Label: "Employment", Editable: m.privileged()})
	}
	if m.HasEmployment && m.privileged() {
		tabs = append(tabs, Tab{Key: TabCompensation, Label: "Compensation", Editable: m.Role == RoleAdmin})
	}

	tabs = append(tabs, Tab{Key: TabPreferences, Label: "Preferences", Editable: true})

	return tabs
}

// Tabs returns the visible tabs followed by any extra tabs whose key is not
// already present. Earlier entries win on duplicate keys.
func (m *TabsManager) Tabs(extra ...Tab) []Tab {
	return MergeTabs(m.baseTabs(), extra)
}

func MergeTabs(groups ...[]Tab) []Tab {
	seen := make(map[string]struct{})
	merged := []Tab{}

	for _, group := range groups {
		for _, t := range group {
			if _, ok := seen[t.Key]; ok {
				continue
			}
			seen[t.Key] = struct{}{}
			merged = append(merged, t)
		}
	}

	return merged
}
