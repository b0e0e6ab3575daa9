package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tabKeys(tabs []Tab) []string {
	keys := make([]string, 0, len(tabs))
	for _, t := range tabs {
		keys = append(keys, t.Key)
	}
	return keys
}

func TestTabsManager(t *testing.T) {
	tests := []struct {
		name          string
		mode          Mode
		role          Role
		hasEmployment bool
		want          []string
	}{
		{
			name: "onboarding without employment",
			mode: ModeOnboarding, role: RoleEmployee,
			want: []string{TabPersonal, TabContact, TabAddress, TabEmergency},
		},
		{
			name: "onboarding with employment",
			mode: ModeOnboarding, role: RoleEmployee, hasEmployment: true,
			want: []string{TabPersonal, TabContact, TabAddress, TabGovernmentIDs, TabEmergency},
		},
		{
			name: "full employee without employment",
			mode: ModeFull, role: RoleEmployee,
			want: []string{TabPersonal, TabContact, TabAddress, TabEmergency, TabBank, TabPreferences},
		},
		{
			name: "full employee with employment",
			mode: ModeFull, role: RoleEmployee, hasEmployment: true,
			want: []string{TabPersonal, TabContact, TabAddress, TabGovernmentIDs, TabEmergency, TabBank, TabEmployment, TabPreferences},
		},
		{
			name: "full hr without employment",
			mode: ModeFull, role: RoleHR,
			want: []string{TabPersonal, TabContact, TabAddress, TabEmergency, TabBank, TabEmployment, TabPreferences},
		},
		{
			name: "full admin with employment",
			mode: ModeFull, role: RoleAdmin, hasEmployment: true,
			want: []string{TabPersonal, TabContact, TabAddress, TabGovernmentIDs, TabEmergency, TabBank, TabEmployment, TabCompensation, TabPreferences},
		},
		{
			name: "onboarding ignores role",
			mode: ModeOnboarding, role: RoleAdmin, hasEmployment: true,
			want: []string{TabPersonal, TabContact, TabAddress, TabGovernmentIDs, TabEmergency},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTabsManager(tt.mode, tt.role, tt.hasEmployment)
			assert.Equal(t, tt.want, tabKeys(m.Tabs()))
		})
	}
}

func TestTabsEditability(t *testing.T) {
	employee := NewTabsManager(ModeFull, RoleEmployee, true).Tabs()
	hr := NewTabsManager(ModeFull, RoleHR, true).Tabs()

	find := func(tabs []Tab, key string) Tab {
		for _, tab := range tabs {
			if tab.Key == key {
				return tab
			}
		}
		t.Fatalf("tab %q not found", key)
		return Tab{}
	}

	assert.False(t, find(employee, TabEmployment).Editable)
	assert.True(t, find(hr, TabEmployment).Editable)
	assert.False(t, find(hr, TabCompensation).Editable)
	assert.True(t, find(NewTabsManager(ModeFull, RoleAdmin, true).Tabs(), TabCompensation).Editable)
}

func TestTabsMergeExtraFirstWins(t *testing.T) {
	m := NewTabsManager(ModeOnboarding, RoleEmployee, false)

	tabs := m.Tabs(
		Tab{Key: TabPersonal, Label: "Overridden"},
		Tab{Key: "documents", Label: "Documents", Editable: true},
		Tab{Key: "documents", Label: "Second Documents"},
	)

	assert.Equal(t, []string{TabPersonal, TabContact, TabAddress, TabEmergency, "documents"}, tabKeys(tabs))
	assert.Equal(t, "Personal Information", tabs[0].Label)
	assert.Equal(t, "Documents", tabs[4].Label)
}

func TestMergeTabsIdempotent(t *testing.T) {
	a := []Tab{{Key: "a"}, {Key: "b"}}
	b := []Tab{{Key: "b", Label: "later"}, {Key: "c"}}

	assert.Equal(t, MergeTabs(a, b), MergeTabs(a, b, a))
	assert.Equal(t, []Tab{}, MergeTabs())
}

func TestParseModeAndRole(t *testing.T) {
	mode, ok := ParseMode("Onboarding")
	assert.True(t, ok)
	assert.Equal(t, ModeOnboarding, mode)

	mode, ok = ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, ModeFull, mode)

	_, ok = ParseMode("wizard")
	assert.False(t, ok)

	role, ok := ParseRole("HR")
	assert.True(t, ok)
	assert.Equal(t, RoleHR, role)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}
