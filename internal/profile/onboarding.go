package profile

import (
	"strings"

	"github.com/cradoe/peoplepay/internal/models"
)

const (
	GroupCore      = "core"
	GroupPersonal  = "personal"
	GroupAddress   = "address"
	GroupEmergency = "emergency_contacts"
)

// Progress reports which onboarding groups are satisfied. Missing keeps the
// wizard order so the first entry is the step to resume at.
type Progress struct {
	Core      bool     `json:"core"`
	Personal  bool     `json:"personal"`
	Address   bool     `json:"address"`
	Emergency bool     `json:"emergency_contacts"`
	Complete  bool     `json:"complete"`
	Missing   []string `json:"missing"`
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func OnboardingProgress(p models.ProfileData) Progress {
	progress := Progress{
		Core:      filled(p.FirstName, p.LastName, p.DateOfBirth),
		Personal:  filled(p.PersonalMobile, p.PersonalEmail),
		Address:   p.PresentAddress.IsComplete(),
		Emergency: len(p.Emergency) > 0,
		Missing:   []string{},
	}

	for _, g := range []struct {
		name string
		ok   bool
	}{
		{GroupCore, progress.Core},
		{GroupPersonal, progress.Personal},
		{GroupAddress, progress.Address},
		{GroupEmergency, progress.Emergency},
	} {
		if !g.ok {
			progress.Missing = append(progress.Missing, g.name)
		}
	}

	progress.Complete = len(progress.Missing) == 0
	return progress
}

// ValidateOnboardingCompletion is true once every onboarding group is filled.
// Field formats are not checked here; see validator.ValidateProfileData.
func ValidateOnboardingCompletion(p models.ProfileData) bool {
	return OnboardingProgress(p).Complete
}
