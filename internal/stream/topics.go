package stream

import (
	"time"

	"github.com/cradoe/peoplepay/internal/models"
)

const (
	// ProfileUpdatedTopic carries a profile snapshot after every save.
	ProfileUpdatedTopic = "profile.updated"

	// OnboardingCompletedTopic is emitted once, when a profile first
	// satisfies every onboarding group.
	OnboardingCompletedTopic = "onboarding.completed"

	// ExchangeRateUpdatedTopic is emitted when a new rate row is stored.
	ExchangeRateUpdatedTopic = "exchange_rate.updated"
)

type ProfileUpdated struct {
	Profile models.ProfileData `json:"profile"`
	// WasOnboarded is the completion state before this save.
	WasOnboarded bool `json:"was_onboarded"`
}

type OnboardingCompleted struct {
	UserID      string    `json:"user_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Countries   []string  `json:"employment_countries"`
	CompletedAt time.Time `json:"completed_at"`
}

type ExchangeRateUpdated struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}
