package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cradoe/peoplepay/internal/profile"
	"github.com/cradoe/peoplepay/internal/stream"
	"github.com/cradoe/peoplepay/internal/validator"
)

func (wk *Worker) ProfileUpdatedWorker() {
	wk.consume("profile-updated", &stream.StreamConsumer{
		GroupId: profileUpdatedGroupID,
		Topic:   stream.ProfileUpdatedTopic,
	}, wk.handleProfileUpdated)
}

// handleProfileUpdated announces a profile the first time it becomes
// onboarding-complete. Saves of an already onboarded profile are ignored.
func (wk *Worker) handleProfileUpdated(_ context.Context, event *stream.Event) error {
	var payload stream.ProfileUpdated
	if err := event.DecodePayload(&payload); err != nil {
		return err
	}

	p := payload.Profile
	if payload.WasOnboarded {
		return nil
	}

	progress := profile.OnboardingProgress(p)
	if !progress.Complete {
		wk.Logger.Debug("onboarding incomplete", "user_id", p.UserID, "missing", progress.Missing)
		return nil
	}

	result := validator.ValidateProfileData(p, validator.ProfileOptions{AgeRule: validator.OnboardingAgeRule})
	if !result.Valid {
		wk.Logger.Info("onboarding complete but profile has invalid fields", "user_id", p.UserID, "errors", result.Errors)
		return nil
	}

	completed := stream.OnboardingCompleted{
		UserID:      p.UserID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Countries:   p.EmploymentCountries,
		CompletedAt: event.OccurredAt,
	}
	if completed.Countries == nil {
		completed.Countries = []string{}
	}

	out, err := stream.NewEvent(stream.OnboardingCompletedTopic, p.UserID, completed)
	if err != nil {
		return err
	}

	if err := wk.Publisher.Publish(stream.OnboardingCompletedTopic, out); err != nil {
		return fmt.Errorf("publish onboarding completed for %s: %w", p.UserID, err)
	}

	wk.Logger.Info("onboarding completed", "user_id", p.UserID, "event_id", out.ID)

	if wk.HREmail == "" || wk.Mailer == nil {
		return nil
	}

	data := map[string]any{
		"BaseURL":    wk.BaseURL,
		"UserID":     p.UserID,
		"FirstName":  p.FirstName,
		"LastName":   p.LastName,
		"Countries":  completed.Countries,
		"EventID":    out.ID,
		"OccurredAt": completed.CompletedAt.Format(time.RFC3339),
	}

	if err := wk.Mailer.Send(wk.HREmail, data, "onboarding-completed.tmpl"); err != nil {
		return fmt.Errorf("notify %s of onboarding for %s: %w", wk.HREmail, strings.TrimSpace(p.FirstName+" "+p.LastName), err)
	}

	return nil
}
