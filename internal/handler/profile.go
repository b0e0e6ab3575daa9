package handler

import (
	"net/http"

	"github.com/cradoe/peoplepay/internal/errHandler"
	"github.com/cradoe/peoplepay/internal/helper"
	"github.com/cradoe/peoplepay/internal/models"
	"github.com/cradoe/peoplepay/internal/profile"
	"github.com/cradoe/peoplepay/internal/request"
	"github.com/cradoe/peoplepay/internal/response"
	"github.com/cradoe/peoplepay/internal/stream"
	"github.com/cradoe/peoplepay/internal/validator"
)

type TabsResponseData struct {
	Mode profile.Mode  `json:"mode"`
	Role profile.Role  `json:"role"`
	Tabs []profile.Tab `json:"tabs"`
}

type ProfileHandler struct {
	Publisher stream.Publisher
	Helper    *helper.HelperRepository

	ErrHandler *errHandler.ErrorRepository
}

func NewProfileHandler(handler *ProfileHandler) *ProfileHandler {
	return &ProfileHandler{
		Publisher:  handler.Publisher,
		Helper:     handler.Helper,
		ErrHandler: handler.ErrHandler,
	}
}

// HandleValidateProfile checks the fields present on a profile. The context
// query is profile (the default) or onboarding; with onboarding the stricter
// age rule applies and required government IDs must be present.
func (h *ProfileHandler) HandleValidateProfile(w http.ResponseWriter, r *http.Request) {
	p := models.NewProfileData()

	err := request.DecodeJSON(w, r, &p)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	validationContext := r.URL.Query().Get("context")
	if !validator.In(validationContext, "", "profile", "onboarding") {
		h.ErrHandler.FailedValidation(w, r, map[string]string{"context": "Context must be profile or onboarding"})
		return
	}

	opts := validator.ProfileOptions{}
	if validationContext == "onboarding" {
		opts.AgeRule = validator.OnboardingAgeRule
		opts.EnforceRequiredIDs = true
	}

	result := validator.ValidateProfileData(p, opts)

	message := "Profile is valid"
	if !result.Valid {
		message = "Profile has validation errors"
	}

	err = response.JSONOkResponse(w, result, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ProfileHandler) HandleOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	p := models.NewProfileData()

	err := request.DecodeJSON(w, r, &p)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	progress := profile.OnboardingProgress(p)

	message := "Onboarding is incomplete"
	if progress.Complete {
		message = "Onboarding is complete"
	}

	err = response.JSONOkResponse(w, progress, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *ProfileHandler) HandleTabs(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Mode          string              `json:"mode"`
		Role          string              `json:"role"`
		HasEmployment bool                `json:"has_employment"`
		ExtraTabs     []profile.Tab       `json:"extra_tabs"`
		Validator     validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	mode, modeOK := profile.ParseMode(input.Mode)
	role, roleOK := profile.ParseRole(input.Role)

	input.Validator.CheckField(modeOK, "mode", "Mode must be onboarding or full")
	input.Validator.CheckField(roleOK, "role", "Role must be employee, hr or admin")
	for _, tab := range input.ExtraTabs {
		input.Validator.CheckField(validator.NotBlank(tab.Key), "extra_tabs", "Every extra tab needs a key")
	}

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	manager := profile.NewTabsManager(mode, role, input.HasEmployment)

	data := &TabsResponseData{
		Mode: mode,
		Role: role,
		Tabs: manager.Tabs(input.ExtraTabs...),
	}

	err = response.JSONOkResponse(w, data, "Data retrieved successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleProfileSaved is called by the profile store after a save. The
// snapshot is published for the onboarding worker; the request does not
// wait for delivery.
func (h *ProfileHandler) HandleProfileSaved(w http.ResponseWriter, r *http.Request) {
	input := stream.ProfileUpdated{Profile: models.NewProfileData()}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	v := validator.Validator{}
	v.CheckField(validator.NotBlank(input.Profile.UserID), "profile.user_id", "User ID is required")
	if v.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, v.FieldErrors)
		return
	}

	h.Helper.BackgroundTask(r, func() error {
		event, err := stream.NewEvent(stream.ProfileUpdatedTopic, input.Profile.UserID, input)
		if err != nil {
			return err
		}
		return h.Publisher.Publish(stream.ProfileUpdatedTopic, event)
	})

	err = response.JSONAcceptedResponse(w, nil, "Profile update accepted")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
