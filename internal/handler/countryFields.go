package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cradoe/peoplepay/internal/countryfields"
	"github.com/cradoe/peoplepay/internal/errHandler"
	"github.com/cradoe/peoplepay/internal/repository"
	"github.com/cradoe/peoplepay/internal/request"
	"github.com/cradoe/peoplepay/internal/response"
	"github.com/cradoe/peoplepay/internal/validator"
)

type GovernmentIDFieldsResponseData struct {
	Countries []string                          `json:"countries"`
	Fields    []countryfields.GovernmentIDField `json:"fields"`
}

type GovernmentIDValidationResponseData struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

type CountryFieldsHandler struct {
	EmploymentRepo repository.EmploymentRepository

	ErrHandler *errHandler.ErrorRepository
}

func NewCountryFieldsHandler(handler *CountryFieldsHandler) *CountryFieldsHandler {
	return &CountryFieldsHandler{
		EmploymentRepo: handler.EmploymentRepo,
		ErrHandler:     handler.ErrHandler,
	}
}

// HandleCountryFields serves the government ID fields of a single country.
// Unknown codes get the default field set, never a 404.
func (h *CountryFieldsHandler) HandleCountryFields(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	data := &GovernmentIDFieldsResponseData{
		Countries: []string{code},
		Fields:    countryfields.GetCountryFields(code),
	}

	err := response.JSONOkResponse(w, data, "Data retrieved successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CountryFieldsHandler) HandleMergedFields(w http.ResponseWriter, r *http.Request) {
	countries := splitCodes(r.URL.Query().Get("countries"))
	if len(countries) == 0 {
		h.ErrHandler.BadRequest(w, r, errors.New("countries query parameter is required"))
		return
	}

	data := &GovernmentIDFieldsResponseData{
		Countries: countries,
		Fields:    countryfields.GetMergedCountryFields(countries),
	}

	err := response.JSONOkResponse(w, data, "Data retrieved successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CountryFieldsHandler) HandleValidateFields(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Countries []string            `json:"countries"`
		Values    map[string]string   `json:"values"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.CheckField(len(input.Countries) > 0, "countries", "At least one country is required")
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	fields := countryfields.GetMergedCountryFields(input.Countries)
	errs := countryfields.ValidateFields(fields, input.Values)

	data := &GovernmentIDValidationResponseData{
		Valid:  len(errs) == 0,
		Errors: errs,
	}

	message := "Government IDs are valid"
	if !data.Valid {
		message = "Government IDs have validation errors"
	}

	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleEmployeeFields merges the fields of every country the employee has
// an employment record in, earliest employment first.
func (h *CountryFieldsHandler) HandleEmployeeFields(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("id"))

	countries, err := h.EmploymentRepo.CountriesForUser(r.Context(), userID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if len(countries) == 0 {
		h.ErrHandler.NotFoundMessage(w, r, "no employment records found for this employee")
		return
	}

	data := &GovernmentIDFieldsResponseData{
		Countries: countries,
		Fields:    countryfields.GetMergedCountryFields(countries),
	}

	err = response.JSONOkResponse(w, data, "Data retrieved successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
