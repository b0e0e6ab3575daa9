package handler

import (
	"net/http"

	"github.com/cradoe/peoplepay/internal/currency"
	"github.com/cradoe/peoplepay/internal/errHandler"
	"github.com/cradoe/peoplepay/internal/models"
	"github.com/cradoe/peoplepay/internal/repository"
	"github.com/cradoe/peoplepay/internal/request"
	"github.com/cradoe/peoplepay/internal/response"
	"github.com/cradoe/peoplepay/internal/statutory"
	"github.com/cradoe/peoplepay/internal/validator"
)

type StatutoryComponentResponseData struct {
	Type  statutory.ComponentType `json:"type"`
	Label string                  `json:"label"`
}

type NetPayResponseData struct {
	Currency       string  `json:"currency"`
	Gross          float64 `json:"gross"`
	TaxPercentage  float64 `json:"tax_percentage"`
	Tax            float64 `json:"tax"`
	Net            float64 `json:"net"`
	FormattedGross string  `json:"formatted_gross"`
	FormattedTax   string  `json:"formatted_tax"`
	FormattedNet   string  `json:"formatted_net"`
}

type PayrollHandler struct {
	TaxYearRepo         repository.TaxYearRepository
	SalaryComponentRepo repository.SalaryComponentRepository
	CurrencyRepo        repository.CurrencyRepository

	ErrHandler *errHandler.ErrorRepository
}

func NewPayrollHandler(handler *PayrollHandler) *PayrollHandler {
	return &PayrollHandler{
		TaxYearRepo:         handler.TaxYearRepo,
		SalaryComponentRepo: handler.SalaryComponentRepo,
		CurrencyRepo:        handler.CurrencyRepo,
		ErrHandler:          handler.ErrHandler,
	}
}

// HandleStatutoryComponents lists the statutory component types of a
// country. Unknown codes get an empty list.
func (h *PayrollHandler) HandleStatutoryComponents(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	types := statutory.GetStatutoryComponentsForCountry(code)
	data := make([]StatutoryComponentResponseData, len(types))
	for i, t := range types {
		data[i] = StatutoryComponentResponseData{Type: t, Label: statutory.ComponentLabel(t)}
	}

	message := "Data retrieved successfully"
	if len(data) == 0 {
		message = "No statutory components for this country"
	}

	err := response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *PayrollHandler) HandleStatutoryComponentApplicable(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	componentType := statutory.ComponentType(r.PathValue("type"))

	data := map[string]any{
		"Country":    code,
		"Type":       componentType,
		"Applicable": statutory.IsStatutoryComponentApplicable(code, componentType),
	}

	err := response.JSONOkResponse(w, data, "Data retrieved successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *PayrollHandler) HandleTaxYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.TaxYearRepo.GetByCountry(r.Context(), r.PathValue("code"))
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Data retrieved successfully"
	if len(years) == 0 {
		message = "No tax years found"
	}

	err = response.JSONOkResponse(w, years, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleSalaryComponents lists configured salary components, flagging
// statutory ones that do not apply to the country.
func (h *PayrollHandler) HandleSalaryComponents(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	components, err := h.SalaryComponentRepo.GetByCountry(r.Context(), code)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	type componentData struct {
		models.SalaryComponent
		StatutoryApplicable *bool `json:"statutory_applicable,omitempty"`
	}

	data := make([]componentData, len(components))
	for i, c := range components {
		data[i] = componentData{SalaryComponent: c}
		if c.StatutoryType != "" {
			applicable := statutory.IsStatutoryComponentApplicable(code, statutory.ComponentType(c.StatutoryType))
			data[i].StatutoryApplicable = &applicable
		}
	}

	message := "Data retrieved successfully"
	if len(data) == 0 {
		message = "No salary components found"
	}

	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *PayrollHandler) HandleNetPay(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Amount        float64             `json:"amount"`
		TaxPercentage float64             `json:"tax_percentage"`
		Currency      string              `json:"currency"`
		Validator     validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	c, found, err := currencyResolver{repo: h.CurrencyRepo}.resolve(r.Context(), input.Currency)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	input.Validator.CheckField(validator.NotBlank(input.Currency), "currency", "Currency is required")
	if validator.NotBlank(input.Currency) {
		input.Validator.CheckField(found, "currency", "Currency is not supported")
	}
	input.Validator.CheckField(input.Amount >= 0, "amount", "Amount cannot be negative")
	input.Validator.CheckField(input.TaxPercentage >= 0 && input.TaxPercentage <= 100, "tax_percentage", "Tax percentage must be between 0 and 100")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	gross := currency.RoundToCurrency(input.Amount, c)
	tax := currency.CalculateTax(input.Amount, input.TaxPercentage, c.DecimalPlaces)
	net := currency.CalculateNetAmount(input.Amount, input.TaxPercentage, c.DecimalPlaces)
	locale := localeFromRequest(r)

	data := &NetPayResponseData{
		Currency:       c.Code,
		Gross:          gross,
		TaxPercentage:  input.TaxPercentage,
		Tax:            tax,
		Net:            net,
		FormattedGross: currency.FormatCurrency(gross, c, currency.FormatOptions{Locale: locale}),
		FormattedTax:   currency.FormatCurrency(tax, c, currency.FormatOptions{Locale: locale}),
		FormattedNet:   currency.FormatCurrency(net, c, currency.FormatOptions{Locale: locale}),
	}

	err = response.JSONOkResponse(w, data, "Net pay calculated", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
