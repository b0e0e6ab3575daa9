package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cradoe/peoplepay/internal/currency"
	"github.com/cradoe/peoplepay/internal/errHandler"
	"github.com/cradoe/peoplepay/internal/exchange"
	"github.com/cradoe/peoplepay/internal/helper"
	"github.com/cradoe/peoplepay/internal/middleware"
	"github.com/cradoe/peoplepay/internal/models"
	"github.com/cradoe/peoplepay/internal/repository"
	"github.com/cradoe/peoplepay/internal/request"
	"github.com/cradoe/peoplepay/internal/response"
	"github.com/cradoe/peoplepay/internal/stream"
	"github.com/cradoe/peoplepay/internal/validator"

	appcontext "github.com/cradoe/peoplepay/internal/context"
	"golang.org/x/text/language"
)

type CurrencyResponseData struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int    `json:"decimal_places"`
}

type ExchangeRateResponseData struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Rate        float64 `json:"rate"`
	ReverseRate string  `json:"reverse_rate"`
}

type ConversionResponseData struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
	Formatted string  `json:"formatted"`
}

type CurrencyHandler struct {
	CurrencyRepo     repository.CurrencyRepository
	ExchangeRateRepo repository.ExchangeRateRepository
	Converter        *exchange.Converter
	Publisher        stream.Publisher
	Helper           *helper.HelperRepository

	ErrHandler *errHandler.ErrorRepository
}

func NewCurrencyHandler(handler *CurrencyHandler) *CurrencyHandler {
	return &CurrencyHandler{
		CurrencyRepo:     handler.CurrencyRepo,
		ExchangeRateRepo: handler.ExchangeRateRepo,
		Converter:        handler.Converter,
		Publisher:        handler.Publisher,
		Helper:           handler.Helper,
		ErrHandler:       handler.ErrHandler,
	}
}

func toCurrencyResponse(c currency.Currency) *CurrencyResponseData {
	return &CurrencyResponseData{
		Code:          c.Code,
		Name:          c.Name,
		Symbol:        c.Symbol,
		DecimalPlaces: c.DecimalPlaces,
	}
}

func localeFromRequest(r *http.Request) language.Tag {
	return appcontext.ContextGetLocale(r)
}

// requestedLocale resolves an optional locale field against the supported
// locales. A blank value means the locale detected for the request.
func requestedLocale(r *http.Request, raw string, v *validator.Validator) language.Tag {
	if !validator.NotBlank(raw) {
		return localeFromRequest(r)
	}

	tag, err := language.Parse(raw)
	if err == nil {
		if matched, ok := middleware.MatchLocale(tag); ok {
			return matched
		}
	}

	v.CheckField(false, "locale", "Locale is not supported")
	return localeFromRequest(r)
}

func (h *CurrencyHandler) resolve(r *http.Request, code string) (currency.Currency, bool, error) {
	return currencyResolver{repo: h.CurrencyRepo}.resolve(r.Context(), code)
}

func (h *CurrencyHandler) HandleCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.CurrencyRepo.GetAll(r.Context())
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if len(currencies) == 0 {
		message := "No currency found"
		err = response.JSONOkResponse(w, []CurrencyResponseData{}, message, nil)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	data := make([]*CurrencyResponseData, len(currencies))
	for i, c := range currencies {
		data[i] = &CurrencyResponseData{
			Code:          c.Code,
			Name:          c.Name,
			Symbol:        c.Symbol,
			DecimalPlaces: c.DecimalPlaces,
		}
	}

	err = response.JSONOkResponse(w, data, "Data retrieved successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CurrencyHandler) HandleSingleCurrency(w http.ResponseWriter, r *http.Request) {
	c, found, err := h.resolve(r, r.PathValue("code"))
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err = response.JSONOkResponse(w, toCurrencyResponse(c), "Data retrieved successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CurrencyHandler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Amount     float64             `json:"amount"`
		Currency   string              `json:"currency"`
		HideSymbol bool                `json:"hide_symbol"`
		ShowCode   bool                `json:"show_code"`
		Locale     string              `json:"locale"`
		Validator  validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	c, found, err := h.resolve(r, input.Currency)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	locale := requestedLocale(r, input.Locale, &input.Validator)
	input.Validator.CheckField(found, "currency", "Currency is not supported")
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	data := map[string]any{
		"Currency": c.Code,
		"Amount":   currency.RoundToCurrency(input.Amount, c),
		"Formatted": currency.FormatCurrency(input.Amount, c, currency.FormatOptions{
			HideSymbol: input.HideSymbol,
			ShowCode:   input.ShowCode,
			Locale:     locale,
		}),
	}

	err = response.JSONOkResponse(w, data, "Amount formatted", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleParse accepts a formatted string or a plain number and returns the
// amount rounded to the currency's precision. Unreadable input parses to 0.
func (h *CurrencyHandler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Value     any                 `json:"value"`
		Currency  string              `json:"currency"`
		Locale    string              `json:"locale"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	c, found, err := h.resolve(r, input.Currency)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	locale := requestedLocale(r, input.Locale, &input.Validator)

	input.Validator.CheckField(found, "currency", "Currency is not supported")
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	var amount float64
	if s, ok := input.Value.(string); ok {
		amount = currency.RoundToCurrency(currency.ParseCurrencyLocale(s, c, locale), c)
	} else {
		amount = currency.NormalizeCurrencyAmount(input.Value, c.DecimalPlaces)
	}

	data := map[string]any{
		"Currency": c.Code,
		"Amount":   amount,
	}

	err = response.JSONOkResponse(w, data, "Amount parsed", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CurrencyHandler) HandleValidateAmount(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Value         string              `json:"value"`
		Currency      string              `json:"currency"`
		Min           *float64            `json:"min"`
		Max           *float64            `json:"max"`
		AllowNegative bool                `json:"allow_negative"`
		Locale        string              `json:"locale"`
		Validator     validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	c, found, err := h.resolve(r, input.Currency)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	locale := requestedLocale(r, input.Locale, &input.Validator)

	input.Validator.CheckField(found, "currency", "Currency is not supported")
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	result := currency.ValidateCurrencyAmount(input.Value, c, currency.AmountOptions{
		Min:           input.Min,
		Max:           input.Max,
		AllowNegative: input.AllowNegative,
		Locale:        locale,
	})

	message := "Amount is valid"
	if !result.Valid {
		message = result.Error
	}

	err = response.JSONOkResponse(w, result, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CurrencyHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Amount    float64             `json:"amount"`
		From      string              `json:"from"`
		To        string              `json:"to"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	from, fromFound, err := h.resolve(r, input.From)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	to, toFound, err := h.resolve(r, input.To)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	input.Validator.CheckField(fromFound, "from", "Source currency is not supported")
	input.Validator.CheckField(toFound, "to", "Target currency is not supported")
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	rate, err := h.Converter.Rate(r.Context(), from.Code, to.Code)
	if err != nil {
		if errors.Is(err, exchange.ErrRateNotFound) {
			h.ErrHandler.NotFoundMessage(w, r, fmt.Sprintf("no exchange rate from %s to %s", from.Code, to.Code))
			return
		}
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	converted := currency.ConvertCurrency(input.Amount, rate, to.DecimalPlaces)

	data := &ConversionResponseData{
		From:      from.Code,
		To:        to.Code,
		Amount:    input.Amount,
		Rate:      rate,
		Converted: converted,
		Formatted: currency.FormatCurrency(converted, to, currency.FormatOptions{Locale: localeFromRequest(r)}),
	}

	err = response.JSONOkResponse(w, data, "Amount converted", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CurrencyHandler) HandleExchangeRate(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(r.PathValue("from"))
	to := strings.ToUpper(r.PathValue("to"))

	rate, err := h.Converter.Rate(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, exchange.ErrRateNotFound) {
			h.ErrHandler.NotFoundMessage(w, r, fmt.Sprintf("no exchange rate from %s to %s", from, to))
			return
		}
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := &ExchangeRateResponseData{
		From:        from,
		To:          to,
		Rate:        rate,
		ReverseRate: currency.FormatReverseRate(rate),
	}

	err = response.JSONOkResponse(w, data, "Data retrieved successfully", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CurrencyHandler) HandleExchangeRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.ExchangeRateRepo.GetAll(r.Context())
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Data retrieved successfully"
	if len(rates) == 0 {
		message = "No exchange rate found"
	}

	err = response.JSONOkResponse(w, rates, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleCreateExchangeRate stores a new directional rate, drops the local
// cache entries for the pair and announces the change so other instances
// drop theirs.
func (h *CurrencyHandler) HandleCreateExchangeRate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		From          string              `json:"from"`
		To            string              `json:"to"`
		Rate          float64             `json:"rate"`
		EffectiveDate string              `json:"effective_date"`
		Validator     validator.Validator `json:"-"`
	}

	err := request.DecodeJSONStrict(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.From = strings.ToUpper(strings.TrimSpace(input.From))
	input.To = strings.ToUpper(strings.TrimSpace(input.To))

	_, fromFound, err := h.resolve(r, input.From)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	_, toFound, err := h.resolve(r, input.To)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	effective := time.Now().UTC()
	if validator.NotBlank(input.EffectiveDate) {
		parsed, err := time.Parse("2006-01-02", input.EffectiveDate)
		input.Validator.CheckField(err == nil, "effective_date", "Effective date must be in YYYY-MM-DD format")
		effective = parsed
	}

	input.Validator.CheckField(fromFound, "from", "Source currency is not supported")
	input.Validator.CheckField(toFound, "to", "Target currency is not supported")
	input.Validator.CheckField(input.From != input.To, "to", "Target currency must differ from source currency")
	input.Validator.CheckField(input.Rate > 0, "rate", "Rate must be greater than zero")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	rate := &models.ExchangeRate{
		FromCurrency:  input.From,
		ToCurrency:    input.To,
		Rate:          input.Rate,
		EffectiveDate: effective,
	}

	id, err := h.ExchangeRateRepo.Insert(r.Context(), rate, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	rate.ID = id

	if err := h.Converter.Invalidate(r.Context(), rate.FromCurrency, rate.ToCurrency); err != nil {
		h.ErrHandler.ReportServerError(r, err)
	}

	h.Helper.BackgroundTask(r, func() error {
		event, err := stream.NewEvent(stream.ExchangeRateUpdatedTopic, exchange.CacheKey(rate.FromCurrency, rate.ToCurrency), stream.ExchangeRateUpdated{
			From: rate.FromCurrency,
			To:   rate.ToCurrency,
			Rate: rate.Rate,
		})
		if err != nil {
			return err
		}
		return h.Publisher.Publish(stream.ExchangeRateUpdatedTopic, event)
	})

	err = response.JSONCreatedResponse(w, rate, "Exchange rate created")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
