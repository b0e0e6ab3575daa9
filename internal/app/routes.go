package app

import (
	"net/http"

	"github.com/cradoe/peoplepay/internal/handler"
	"github.com/cradoe/peoplepay/internal/middleware"
)

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	middlewareRepo := middleware.New(app.errorHandler, app.Logger, app.Config.DefaultLocale)

	checks := map[string]handler.Pinger{"database": app.DB}
	if app.redis != nil {
		checks["redis"] = app.redis
	}
	healthHandler := handler.NewHealthCheckHandler(app.errorHandler, checks)

	countryFieldsHandler := handler.NewCountryFieldsHandler(&handler.CountryFieldsHandler{
		EmploymentRepo: app.DB.Employment(),
		ErrHandler:     app.errorHandler,
	})

	payrollHandler := handler.NewPayrollHandler(&handler.PayrollHandler{
		TaxYearRepo:         app.DB.TaxYear(),
		SalaryComponentRepo: app.DB.SalaryComponent(),
		CurrencyRepo:        app.DB.Currency(),
		ErrHandler:          app.errorHandler,
	})

	currencyHandler := handler.NewCurrencyHandler(&handler.CurrencyHandler{
		CurrencyRepo:     app.DB.Currency(),
		ExchangeRateRepo: app.DB.ExchangeRate(),
		Converter:        app.Converter,
		Publisher:        app.Kafka,
		Helper:           app.helper,
		ErrHandler:       app.errorHandler,
	})

	profileHandler := handler.NewProfileHandler(&handler.ProfileHandler{
		Publisher:  app.Kafka,
		Helper:     app.helper,
		ErrHandler: app.errorHandler,
	})

	mux.HandleFunc("GET /status", healthHandler.HandleHealthCheck)

	mux.HandleFunc("GET /v1/countries/{code}/government-id-fields", countryFieldsHandler.HandleCountryFields)
	mux.HandleFunc("GET /v1/government-id-fields", countryFieldsHandler.HandleMergedFields)
	mux.HandleFunc("POST /v1/government-id-fields/validate", countryFieldsHandler.HandleValidateFields)
	mux.HandleFunc("GET /v1/employees/{id}/government-id-fields", countryFieldsHandler.HandleEmployeeFields)

	mux.HandleFunc("GET /v1/countries/{code}/statutory-components", payrollHandler.HandleStatutoryComponents)
	mux.HandleFunc("GET /v1/countries/{code}/statutory-components/{type}", payrollHandler.HandleStatutoryComponentApplicable)
	mux.HandleFunc("GET /v1/countries/{code}/tax-years", payrollHandler.HandleTaxYears)
	mux.HandleFunc("GET /v1/countries/{code}/salary-components", payrollHandler.HandleSalaryComponents)
	mux.HandleFunc("POST /v1/payroll/net", payrollHandler.HandleNetPay)

	mux.HandleFunc("GET /v1/currencies", currencyHandler.HandleCurrencies)
	mux.HandleFunc("GET /v1/currencies/{code}", currencyHandler.HandleSingleCurrency)
	mux.HandleFunc("POST /v1/currencies/format", currencyHandler.HandleFormat)
	mux.HandleFunc("POST /v1/currencies/parse", currencyHandler.HandleParse)
	mux.HandleFunc("POST /v1/currencies/validate", currencyHandler.HandleValidateAmount)
	mux.HandleFunc("POST /v1/currencies/convert", currencyHandler.HandleConvert)
	mux.HandleFunc("GET /v1/exchange-rates", currencyHandler.HandleExchangeRates)
	mux.HandleFunc("POST /v1/exchange-rates", currencyHandler.HandleCreateExchangeRate)
	mux.HandleFunc("GET /v1/exchange-rates/{from}/{to}", currencyHandler.HandleExchangeRate)

	mux.HandleFunc("POST /v1/profiles/validate", profileHandler.HandleValidateProfile)
	mux.HandleFunc("POST /v1/profiles/onboarding-status", profileHandler.HandleOnboardingStatus)
	mux.HandleFunc("POST /v1/profiles/tabs", profileHandler.HandleTabs)
	mux.HandleFunc("POST /v1/profiles/events", profileHandler.HandleProfileSaved)

	return middlewareRepo.LogAccess(middlewareRepo.RecoverPanic(middlewareRepo.DetectLocale(mux)))
}
