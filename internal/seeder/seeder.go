package seeders

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/cradoe/peoplepay/internal/currency"
	"github.com/cradoe/peoplepay/internal/models"
	"github.com/cradoe/peoplepay/internal/repository"
	"github.com/cradoe/peoplepay/internal/statutory"
	"github.com/jmoiron/sqlx"
)

const defaultTimeout = 10 * time.Second

type Seeder struct {
	DB     repository.Database
	Logger *slog.Logger
}

func New(db repository.Database, logger *slog.Logger) *Seeder {
	return &Seeder{
		DB:     db,
		Logger: logger,
	}
}

// Run seeds reference data in one transaction. It is safe to run against a
// seeded database: existing rows are left alone.
func (seeder *Seeder) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := seeder.DB.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("start seed transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		name string
		fn   func(context.Context, *sqlx.Tx) error
	}{
		{"currencies", seeder.seedCurrencies},
		{"exchange rates", seeder.seedExchangeRates},
		{"tax years", seeder.seedTaxYears},
		{"salary components", seeder.seedSalaryComponents},
	}

	for _, step := range steps {
		if err := step.fn(ctx, tx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		seeder.Logger.Info("seeded", "table", step.name)
	}

	return tx.Commit()
}

func (seeder *Seeder) seedCurrencies(ctx context.Context, tx *sqlx.Tx) error {
	for _, c := range currency.All() {
		err := seeder.DB.Currency().Upsert(ctx, &models.Currency{
			Code:          c.Code,
			Name:          c.Name,
			Symbol:        c.Symbol,
			DecimalPlaces: c.DecimalPlaces,
			IsActive:      true,
		}, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

// Sample rates only; production rates come in through the API.
var sampleRates = []struct {
	From, To string
	Rate     float64
}{
	{"USD", "INR", 83.25},
	{"USD", "PHP", 56.1},
	{"USD", "GBP", 0.79},
	{"USD", "EUR", 0.92},
	{"USD", "AUD", 1.52},
	{"USD", "SGD", 1.34},
	{"USD", "MYR", 4.7},
	{"USD", "LKR", 302.5},
	{"USD", "CAD", 1.36},
	{"EUR", "GBP", 0.86},
}

func (seeder *Seeder) seedExchangeRates(ctx context.Context, tx *sqlx.Tx) error {
	for _, r := range sampleRates {
		_, found, err := seeder.DB.ExchangeRate().FindLatest(ctx, r.From, r.To)
		if err != nil {
			return err
		}
		if found {
			continue
		}

		_, err = seeder.DB.ExchangeRate().Insert(ctx, &models.ExchangeRate{
			FromCurrency:  r.From,
			ToCurrency:    r.To,
			Rate:          r.Rate,
			EffectiveDate: time.Now().UTC(),
		}, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (seeder *Seeder) seedTaxYears(ctx context.Context, tx *sqlx.Tx) error {
	years := []models.TaxYear{
		{CountryCode: "IN", Name: "FY 2026-27", StartDate: date(2026, time.April, 1), EndDate: date(2027, time.March, 31), IsCurrent: true},
		{CountryCode: "PH", Name: "TY 2026", StartDate: date(2026, time.January, 1), EndDate: date(2026, time.December, 31), IsCurrent: true},
		{CountryCode: "US", Name: "TY 2026", StartDate: date(2026, time.January, 1), EndDate: date(2026, time.December, 31), IsCurrent: true},
		{CountryCode: "GB", Name: "2026/27", StartDate: date(2026, time.April, 6), EndDate: date(2027, time.April, 5), IsCurrent: true},
		{CountryCode: "AU", Name: "FY 2026-27", StartDate: date(2026, time.July, 1), EndDate: date(2027, time.June, 30), IsCurrent: true},
		{CountryCode: "SG", Name: "YA 2027", StartDate: date(2026, time.January, 1), EndDate: date(2026, time.December, 31), IsCurrent: true},
		{CountryCode: "MY", Name: "YA 2026", StartDate: date(2026, time.January, 1), EndDate: date(2026, time.December, 31), IsCurrent: true},
		{CountryCode: "LK", Name: "YA 2026/27", StartDate: date(2026, time.April, 1), EndDate: date(2027, time.March, 31), IsCurrent: true},
	}

	for i := range years {
		if err := seeder.DB.TaxYear().Insert(ctx, &years[i], tx); err != nil {
			return err
		}
	}
	return nil
}

// seedSalaryComponents adds a basic-pay earning for every country with
// statutory components, followed by one deduction per statutory type.
func (seeder *Seeder) seedSalaryComponents(ctx context.Context, tx *sqlx.Tx) error {
	for _, country := range statutory.SupportedCountries() {
		components := []models.SalaryComponent{{
			CountryCode: country,
			Code:        "BASIC",
			Name:        "Basic Salary",
			Kind:        models.SalaryComponentEarning,
			IsTaxable:   true,
		}}

		for _, t := range statutory.GetStatutoryComponentsForCountry(country) {
			components = append(components, models.SalaryComponent{
				CountryCode:   country,
				Code:          string(t),
				Name:          statutory.ComponentLabel(t),
				Kind:          models.SalaryComponentDeduction,
				StatutoryType: string(t),
				IsTaxable:     false,
			})
		}

		for i := range components {
			if err := seeder.DB.SalaryComponent().Insert(ctx, &components[i], tx); err != nil {
				return err
			}
		}
	}
	return nil
}
