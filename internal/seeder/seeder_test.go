package seeders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cradoe/peoplepay/internal/mocks"
	"github.com/cradoe/peoplepay/internal/models"
	"github.com/cradoe/peoplepay/internal/statutory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSeeder() (*Seeder, *mocks.MockDatabase) {
	db := mocks.NewMockDatabase()
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil))), db
}

func TestRunFailsWithoutTransaction(t *testing.T) {
	seeder, db := newTestSeeder()
	db.On("BeginTx", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	err := seeder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start seed transaction")
}

func TestSeedCurrencies(t *testing.T) {
	seeder, db := newTestSeeder()
	db.CurrencyRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(c *models.Currency) bool {
		return c.IsActive && c.Code != ""
	}), mock.Anything).Return(nil)

	require.NoError(t, seeder.seedCurrencies(context.Background(), nil))
	db.CurrencyRepo.AssertNumberOfCalls(t, "Upsert", 15)
}

func TestSeedExchangeRatesSkipsExisting(t *testing.T) {
	seeder, db := newTestSeeder()
	db.ExchangeRateRepo.On("FindLatest", mock.Anything, "USD", "INR").Return(&models.ExchangeRate{Rate: 80}, true, nil)
	db.ExchangeRateRepo.On("FindLatest", mock.Anything, mock.Anything, mock.Anything).Return(nil, false, nil)
	db.ExchangeRateRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return("id", nil)

	require.NoError(t, seeder.seedExchangeRates(context.Background(), nil))
	db.ExchangeRateRepo.AssertNumberOfCalls(t, "Insert", len(sampleRates)-1)
	db.ExchangeRateRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.MatchedBy(func(r *models.ExchangeRate) bool {
		return r.FromCurrency == "USD" && r.ToCurrency == "INR"
	}), mock.Anything)
}

func TestSeedSalaryComponents(t *testing.T) {
	seeder, db := newTestSeeder()

	var inserted []models.SalaryComponent
	db.SalaryComponentRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			inserted = append(inserted, *args.Get(1).(*models.SalaryComponent))
		}).
		Return(nil)

	require.NoError(t, seeder.seedSalaryComponents(context.Background(), nil))

	for _, c := range inserted {
		if c.Kind == models.SalaryComponentDeduction {
			assert.True(t, statutory.IsStatutoryComponentApplicable(c.CountryCode, statutory.ComponentType(c.StatutoryType)), c.Code)
		}
	}

	countries := statutory.SupportedCountries()
	basics := 0
	for _, c := range inserted {
		if c.Code == "BASIC" {
			basics++
		}
	}
	assert.Equal(t, len(countries), basics)
}

func TestSeedTaxYears(t *testing.T) {
	seeder, db := newTestSeeder()
	db.TaxYearRepo.On("Insert", mock.Anything, mock.MatchedBy(func(y *models.TaxYear) bool {
		return y.EndDate.After(y.StartDate)
	}), mock.Anything).Return(nil)

	require.NoError(t, seeder.seedTaxYears(context.Background(), nil))
	db.TaxYearRepo.AssertExpectations(t)
}
