package mocks

import (
	"context"
	"database/sql"

	"github.com/cradoe/peoplepay/internal/models"
	"github.com/cradoe/peoplepay/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type MockCurrencyRepo struct {
	mock.Mock
}

func (m *MockCurrencyRepo) GetAll(ctx context.Context) ([]models.Currency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Currency), args.Error(1)
}

func (m *MockCurrencyRepo) GetByCode(ctx context.Context, code string) (*models.Currency, bool, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(*models.Currency)
	return c, args.Bool(1), args.Error(2)
}

func (m *MockCurrencyRepo) Upsert(ctx context.Context, currency *models.Currency, tx *sqlx.Tx) error {
	args := m.Called(ctx, currency, tx)
	return args.Error(0)
}

type MockExchangeRateRepo struct {
	mock.Mock
}

func (m *MockExchangeRateRepo) GetAll(ctx context.Context) ([]models.ExchangeRate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepo) FindLatest(ctx context.Context, from, to string) (*models.ExchangeRate, bool, error) {
	args := m.Called(ctx, from, to)
	rate, _ := args.Get(0).(*models.ExchangeRate)
	return rate, args.Bool(1), args.Error(2)
}

func (m *MockExchangeRateRepo) Insert(ctx context.Context, rate *models.ExchangeRate, tx *sqlx.Tx) (string, error) {
	args := m.Called(ctx, rate, tx)
	return args.String(0), args.Error(1)
}

type MockEmploymentRepo struct {
	mock.Mock
}

func (m *MockEmploymentRepo) GetByUserID(ctx context.Context, userID string) ([]models.EmploymentRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.EmploymentRecord), args.Error(1)
}

func (m *MockEmploymentRepo) CountriesForUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEmploymentRepo) Insert(ctx context.Context, record *models.EmploymentRecord, tx *sqlx.Tx) (string, error) {
	args := m.Called(ctx, record, tx)
	return args.String(0), args.Error(1)
}

type MockTaxYearRepo struct {
	mock.Mock
}

func (m *MockTaxYearRepo) GetByCountry(ctx context.Context, countryCode string) ([]models.TaxYear, error) {
	args := m.Called(ctx, countryCode)
	return args.Get(0).([]models.TaxYear), args.Error(1)
}

func (m *MockTaxYearRepo) Insert(ctx context.Context, year *models.TaxYear, tx *sqlx.Tx) error {
	args := m.Called(ctx, year, tx)
	return args.Error(0)
}

type MockSalaryComponentRepo struct {
	mock.Mock
}

func (m *MockSalaryComponentRepo) GetByCountry(ctx context.Context, countryCode string) ([]models.SalaryComponent, error) {
	args := m.Called(ctx, countryCode)
	return args.Get(0).([]models.SalaryComponent), args.Error(1)
}

func (m *MockSalaryComponentRepo) Insert(ctx context.Context, component *models.SalaryComponent, tx *sqlx.Tx) error {
	args := m.Called(ctx, component, tx)
	return args.Error(0)
}

// MockDatabase hands out the embedded repository mocks.
type MockDatabase struct {
	mock.Mock
	CurrencyRepo        *MockCurrencyRepo
	ExchangeRateRepo    *MockExchangeRateRepo
	EmploymentRepo      *MockEmploymentRepo
	TaxYearRepo         *MockTaxYearRepo
	SalaryComponentRepo *MockSalaryComponentRepo
}

func NewMockDatabase() *MockDatabase {
	return &MockDatabase{
		CurrencyRepo:        new(MockCurrencyRepo),
		ExchangeRateRepo:    new(MockExchangeRateRepo),
		EmploymentRepo:      new(MockEmploymentRepo),
		TaxYearRepo:         new(MockTaxYearRepo),
		SalaryComponentRepo: new(MockSalaryComponentRepo),
	}
}

func (m *MockDatabase) Currency() repository.CurrencyRepository {
	return m.CurrencyRepo
}

func (m *MockDatabase) ExchangeRate() repository.ExchangeRateRepository {
	return m.ExchangeRateRepo
}

func (m *MockDatabase) Employment() repository.EmploymentRepository {
	return m.EmploymentRepo
}

func (m *MockDatabase) TaxYear() repository.TaxYearRepository {
	return m.TaxYearRepo
}

func (m *MockDatabase) SalaryComponent() repository.SalaryComponentRepository {
	return m.SalaryComponentRepo
}

func (m *MockDatabase) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDatabase) Close() error {
	return nil
}

func (m *MockDatabase) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	tx, _ := args.Get(0).(*sqlx.Tx)
	return tx, args.Error(1)
}
