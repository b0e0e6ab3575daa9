package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/cradoe/peoplepay/assets"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
)

const defaultTimeout = 3 * time.Second

// Database interface defines available repositories
type Database interface {
	Currency() CurrencyRepository
	ExchangeRate() ExchangeRateRepository
	Employment() EmploymentRepository
	TaxYear() TaxYearRepository
	SalaryComponent() SalaryComponentRepository

	Ping(ctx context.Context) error
	Close() error
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DatabaseImpl implements the Database interface
type DatabaseImpl struct {
	db                  *sqlx.DB
	currencyRepo        CurrencyRepository
	exchangeRateRepo    ExchangeRateRepository
	employmentRepo      EmploymentRepository
	taxYearRepo         TaxYearRepository
	salaryComponentRepo SalaryComponentRepository

	mu sync.Mutex
}

// New initializes a database connection and runs migrations if enabled
func New(dsn string, automigrate bool) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", "postgres://"+dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	if automigrate {
		iofsDriver, err := iofs.New(assets.EmbeddedFiles, "migrations")
		if err != nil {
			return nil, err
		}

		migrator, err := migrate.NewWithSourceInstance("iofs", iofsDriver, "postgres://"+dsn)
		if err != nil {
			return nil, err
		}

		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, err
		}
	}

	return &DatabaseImpl{db: db}, nil
}

func (d *DatabaseImpl) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DatabaseImpl) Close() error {
	return d.db.Close()
}

func (d *DatabaseImpl) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	tx, err := d.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (d *DatabaseImpl) Currency() CurrencyRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.currencyRepo == nil {
		d.currencyRepo = NewCurrencyRepository(d.db)
	}
	return d.currencyRepo
}

func (d *DatabaseImpl) ExchangeRate() ExchangeRateRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.exchangeRateRepo == nil {
		d.exchangeRateRepo = NewExchangeRateRepository(d.db)
	}
	return d.exchangeRateRepo
}

func (d *DatabaseImpl) Employment() EmploymentRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.employmentRepo == nil {
		d.employmentRepo = NewEmploymentRepository(d.db)
	}
	return d.employmentRepo
}

func (d *DatabaseImpl) TaxYear() TaxYearRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.taxYearRepo == nil {
		d.taxYearRepo = NewTaxYearRepository(d.db)
	}
	return d.taxYearRepo
}

func (d *DatabaseImpl) SalaryComponent() SalaryComponentRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.salaryComponentRepo == nil {
		d.salaryComponentRepo = NewSalaryComponentRepository(d.db)
	}
	return d.salaryComponentRepo
}
