package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/peoplepay/internal/models"
	"github.com/jmoiron/sqlx"
)

type ExchangeRateRepository interface {
	GetAll(ctx context.Context) ([]models.ExchangeRate, error)
	FindLatest(ctx context.Context, from, to string) (*models.ExchangeRate, bool, error)
	Insert(ctx context.Context, rate *models.ExchangeRate, tx *sqlx.Tx) (string, error)
}

type ExchangeRateRepositoryImpl struct {
	db *sqlx.DB
}

func NewExchangeRateRepository(db *sqlx.DB) ExchangeRateRepository {
	return &ExchangeRateRepositoryImpl{db: db}
}

func (repo *ExchangeRateRepositoryImpl) GetAll(ctx context.Context) ([]models.ExchangeRate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rates := []models.ExchangeRate{}

	query := `
		SELECT id, from_currency, to_currency, rate, effective_date, created_at
		FROM exchange_rates
		ORDER BY from_currency, to_currency, effective_date DESC`

	if err := repo.db.SelectContext(ctx, &rates, query); err != nil {
		return nil, err
	}

	return rates, nil
}

// FindLatest returns the most recent rate for from→to that is already
// effective. The reverse direction is not consulted.
func (repo *ExchangeRateRepositoryImpl) FindLatest(ctx context.Context, from, to string) (*models.ExchangeRate, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rate models.ExchangeRate

	query := `
		SELECT id, from_currency, to_currency, rate, effective_date, created_at
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND effective_date <= NOW()
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1`

	err := repo.db.GetContext(ctx, &rate, query, from, to)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &rate, true, nil
}

func (repo *ExchangeRateRepositoryImpl) Insert(ctx context.Context, rate *models.ExchangeRate, tx *sqlx.Tx) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id string

	query := `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, effective_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	args := []any{rate.FromCurrency, rate.ToCurrency, rate.Rate, rate.EffectiveDate}

	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = repo.db.GetContext(ctx, &id, query, args...)
	}
	if err != nil {
		return "", err
	}

	return id, nil
}
