package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cradoe/peoplepay/internal/models"
	"github.com/jmoiron/sqlx"
)

type CurrencyRepository interface {
	GetAll(ctx context.Context) ([]models.Currency, error)
	GetByCode(ctx context.Context, code string) (*models.Currency, bool, error)
	Upsert(ctx context.Context, currency *models.Currency, tx *sqlx.Tx) error
}

type CurrencyRepositoryImpl struct {
	db *sqlx.DB
}

func NewCurrencyRepository(db *sqlx.DB) CurrencyRepository {
	return &CurrencyRepositoryImpl{db: db}
}

func (repo *CurrencyRepositoryImpl) GetAll(ctx context.Context) ([]models.Currency, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	currencies := []models.Currency{}

	query := `
		SELECT code, name, symbol, decimal_places, is_active, created_at
		FROM currencies
		WHERE is_active = TRUE
		ORDER BY code`

	if err := repo.db.SelectContext(ctx, &currencies, query); err != nil {
		return nil, err
	}

	return currencies, nil
}

func (repo *CurrencyRepositoryImpl) GetByCode(ctx context.Context, code string) (*models.Currency, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var currency models.Currency

	query := `
		SELECT code, name, symbol, decimal_places, is_active, created_at
		FROM currencies
		WHERE code = $1`

	err := repo.db.GetContext(ctx, &currency, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &currency, true, nil
}

func (repo *CurrencyRepositoryImpl) Upsert(ctx context.Context, currency *models.Currency, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO currencies (code, name, symbol, decimal_places, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name,
			symbol = EXCLUDED.symbol,
			decimal_places = EXCLUDED.decimal_places,
			is_active = EXCLUDED.is_active`

	args := []any{currency.Code, currency.Name, currency.Symbol, currency.DecimalPlaces, currency.IsActive}

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = repo.db.ExecContext(ctx, query, args...)
	}

	return err
}
