package repository

import (
	"context"

	"github.com/cradoe/peoplepay/internal/models"
	"github.com/jmoiron/sqlx"
)

type TaxYearRepository interface {
	GetByCountry(ctx context.Context, countryCode string) ([]models.TaxYear, error)
	Insert(ctx context.Context, year *models.TaxYear, tx *sqlx.Tx) error
}

type TaxYearRepositoryImpl struct {
	db *sqlx.DB
}

func NewTaxYearRepository(db *sqlx.DB) TaxYearRepository {
	return &TaxYearRepositoryImpl{db: db}
}

func (repo *TaxYearRepositoryImpl) GetByCountry(ctx context.Context, countryCode string) ([]models.TaxYear, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	years := []models.TaxYear{}

	query := `
		SELECT id, country_code, name, start_date, end_date, is_current
		FROM tax_years
		WHERE country_code = $1
		ORDER BY start_date DESC`

	if err := repo.db.SelectContext(ctx, &years, query, countryCode); err != nil {
		return nil, err
	}

	return years, nil
}

func (repo *TaxYearRepositoryImpl) Insert(ctx context.Context, year *models.TaxYear, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO tax_years (country_code, name, start_date, end_date, is_current)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (country_code, name) DO NOTHING`

	args := []any{year.CountryCode, year.Name, year.StartDate, year.EndDate, year.IsCurrent}

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = repo.db.ExecContext(ctx, query, args...)
	}

	return err
}

type SalaryComponentRepository interface {
	GetByCountry(ctx context.Context, countryCode string) ([]models.SalaryComponent, error)
	Insert(ctx context.Context, component *models.SalaryComponent, tx *sqlx.Tx) error
}

type SalaryComponentRepositoryImpl struct {
	db *sqlx.DB
}

func NewSalaryComponentRepository(db *sqlx.DB) SalaryComponentRepository {
	return &SalaryComponentRepositoryImpl{db: db}
}

func (repo *SalaryComponentRepositoryImpl) GetByCountry(ctx context.Context, countryCode string) ([]models.SalaryComponent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	components := []models.SalaryComponent{}

	query := `
		SELECT id, country_code, code, name, kind, COALESCE(statutory_type, '') AS statutory_type, percentage, is_taxable
		FROM salary_components
		WHERE country_code = $1
		ORDER BY kind, code`

	if err := repo.db.SelectContext(ctx, &components, query, countryCode); err != nil {
		return nil, err
	}

	return components, nil
}

func (repo *SalaryComponentRepositoryImpl) Insert(ctx context.Context, component *models.SalaryComponent, tx *sqlx.Tx) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO salary_components (country_code, code, name, kind, statutory_type, percentage, is_taxable)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		ON CONFLICT (country_code, code) DO NOTHING`

	args := []any{
		component.CountryCode,
		component.Code,
		component.Name,
		component.Kind,
		component.StatutoryType,
		component.Percentage,
		component.IsTaxable,
	}

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = repo.db.ExecContext(ctx, query, args...)
	}

	return err
}
