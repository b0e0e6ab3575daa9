package repository

import (
	"context"

	"github.com/cradoe/peoplepay/internal/models"
	"github.com/jmoiron/sqlx"
)

type EmploymentRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]models.EmploymentRecord, error)
	CountriesForUser(ctx context.Context, userID string) ([]string, error)
	Insert(ctx context.Context, record *models.EmploymentRecord, tx *sqlx.Tx) (string, error)
}

type EmploymentRepositoryImpl struct {
	db *sqlx.DB
}

func NewEmploymentRepository(db *sqlx.DB) EmploymentRepository {
	return &EmploymentRepositoryImpl{db: db}
}

func (repo *EmploymentRepositoryImpl) GetByUserID(ctx context.Context, userID string) ([]models.EmploymentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	records := []models.EmploymentRecord{}

	query := `
		SELECT id, user_id, country_code, job_title, start_date
		FROM employment_records
		WHERE user_id = $1
		ORDER BY start_date, created_at`

	if err := repo.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, err
	}

	return records, nil
}

// CountriesForUser lists the distinct employment countries of a user in the
// order their first record started, which is the order government ID fields
// are merged in.
func (repo *EmploymentRepositoryImpl) CountriesForUser(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	countries := []string{}

	query := `
		SELECT country_code
		FROM employment_records
		WHERE user_id = $1
		GROUP BY country_code
		ORDER BY MIN(start_date), country_code`

	if err := repo.db.SelectContext(ctx, &countries, query, userID); err != nil {
		return nil, err
	}

	return countries, nil
}

func (repo *EmploymentRepositoryImpl) Insert(ctx context.Context, record *models.EmploymentRecord, tx *sqlx.Tx) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id string

	query := `
		INSERT INTO employment_records (user_id, country_code, job_title, start_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	args := []any{record.UserID, record.CountryCode, record.JobTitle, record.StartDate}

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
