package models

import "time"

type TaxYear struct {
	ID          string    `db:"id" json:"id"`
	CountryCode string    `db:"country_code" json:"country_code"`
	Name        string    `db:"name" json:"name"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	IsCurrent   bool      `db:"is_current" json:"is_current"`
}

const (
	SalaryComponentEarning   = "earning"
	SalaryComponentDeduction = "deduction"
)

type SalaryComponent struct {
	ID            string  `db:"id" json:"id"`
	CountryCode   string  `db:"country_code" json:"country_code"`
	Code          string  `db:"code" json:"code"`
	Name          string  `db:"name" json:"name"`
	Kind          string  `db:"kind" json:"kind"`
	StatutoryType string  `db:"statutory_type" json:"statutory_type,omitempty"`
	Percentage    float64 `db:"percentage" json:"percentage"`
	IsTaxable     bool    `db:"is_taxable" json:"is_taxable"`
}

type EmploymentRecord struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	CountryCode string    `db:"country_code" json:"country_code"`
	JobTitle    string    `db:"job_title" json:"job_title"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
}
