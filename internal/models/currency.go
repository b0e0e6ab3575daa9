package models

import "time"

type Currency struct {
	Code          string    `db:"code" json:"code"`
	Name          string    `db:"name" json:"name"`
	Symbol        string    `db:"symbol" json:"symbol"`
	DecimalPlaces int       `db:"decimal_places" json:"decimal_places"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ExchangeRate is directional; the reverse rate is never stored and is
// derived as 1/Rate when needed.
type ExchangeRate struct {
	ID            string    `db:"id" json:"id"`
	FromCurrency  string    `db:"from_currency" json:"from_currency"`
	ToCurrency    string    `db:"to_currency" json:"to_currency"`
	Rate          float64   `db:"rate" json:"rate"`
	EffectiveDate time.Time `db:"effective_date" json:"effective_date"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
