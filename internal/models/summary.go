package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummary is the per-(user, month, year) aggregate. Locally it is
// always derived; the remote mirror keeps a materialized copy.
type MonthlySummary struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"`
	Year      int             `json:"year"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Net is income minus expenses.
func (s MonthlySummary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expenses)
}
