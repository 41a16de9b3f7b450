package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/shopspring/decimal"
)

// Receipt carries its file inline locally (FileURL is a data: URI). The
// mirrored row references object storage instead.
type Receipt struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Date      Date            `json:"date"`
	Category  string          `json:"category"`
	Notes     string          `json:"notes"`
	FileName  string          `json:"file_name"`
	FileType  string          `json:"file_type"`
	FileSize  int64           `json:"file_size"`
	FileURL   string          `json:"file_url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	SyncState
}

func (r Receipt) RecordID() string { return r.ID }
func (r Receipt) OwnerID() string  { return r.UserID }

func (r Receipt) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: receipt title is required", common.ErrValidation)
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", common.ErrValidation)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrValidation)
	}
	return nil
}
