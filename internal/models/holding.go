package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type CurrencyHolding struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Code      string          `json:"code"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	SyncState
}

func (h CurrencyHolding) RecordID() string { return h.ID }
func (h CurrencyHolding) OwnerID() string  { return h.UserID }

func (h CurrencyHolding) Validate() error {
	if _, err := currency.ParseISO(h.Code); err != nil {
		return fmt.Errorf("%w: unknown currency code %q", common.ErrValidation, h.Code)
	}
	if h.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", common.ErrValidation)
	}
	return nil
}
