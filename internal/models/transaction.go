package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// DefaultCategory is assigned when a transaction is added without one.
const DefaultCategory = "Uncategorized"

// Transaction is an immutable ledger line. Amount is never negative; the
// direction lives in Type.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	AccountID   *string         `json:"account_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        Date            `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	SyncState
}

func (t Transaction) RecordID() string { return t.ID }
func (t Transaction) OwnerID() string  { return t.UserID }

// Signed returns the amount with income positive and expense negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) Validate() error {
	if t.Type != TransactionIncome && t.Type != TransactionExpense {
		return fmt.Errorf("%w: unknown transaction type %q", common.ErrValidation, t.Type)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", common.ErrValidation)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrValidation)
	}
	return nil
}
