package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return true
	}
	return false
}

// Account is a manually maintained balance holder. Balance is never derived
// from transactions.
type Account struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Name       string           `json:"name"`
	Type       AccountType      `json:"type"`
	Balance    decimal.Decimal  `json:"balance"`
	CardType   *string          `json:"card_type,omitempty"`
	LastFour   *string          `json:"last_four,omitempty"`
	MonthlyFee *decimal.Decimal `json:"monthly_fee,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	SyncState
}

func (a Account) RecordID() string { return a.ID }
func (a Account) OwnerID() string  { return a.UserID }

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", common.ErrValidation)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown account type %q", common.ErrValidation, a.Type)
	}
	if a.LastFour != nil && len(*a.LastFour) != 4 {
		return fmt.Errorf("%w: last_four must have 4 characters", common.ErrValidation)
	}
	if a.MonthlyFee != nil && a.MonthlyFee.IsNegative() {
		return fmt.Errorf("%w: monthly fee cannot be negative", common.ErrValidation)
	}
	return nil
}
