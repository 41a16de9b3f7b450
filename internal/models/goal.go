package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is read-only from this module's point of view.
type SavingsGoal struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Title         string          `json:"title"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	Icon          *string         `json:"icon,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	SyncState
}

func (g SavingsGoal) RecordID() string { return g.ID }
func (g SavingsGoal) OwnerID() string  { return g.UserID }
