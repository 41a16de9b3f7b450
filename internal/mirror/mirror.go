package mirror

import (
	"context"

	"github.com/dmitrijs2005/finhive/internal/models"
)

// Pinger reports remote reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Accounts interface {
	SelectAccounts(ctx context.Context, userID string) ([]models.Account, error)
	InsertAccount(ctx context.Context, a models.Account) error
	DeleteAccount(ctx context.Context, id, userID string) error
}

type Transactions interface {
	SelectTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	SelectTransactionsBetween(ctx context.Context, userID string, from, to models.Date) ([]models.Transaction, error)
	SelectExpensesBetween(ctx context.Context, userID string, from, to models.Date) ([]models.Transaction, error)
	InsertTransaction(ctx context.Context, t models.Transaction) error
	DeleteTransaction(ctx context.Context, id, userID string) error
}

type Summaries interface {
	SelectMonthlySummaries(ctx context.Context, userID string) ([]models.MonthlySummary, error)
	SelectMonthlySummary(ctx context.Context, userID, month string, year int) (models.MonthlySummary, error)
}

type Receipts interface {
	SelectReceipts(ctx context.Context, userID string) ([]models.Receipt, error)
	SelectReceipt(ctx context.Context, id, userID string) (models.Receipt, error)
	InsertReceipt(ctx context.Context, r models.Receipt) error
	// DeleteReceipt returns the file_url of the removed row, or "" when
	// nothing was removed.
	DeleteReceipt(ctx context.Context, id, userID string) (string, error)
}

type Goals interface {
	SelectGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error)
}

type Holdings interface {
	SelectHoldings(ctx context.Context, userID string) ([]models.CurrencyHolding, error)
	InsertHolding(ctx context.Context, h models.CurrencyHolding) error
	DeleteHolding(ctx context.Context, id, userID string) error
}

type Contacts interface {
	SelectContacts(ctx context.Context, userID string) ([]models.Contact, error)
	InsertContact(ctx context.Context, c models.Contact) error
	DeleteContact(ctx context.Context, id, userID string) error
}

type Profiles interface {
	SelectProfile(ctx context.Context, id string) (models.UserProfile, error)
	UpsertProfile(ctx context.Context, p models.UserProfile) error
}

// Mirror is the whole remote surface.
type Mirror interface {
	Pinger
	Accounts
	Transactions
	Summaries
	Receipts
	Goals
	Holdings
	Contacts
	Profiles
}

var _ Mirror = (*PostgresMirror)(nil)
