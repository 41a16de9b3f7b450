package mirror

import (
	"context"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/models"
)

// Disabled stands in for the mirror when no remote store is configured.
// Every call fails with common.ErrMirrorUnavailable, so outbox jobs stay
// pending and reads use local data only.
type Disabled struct{}

var _ Mirror = Disabled{}

func (Disabled) Ping(context.Context) error { return common.ErrMirrorUnavailable }

func (Disabled) SelectAccounts(context.Context, string) ([]models.Account, error) {
	return nil, common.ErrMirrorUnavailable
}
func (Disabled) InsertAccount(context.Context, models.Account) error {
	return common.ErrMirrorUnavailable
}
func (Disabled) DeleteAccount(context.Context, string, string) error {
	return common.ErrMirrorUnavailable
}

func (Disabled) SelectTransactions(context.Context, string) ([]models.Transaction, error) {
	return nil, common.ErrMirrorUnavailable
}
func (Disabled) SelectTransactionsBetween(context.Context, string, models.Date, models.Date) ([]models.Transaction, error) {
	return nil, common.ErrMirrorUnavailable
}
func (Disabled) SelectExpensesBetween(context.Context, string, models.Date, models.Date) ([]models.Transaction, error) {
	return nil, common.ErrMirrorUnavailable
}
func (Disabled) InsertTransaction(context.Context, models.Transaction) error {
	return common.ErrMirrorUnavailable
}
func (Disabled) DeleteTransaction(context.Context, string, string) error {
	return common.ErrMirrorUnavailable
}

func (Disabled) SelectMonthlySummaries(context.Context, string) ([]models.MonthlySummary, error) {
	return nil, common.ErrMirrorUnavailable
}
func (Disabled) SelectMonthlySummary(context.Context, string, string, int) (models.MonthlySummary, error) {
	return models.MonthlySummary{}, common.ErrMirrorUnavailable
}

func (Disabled) SelectReceipts(context.Context, string) ([]models.Receipt, error) {
	return nil, common.ErrMirrorUnavailable
}
func (Disabled) SelectReceipt(context.Context, string, string) (models.Receipt, error) {
	return models.Receipt{}, common.ErrMirrorUnavailable
}
func (Disabled) InsertReceipt(context.Context, models.Receipt) error {
	return common.ErrMirrorUnavailable
}
func (Disabled) DeleteReceipt(context.Context, string, string) (string, error) {
	return "", common.ErrMirrorUnavailable
}

func (Disabled) SelectGoals(context.Context, string) ([]models.SavingsGoal, error) {
	return nil, common.ErrMirrorUnavailable
}

func (Disabled) SelectHoldings(context.Context, string) ([]models.CurrencyHolding, error) {
	return nil, common.ErrMirrorUnavailable
}
func (Disabled) InsertHolding(context.Context, models.CurrencyHolding) error {
	return common.ErrMirrorUnavailable
}
func (Disabled) DeleteHolding(context.Context, string, string) error {
	return common.ErrMirrorUnavailable
}

func (Disabled) SelectContacts(context.Context, string) ([]models.Contact, error) {
	return nil, common.ErrMirrorUnavailable
}
func (Disabled) InsertContact(context.Context, models.Contact) error {
	return common.ErrMirrorUnavailable
}
func (Disabled) DeleteContact(context.Context, string, string) error {
	return common.ErrMirrorUnavailable
}

func (Disabled) SelectProfile(context.Context, string) (models.UserProfile, error) {
	return models.UserProfile{}, common.ErrMirrorUnavailable
}
func (Disabled) UpsertProfile(context.Context, models.UserProfile) error {
	return common.ErrMirrorUnavailable
}
