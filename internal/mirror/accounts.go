package mirror

import (
	"context"

	"github.com/dmitrijs2005/finhive/internal/models"
)

var accountsTable = table[models.Account]{
	name:    "accounts",
	columns: []string{"id", "user_id", "name", "type", "balance", "card_type", "last_four", "monthly_fee", "created_at", "updated_at"},
	orderBy: "created_at",
	values: func(a models.Account) []any {
		return []any{a.ID, a.UserID, a.Name, string(a.Type), a.Balance, a.CardType, a.LastFour, a.MonthlyFee, a.CreatedAt, a.UpdatedAt}
	},
	scan: func(s rowScanner) (models.Account, error) {
		var a models.Account
		err := s.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.CardType, &a.LastFour, &a.MonthlyFee, &a.CreatedAt, &a.UpdatedAt)
		return a, err
	},
}

func (m *PostgresMirror) SelectAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	return accountsTable.selectByUser(ctx, m.db, userID)
}

func (m *PostgresMirror) InsertAccount(ctx context.Context, a models.Account) error {
	_, err := accountsTable.insert(ctx, m.db, a)
	return err
}

func (m *PostgresMirror) DeleteAccount(ctx context.Context, id, userID string) error {
	return accountsTable.delete(ctx, m.db, id, userID)
}
