package mirror

import (
	"context"

	"github.com/dmitrijs2005/finhive/internal/models"
)

var goalsTable = table[models.SavingsGoal]{
	name:    "savings_goals",
	columns: []string{"id", "user_id", "title", "current_amount", "target_amount", "icon", "created_at", "updated_at"},
	orderBy: "created_at",
	values: func(g models.SavingsGoal) []any {
		return []any{g.ID, g.UserID, g.Title, g.CurrentAmount, g.TargetAmount, g.Icon, g.CreatedAt, g.UpdatedAt}
	},
	scan: func(s rowScanner) (models.SavingsGoal, error) {
		var g models.SavingsGoal
		err := s.Scan(&g.ID, &g.UserID, &g.Title, &g.CurrentAmount, &g.TargetAmount, &g.Icon, &g.CreatedAt, &g.UpdatedAt)
		return g, err
	},
}

var holdingsTable = table[models.CurrencyHolding]{
	name:    "currency_holdings",
	columns: []string{"id", "user_id", "code", "amount", "created_at", "updated_at"},
	orderBy: "created_at",
	values: func(h models.CurrencyHolding) []any {
		return []any{h.ID, h.UserID, h.Code, h.Amount, h.CreatedAt, h.UpdatedAt}
	},
	scan: func(s rowScanner) (models.CurrencyHolding, error) {
		var h models.CurrencyHolding
		err := s.Scan(&h.ID, &h.UserID, &h.Code, &h.Amount, &h.CreatedAt, &h.UpdatedAt)
		return h, err
	},
}

var contactsTable = table[models.Contact]{
	name:    "contacts",
	columns: []string{"id", "user_id", "name", "avatar", "created_at"},
	orderBy: "name",
	values: func(c models.Contact) []any {
		return []any{c.ID, c.UserID, c.Name, c.Avatar, c.CreatedAt}
	},
	scan: func(s rowScanner) (models.Contact, error) {
		var c models.Contact
		err := s.Scan(&c.ID, &c.UserID, &c.Name, &c.Avatar, &c.CreatedAt)
		return c, err
	},
}

func (m *PostgresMirror) SelectGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	return goalsTable.selectByUser(ctx, m.db, userID)
}

func (m *PostgresMirror) SelectHoldings(ctx context.Context, userID string) ([]models.CurrencyHolding, error) {
	return holdingsTable.selectByUser(ctx, m.db, userID)
}

func (m *PostgresMirror) InsertHolding(ctx context.Context, h models.CurrencyHolding) error {
	_, err := holdingsTable.insert(ctx, m.db, h)
	return err
}

func (m *PostgresMirror) DeleteHolding(ctx context.Context, id, userID string) error {
	return holdingsTable.delete(ctx, m.db, id, userID)
}

func (m *PostgresMirror) SelectContacts(ctx context.Context, userID string) ([]models.Contact, error) {
	return contactsTable.selectByUser(ctx, m.db, userID)
}

func (m *PostgresMirror) InsertContact(ctx context.Context, c models.Contact) error {
	_, err := contactsTable.insert(ctx, m.db, c)
	return err
}

func (m *PostgresMirror) DeleteContact(ctx context.Context, id, userID string) error {
	return contactsTable.delete(ctx, m.db, id, userID)
}
