package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/finhive/internal/dbx"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/shopspring/decimal"
)

var transactionsTable = table[models.Transaction]{
	name:    "transactions",
	columns: []string{"id", "user_id", "account_id", "amount", "type", "category", "description", "date", "created_at"},
	orderBy: "date DESC",
	values: func(t models.Transaction) []any {
		return []any{t.ID, t.UserID, t.AccountID, t.Amount, string(t.Type), t.Category, t.Description, t.Date, t.CreatedAt}
	},
	scan: func(s rowScanner) (models.Transaction, error) {
		var (
			t    models.Transaction
			desc sql.NullString
		)
		err := s.Scan(&t.ID, &t.UserID, &t.AccountID, &t.Amount, &t.Type, &t.Category, &desc, &t.Date, &t.CreatedAt)
		t.Description = desc.String
		return t, err
	},
}

func (m *PostgresMirror) SelectTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return transactionsTable.selectByUser(ctx, m.db, userID)
}

// SelectTransactionsBetween returns the user's transactions dated within
// [from, to].
func (m *PostgresMirror) SelectTransactionsBetween(ctx context.Context, userID string, from, to models.Date) ([]models.Transaction, error) {
	return transactionsTable.selectWhere(ctx, m.db, squirrel.And{
		squirrel.Eq{"user_id": userID},
		squirrel.GtOrEq{"date": from},
		squirrel.LtOrEq{"date": to},
	})
}

// SelectExpensesBetween is SelectTransactionsBetween restricted to expenses.
func (m *PostgresMirror) SelectExpensesBetween(ctx context.Context, userID string, from, to models.Date) ([]models.Transaction, error) {
	return transactionsTable.selectWhere(ctx, m.db, squirrel.And{
		squirrel.Eq{"user_id": userID},
		squirrel.Eq{"type": string(models.TransactionExpense)},
		squirrel.GtOrEq{"date": from},
		squirrel.LtOrEq{"date": to},
	})
}

// InsertTransaction stores t and adds it to the materialized monthly summary
// in one remote transaction. Re-inserting a known id changes nothing.
func (m *PostgresMirror) InsertTransaction(ctx context.Context, t models.Transaction) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := transactionsTable.insert(ctx, tx, t)
		if err != nil || n == 0 {
			return err
		}
		income, expenses := summaryDelta(t)
		return m.incrementSummary(ctx, tx, t.UserID, t.Date.MonthName(), t.Date.Year(), income, expenses)
	})
}

// DeleteTransaction removes the transaction and subtracts it from its
// monthly summary. Deleting an unknown id changes nothing.
func (m *PostgresMirror) DeleteTransaction(ctx context.Context, id, userID string) error {
	query, args, err := squirrel.Delete(transactionsTable.name).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING amount, type, date").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var t models.Transaction
		err := tx.QueryRowContext(ctx, query, args...).Scan(&t.Amount, &t.Type, &t.Date)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to delete from transactions: %w", err)
		}
		income, expenses := summaryDelta(t)
		return m.incrementSummary(ctx, tx, userID, t.Date.MonthName(), t.Date.Year(), income.Neg(), expenses.Neg())
	})
}

func summaryDelta(t models.Transaction) (income, expenses decimal.Decimal) {
	if t.Type == models.TransactionIncome {
		return t.Amount, decimal.Zero
	}
	return decimal.Zero, t.Amount
}
