package mirror

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/dbx"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var summariesTable = table[models.MonthlySummary]{
	name:    "monthly_summaries",
	columns: []string{"id", "user_id", "month", "year", "income", "expenses", "created_at", "updated_at"},
	orderBy: "year",
	values: func(s models.MonthlySummary) []any {
		return []any{s.ID, s.UserID, s.Month, s.Year, s.Income, s.Expenses, s.CreatedAt, s.UpdatedAt}
	},
	scan: func(s rowScanner) (models.MonthlySummary, error) {
		var ms models.MonthlySummary
		err := s.Scan(&ms.ID, &ms.UserID, &ms.Month, &ms.Year, &ms.Income, &ms.Expenses, &ms.CreatedAt, &ms.UpdatedAt)
		return ms, err
	},
}

const incrementSuffix = `ON CONFLICT (user_id, month, year) DO UPDATE SET
	income = monthly_summaries.income + EXCLUDED.income,
	expenses = monthly_summaries.expenses + EXCLUDED.expenses,
	updated_at = EXCLUDED.updated_at`

func (m *PostgresMirror) SelectMonthlySummaries(ctx context.Context, userID string) ([]models.MonthlySummary, error) {
	return summariesTable.selectByUser(ctx, m.db, userID)
}

// SelectMonthlySummary returns common.ErrNotFound when the month has no row.
func (m *PostgresMirror) SelectMonthlySummary(ctx context.Context, userID, month string, year int) (models.MonthlySummary, error) {
	items, err := summariesTable.selectWhere(ctx, m.db, squirrel.And{
		squirrel.Eq{"user_id": userID},
		squirrel.Eq{"month": month},
		squirrel.Eq{"year": year},
	})
	if err != nil {
		return models.MonthlySummary{}, err
	}
	if len(items) == 0 {
		return models.MonthlySummary{}, common.ErrNotFound
	}
	return items[0], nil
}

// IncrementMonthlySummary adds the deltas to the (user, month, year) row,
// creating it when missing.
func (m *PostgresMirror) IncrementMonthlySummary(ctx context.Context, userID, month string, year int, income, expenses decimal.Decimal) error {
	return m.incrementSummary(ctx, m.db, userID, month, year, income, expenses)
}

func (m *PostgresMirror) incrementSummary(ctx context.Context, db dbx.DBTX, userID, month string, year int, income, expenses decimal.Decimal) error {
	now := m.now()
	query, args, err := squirrel.Insert(summariesTable.name).
		Columns(summariesTable.columns...).
		Values(uuid.NewString(), userID, month, year, income, expenses, now, now).
		Suffix(incrementSuffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update monthly summary: %w", err)
	}
	return nil
}
