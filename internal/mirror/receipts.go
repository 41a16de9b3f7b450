package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/models"
)

var receiptsTable = table[models.Receipt]{
	name: "receipts",
	columns: []string{"id", "user_id", "title", "amount", "date", "category", "notes",
		"file_name", "file_type", "file_size", "file_url", "created_at", "updated_at"},
	orderBy: "date DESC",
	values: func(r models.Receipt) []any {
		return []any{r.ID, r.UserID, r.Title, r.Amount, r.Date, r.Category, r.Notes,
			r.FileName, r.FileType, r.FileSize, r.FileURL, r.CreatedAt, r.UpdatedAt}
	},
	scan: func(s rowScanner) (models.Receipt, error) {
		var r models.Receipt
		err := s.Scan(&r.ID, &r.UserID, &r.Title, &r.Amount, &r.Date, &r.Category, &r.Notes,
			&r.FileName, &r.FileType, &r.FileSize, &r.FileURL, &r.CreatedAt, &r.UpdatedAt)
		return r, err
	},
}

func (m *PostgresMirror) SelectReceipts(ctx context.Context, userID string) ([]models.Receipt, error) {
	return receiptsTable.selectByUser(ctx, m.db, userID)
}

// SelectReceipt returns common.ErrNotFound when the user owns no such receipt.
func (m *PostgresMirror) SelectReceipt(ctx context.Context, id, userID string) (models.Receipt, error) {
	items, err := receiptsTable.selectWhere(ctx, m.db, squirrel.And{
		squirrel.Eq{"id": id},
		squirrel.Eq{"user_id": userID},
	})
	if err != nil {
		return models.Receipt{}, err
	}
	if len(items) == 0 {
		return models.Receipt{}, common.ErrNotFound
	}
	return items[0], nil
}

func (m *PostgresMirror) InsertReceipt(ctx context.Context, r models.Receipt) error {
	_, err := receiptsTable.insert(ctx, m.db, r)
	return err
}

func (m *PostgresMirror) DeleteReceipt(ctx context.Context, id, userID string) (string, error) {
	query, args, err := squirrel.Delete(receiptsTable.name).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING file_url").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", err
	}

	var fileURL string
	err = m.db.QueryRowContext(ctx, query, args...).Scan(&fileURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to delete from receipts: %w", err)
	}
	return fileURL, nil
}
