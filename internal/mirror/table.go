package mirror

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/finhive/internal/dbx"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// table describes how one record type maps onto its remote table.
type table[T any] struct {
	name    string
	columns []string
	orderBy string
	values  func(T) []any
	scan    func(rowScanner) (T, error)
}

func (t table[T]) selectWhere(ctx context.Context, db dbx.DBTX, pred squirrel.Sqlizer) ([]T, error) {
	q := squirrel.Select(t.columns...).
		From(t.name).
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)
	if t.orderBy != "" {
		q = q.OrderBy(t.orderBy)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", t.name, err)
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", t.name, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (t table[T]) selectByUser(ctx context.Context, db dbx.DBTX, userID string) ([]T, error) {
	return t.selectWhere(ctx, db, squirrel.Eq{"user_id": userID})
}

// insert adds item unless a row with the same id exists and returns the
// number of rows written.
func (t table[T]) insert(ctx context.Context, db dbx.DBTX, item T) (int64, error) {
	query, args, err := squirrel.Insert(t.name).
		Columns(t.columns...).
		Values(t.values(item)...).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// delete removes the row matching both id and userID. A missing row is not
// an error.
func (t table[T]) delete(ctx context.Context, db dbx.DBTX, id, userID string) error {
	query, args, err := squirrel.Delete(t.name).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.name, err)
	}
	return nil
}
