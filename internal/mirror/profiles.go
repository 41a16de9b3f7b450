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

var profileColumns = []string{"id", "first_name", "last_name", "phone_number", "avatar_url", "is_premium", "created_at", "updated_at"}

const upsertProfileSuffix = `ON CONFLICT (id) DO UPDATE SET
	first_name = EXCLUDED.first_name,
	last_name = EXCLUDED.last_name,
	phone_number = EXCLUDED.phone_number,
	avatar_url = EXCLUDED.avatar_url,
	is_premium = EXCLUDED.is_premium,
	updated_at = EXCLUDED.updated_at`

// SelectProfile returns common.ErrNotFound when no profile row exists.
func (m *PostgresMirror) SelectProfile(ctx context.Context, id string) (models.UserProfile, error) {
	query, args, err := squirrel.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.UserProfile{}, err
	}

	var p models.UserProfile
	err = m.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.AvatarURL, &p.IsPremium, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, common.ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to select profile: %w", err)
	}
	return p, nil
}

// UpsertProfile writes every profile field; the local record is the source.
func (m *PostgresMirror) UpsertProfile(ctx context.Context, p models.UserProfile) error {
	query, args, err := squirrel.Insert("profiles").
		Columns(profileColumns...).
		Values(p.ID, p.FirstName, p.LastName, p.PhoneNumber, p.AvatarURL, p.IsPremium, p.CreatedAt, p.UpdatedAt).
		Suffix(upsertProfileSuffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
