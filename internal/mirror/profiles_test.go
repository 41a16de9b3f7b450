package mirror

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectProfile(t *testing.T) {
	m, mock, _ := newMirrorWithMock(t)

	mock.ExpectQuery(`^SELECT id, first_name, last_name, phone_number, avatar_url, is_premium, created_at, updated_at FROM profiles WHERE id = \$1$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow("u1", "Asha", nil, nil, nil, true, testNow, testNow))

	p, err := m.SelectProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, p.FirstName)
	assert.Equal(t, "Asha", *p.FirstName)
	assert.Nil(t, p.LastName)
	require.NotNil(t, p.IsPremium)
	assert.True(t, *p.IsPremium)
}

func TestSelectProfile_NotFound(t *testing.T) {
	m, mock, _ := newMirrorWithMock(t)

	mock.ExpectQuery(`FROM profiles`).WillReturnRows(sqlmock.NewRows(profileColumns))

	_, err := m.SelectProfile(context.Background(), "u1")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpsertProfile(t *testing.T) {
	m, mock, _ := newMirrorWithMock(t)

	name := "Asha"
	mock.ExpectExec(`(?s)^INSERT INTO profiles .* ON CONFLICT \(id\) DO UPDATE SET.*first_name = EXCLUDED\.first_name`).
		WithArgs("u1", "Asha", nil, nil, nil, nil, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := m.UpsertProfile(context.Background(), models.UserProfile{ID: "u1", FirstName: &name, CreatedAt: testNow, UpdatedAt: testNow})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertProfile_Error(t *testing.T) {
	m, mock, _ := newMirrorWithMock(t)

	mock.ExpectExec(`INSERT INTO profiles`).WillReturnError(errors.New("db down"))

	err := m.UpsertProfile(context.Background(), models.UserProfile{ID: "u1"})
	require.ErrorContains(t, err, "failed to upsert profile: db down")
}
