package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (*AccountService, *fakeMirror, *localstore.DB) {
	t.Helper()
	clock := newTestClock()
	db := newTestDB(t, clock)
	m := newFakeMirror()
	return NewAccountService(db, m, logging.Nop(), clock.Now), m, db
}

func TestAccountService_AddAndGetAll(t *testing.T) {
	ctx := context.Background()
	svc, m, db := newAccountService(t)

	a, err := svc.Add(ctx, alice, NewAccount{Name: "Main", Type: models.AccountChecking, Balance: decimal.NewFromInt(25000)})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, alice, a.UserID)
	assert.Equal(t, models.SyncPending, a.SyncStatus)

	got := svc.GetAll(ctx, alice)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
	assert.True(t, got[0].Balance.Equal(decimal.NewFromInt(25000)))

	assert.Empty(t, m.calls, "local records are served without the mirror")
	assert.Empty(t, svc.GetAll(ctx, bob))
	assert.Equal(t, []string{"select accounts"}, m.calls)

	jobs := dueJobs(t, db)
	require.Len(t, jobs, 1)
	assert.Equal(t, "accounts.insert", jobs[0].Topic())
	assert.Equal(t, a.ID, jobs[0].RecordID)
	assert.Equal(t, alice, jobs[0].UserID)
}

func TestAccountService_AddValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, db := newAccountService(t)

	_, err := svc.Add(ctx, alice, NewAccount{Name: " ", Type: models.AccountChecking})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Add(ctx, alice, NewAccount{Name: "Card", Type: "wallet"})
	require.ErrorIs(t, err, common.ErrValidation)

	assert.Empty(t, svc.GetAll(ctx, alice))
	assert.Empty(t, dueJobs(t, db))
}

func TestAccountService_RemoteFallback(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newAccountService(t)
	m.accounts = []models.Account{
		{ID: "r1", UserID: alice, Name: "Remote", Type: models.AccountSavings, Balance: decimal.NewFromInt(10)},
		{ID: "r2", UserID: bob, Name: "Other", Type: models.AccountSavings},
	}

	got := svc.GetAll(ctx, alice)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, models.SyncSynced, got[0].SyncStatus)

	// Served from the local copy from now on.
	m.setDown(true)
	got = svc.GetAll(ctx, alice)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
}

func TestAccountService_RemoteFailureIsEmpty(t *testing.T) {
	svc, m, _ := newAccountService(t)
	m.setDown(true)
	assert.Empty(t, svc.GetAll(context.Background(), alice))
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _, db := newAccountService(t)

	a, err := svc.Add(ctx, alice, NewAccount{Name: "Main", Type: models.AccountChecking})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, a.ID, bob)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, svc.GetAll(ctx, alice), 1)

	removed, err = svc.Delete(ctx, a.ID, alice)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, svc.GetAll(ctx, alice))

	var topics []string
	for _, j := range dueJobs(t, db) {
		topics = append(topics, j.Topic())
	}
	// Only the oldest pending job per record is due.
	assert.Equal(t, []string{"accounts.insert"}, topics)
}

func TestAccountService_Primary(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountService(t)

	_, ok := svc.Primary(ctx, alice)
	assert.False(t, ok)

	_, err := svc.Add(ctx, alice, NewAccount{Name: "Savings", Type: models.AccountSavings})
	require.NoError(t, err)
	checking, err := svc.Add(ctx, alice, NewAccount{Name: "Daily", Type: models.AccountChecking})
	require.NoError(t, err)

	got, ok := svc.Primary(ctx, alice)
	require.True(t, ok)
	assert.Equal(t, checking.ID, got.ID)
}
