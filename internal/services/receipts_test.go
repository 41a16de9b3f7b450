package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceiptService(t *testing.T, blobs Blobs) (*ReceiptService, *fakeMirror, *localstore.DB) {
	t.Helper()
	clock := newTestClock()
	db := newTestDB(t, clock)
	m := newFakeMirror()
	return NewReceiptService(db, m, blobs, logging.Nop(), clock.Now), m, db
}

func sampleReceipt() NewReceipt {
	return NewReceipt{
		Title:    "Groceries",
		Amount:   decimal.RequireFromString("842.50"),
		Category: "Food",
		FileName: "bill.png",
		FileType: "image/png",
		Data:     []byte("\x89PNG fake"),
	}
}

func TestReceiptService_AddInlinesFile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newReceiptService(t, nil)

	r, err := svc.Add(ctx, alice, sampleReceipt())
	require.NoError(t, err)
	assert.Equal(t, int64(len("\x89PNG fake")), r.FileSize)
	assert.True(t, strings.HasPrefix(r.FileURL, "data:image/png;base64,"))
	assert.Equal(t, "2025-04-17", r.Date.String())

	ct, data, err := svc.File(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, []byte("\x89PNG fake"), data)

	_, _, err = svc.File(ctx, r.ID, bob)
	require.ErrorIs(t, err, common.ErrNotFound)

	noFile := sampleReceipt()
	noFile.Data = nil
	r2, err := svc.Add(ctx, alice, noFile)
	require.NoError(t, err)
	_, _, err = svc.File(ctx, r2.ID, alice)
	require.ErrorIs(t, err, common.ErrNotFound)

	bad := sampleReceipt()
	bad.Title = ""
	_, err = svc.Add(ctx, alice, bad)
	require.ErrorIs(t, err, common.ErrValidation)
}

func insertJob(t *testing.T, db *localstore.DB, id string) localstore.Job {
	t.Helper()
	for _, j := range dueJobs(t, db) {
		if j.RecordID == id {
			return j
		}
	}
	t.Fatalf("no job for %s", id)
	return localstore.Job{}
}

func TestReceiptService_ApplyUploadsFile(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobs()
	svc, m, db := newReceiptService(t, blobs)

	r, err := svc.Add(ctx, alice, sampleReceipt())
	require.NoError(t, err)

	require.NoError(t, svc.Apply(ctx, insertJob(t, db, r.ID)))

	wantKey := "receipts/alice/2025/04/17/" + r.ID + "-bill.png"
	assert.Equal(t, []byte("\x89PNG fake"), blobs.objects[wantKey])
	assert.Equal(t, "image/png", blobs.types[wantKey])
	require.Len(t, m.receipts, 1)
	assert.Equal(t, "mem://"+wantKey, m.receipts[0].FileURL)

	url, err := svc.RemoteURL(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/"+wantKey, url)

	// The local copy keeps the inline file.
	_, data, err := svc.File(ctx, r.ID, alice)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestReceiptService_ApplyUploadFailure(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobs()
	blobs.putErr = errors.New("s3 down")
	svc, m, db := newReceiptService(t, blobs)

	r, err := svc.Add(ctx, alice, sampleReceipt())
	require.NoError(t, err)

	require.EqualError(t, svc.Apply(ctx, insertJob(t, db, r.ID)), "s3 down")
	assert.Empty(t, m.receipts, "the row is not inserted without its file")
}

func TestReceiptService_WithoutBlobStore(t *testing.T) {
	ctx := context.Background()
	svc, m, db := newReceiptService(t, nil)

	r, err := svc.Add(ctx, alice, sampleReceipt())
	require.NoError(t, err)
	require.NoError(t, svc.Apply(ctx, insertJob(t, db, r.ID)))

	require.Len(t, m.receipts, 1)
	assert.Empty(t, m.receipts[0].FileURL)

	_, err = svc.RemoteURL(ctx, r.ID, alice)
	require.ErrorIs(t, err, common.ErrBlobStoreDisabled)
}

func TestReceiptService_DeleteRemote(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobs()
	svc, m, db := newReceiptService(t, blobs)

	r, err := svc.Add(ctx, alice, sampleReceipt())
	require.NoError(t, err)
	require.NoError(t, svc.Apply(ctx, insertJob(t, db, r.ID)))

	removed, err := svc.Delete(ctx, r.ID, alice)
	require.NoError(t, err)
	require.True(t, removed)

	job := localstore.Job{Collection: models.KeyReceipts, Action: localstore.ActionDelete, RecordID: r.ID, UserID: alice}
	require.NoError(t, svc.Apply(ctx, job))

	assert.Empty(t, m.receipts)
	assert.Empty(t, blobs.objects)
	key := "receipts/alice/2025/04/17/" + r.ID + "-bill.png"
	assert.Equal(t, []string{"put " + key, "delete " + key}, blobs.calls)

	// Replays are harmless.
	require.NoError(t, svc.Apply(ctx, job))
}

func TestReceiptService_RemoteURLNotFound(t *testing.T) {
	svc, _, _ := newReceiptService(t, newFakeBlobs())
	_, err := svc.RemoteURL(context.Background(), "missing", alice)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestReceiptService_FileOfMirroredReceipt(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newReceiptService(t, newFakeBlobs())

	orig := download
	t.Cleanup(func() { download = orig })
	var fetched string
	download = func(_ context.Context, url string) ([]byte, error) {
		fetched = url
		if strings.HasSuffix(url, "gone.png") {
			return nil, errors.New("404 Not Found")
		}
		return []byte("remote png"), nil
	}

	m.receipts = []models.Receipt{
		{ID: "r1", UserID: alice, Title: "Fuel", Date: models.NewDate(2025, 4, 2), FileType: "image/png", FileName: "fuel.png", FileURL: "mem://receipts/alice/fuel.png"},
		{ID: "r2", UserID: alice, Title: "Lost", Date: models.NewDate(2025, 4, 3), FileType: "image/png", FileName: "gone.png", FileURL: "mem://receipts/alice/gone.png"},
	}
	require.Len(t, svc.GetAll(ctx, alice), 2)

	ct, data, err := svc.File(ctx, "r1", alice)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, []byte("remote png"), data)
	assert.Equal(t, "https://signed.example/receipts/alice/fuel.png", fetched)

	_, _, err = svc.File(ctx, "r2", alice)
	require.ErrorContains(t, err, "failed to download receipt r2: 404 Not Found")
}

func TestDataURI(t *testing.T) {
	uri := encodeDataURI("", []byte("hello"))
	assert.Equal(t, "data:application/octet-stream;base64,aGVsbG8=", uri)

	ct, data, err := decodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", ct)
	assert.Equal(t, []byte("hello"), data)

	for _, bad := range []string{"s3://b/k", "data:text/plain,hello", "data:text/plain;base64"} {
		_, _, err := decodeDataURI(bad)
		assert.ErrorIs(t, err, errNotDataURI, bad)
	}
	_, _, err = decodeDataURI("data:text/plain;base64,!!!")
	assert.Error(t, err)
}
