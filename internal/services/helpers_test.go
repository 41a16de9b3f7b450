package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
	"github.com/stretchr/testify/require"
)

const (
	alice = "alice"
	bob   = "bob"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, time.April, 17, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestDB(t *testing.T, clock *testClock) *localstore.DB {
	t.Helper()
	db, err := localstore.Open(context.Background(), ":memory:", logging.Nop(), localstore.WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func dueJobs(t *testing.T, db *localstore.DB) []localstore.Job {
	t.Helper()
	jobs, err := db.Outbox().Due(context.Background(), 100)
	require.NoError(t, err)
	return jobs
}

var errRemoteDown = errors.New("remote down")

// fakeMirror keeps remote rows in memory. Methods it does not override come
// from mirror.Disabled.
type fakeMirror struct {
	mirror.Disabled

	mu           sync.Mutex
	down         bool
	accounts     []models.Account
	transactions []models.Transaction
	receipts     []models.Receipt
	profiles     map[string]models.UserProfile
	goals        []models.SavingsGoal
	holdings     []models.CurrencyHolding
	contacts     []models.Contact
	calls        []string
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{profiles: make(map[string]models.UserProfile)}
}

func (f *fakeMirror) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.down {
		return errRemoteDown
	}
	return nil
}

func (f *fakeMirror) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *fakeMirror) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return common.ErrMirrorUnavailable
	}
	return nil
}

func owned[T models.Record](items []T, userID string) []T {
	var out []T
	for _, it := range items {
		if it.OwnerID() == userID {
			out = append(out, it)
		}
	}
	return out
}

func without[T models.Record](items []T, id, userID string) []T {
	var out []T
	for _, it := range items {
		if it.RecordID() == id && it.OwnerID() == userID {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (f *fakeMirror) SelectAccounts(_ context.Context, userID string) ([]models.Account, error) {
	if err := f.record("select accounts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return owned(f.accounts, userID), nil
}

func (f *fakeMirror) InsertAccount(_ context.Context, a models.Account) error {
	if err := f.record("insert account " + a.ID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = append(f.accounts, a)
	return nil
}

func (f *fakeMirror) DeleteAccount(_ context.Context, id, userID string) error {
	if err := f.record("delete account " + id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = without(f.accounts, id, userID)
	return nil
}

func (f *fakeMirror) SelectTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	if err := f.record("select transactions"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return owned(f.transactions, userID), nil
}

func (f *fakeMirror) InsertTransaction(_ context.Context, t models.Transaction) error {
	if err := f.record("insert transaction " + t.ID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeMirror) DeleteTransaction(_ context.Context, id, userID string) error {
	if err := f.record("delete transaction " + id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions = without(f.transactions, id, userID)
	return nil
}

func (f *fakeMirror) SelectReceipts(_ context.Context, userID string) ([]models.Receipt, error) {
	if err := f.record("select receipts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return owned(f.receipts, userID), nil
}

func (f *fakeMirror) SelectReceipt(_ context.Context, id, userID string) (models.Receipt, error) {
	if err := f.record("select receipt " + id); err != nil {
		return models.Receipt{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.receipts {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return models.Receipt{}, common.ErrNotFound
}

func (f *fakeMirror) InsertReceipt(_ context.Context, r models.Receipt) error {
	if err := f.record("insert receipt " + r.ID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.receipts = append(f.receipts, r)
	return nil
}

func (f *fakeMirror) DeleteReceipt(_ context.Context, id, userID string) (string, error) {
	if err := f.record("delete receipt " + id); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	url := ""
	for _, r := range f.receipts {
		if r.ID == id && r.UserID == userID {
			url = r.FileURL
		}
	}
	f.receipts = without(f.receipts, id, userID)
	return url, nil
}

func (f *fakeMirror) SelectProfile(_ context.Context, id string) (models.UserProfile, error) {
	if err := f.record("select profile"); err != nil {
		return models.UserProfile{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return models.UserProfile{}, common.ErrNotFound
	}
	return p, nil
}

func (f *fakeMirror) UpsertProfile(_ context.Context, p models.UserProfile) error {
	if err := f.record("upsert profile " + p.ID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeMirror) SelectGoals(_ context.Context, userID string) ([]models.SavingsGoal, error) {
	if err := f.record("select goals"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return owned(f.goals, userID), nil
}

func (f *fakeMirror) SelectHoldings(_ context.Context, userID string) ([]models.CurrencyHolding, error) {
	if err := f.record("select holdings"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return owned(f.holdings, userID), nil
}

func (f *fakeMirror) InsertHolding(_ context.Context, h models.CurrencyHolding) error {
	if err := f.record("insert holding " + h.ID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holdings = append(f.holdings, h)
	return nil
}

func (f *fakeMirror) DeleteHolding(_ context.Context, id, userID string) error {
	if err := f.record("delete holding " + id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holdings = without(f.holdings, id, userID)
	return nil
}

func (f *fakeMirror) SelectContacts(_ context.Context, userID string) ([]models.Contact, error) {
	if err := f.record("select contacts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return owned(f.contacts, userID), nil
}

func (f *fakeMirror) InsertContact(_ context.Context, c models.Contact) error {
	if err := f.record("insert contact " + c.ID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, c)
	return nil
}

func (f *fakeMirror) DeleteContact(_ context.Context, id, userID string) error {
	if err := f.record("delete contact " + id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = without(f.contacts, id, userID)
	return nil
}

// fakeBlobs is an in-memory object store using "mem://" URLs.
type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
	calls   []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (b *fakeBlobs) URL(key string) string { return "mem://" + key }

func (b *fakeBlobs) KeyFromURL(url string) (string, bool) {
	const prefix = "mem://"
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return "", false
	}
	return url[len(prefix):], true
}

func (b *fakeBlobs) Put(_ context.Context, key, contentType string, body []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "put "+key)
	if b.putErr != nil {
		return b.putErr
	}
	b.objects[key] = body
	b.types[key] = contentType
	return nil
}

func (b *fakeBlobs) PresignGet(_ context.Context, key string) (string, error) {
	return "https://signed.example/" + key, nil
}

func (b *fakeBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "delete "+key)
	delete(b.objects, key)
	return nil
}
