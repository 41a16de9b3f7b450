package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/finhive/internal/analytics"
	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/outbox"
	"github.com/dmitrijs2005/finhive/internal/services"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSyncer struct {
	status  outbox.Status
	result  outbox.Result
	syncErr error
	syncs   int
}

func (f *fakeSyncer) Sync(context.Context) (outbox.Result, error) {
	f.syncs++
	return f.result, f.syncErr
}

func (f *fakeSyncer) Status(context.Context) (outbox.Status, error) {
	return f.status, nil
}

type testEnv struct {
	app    *App
	out    *bytes.Buffer
	svc    *services.Services
	syncer *fakeSyncer
}

func newTestEnv(t *testing.T, script string) *testEnv {
	t.Helper()
	capturePrintln(t)

	now := timex.Fixed(time.Date(2025, time.April, 17, 12, 0, 0, 0, time.UTC))
	log := logging.Nop()
	db, err := localstore.Open(context.Background(), ":memory:", log, localstore.WithClock(now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := mirror.Disabled{}
	svc := services.New(db, m, nil, log, now)
	engine := analytics.NewEngine(svc.Transactions, svc.Accounts, svc.Holdings, m, log, now)

	env := &testEnv{out: &bytes.Buffer{}, svc: svc, syncer: &fakeSyncer{}}
	env.app = NewApp("alice", svc, engine, env.syncer, log, WithIO(strings.NewReader(script), env.out), WithPrompt(false))
	return env
}

func lines(s ...string) string { return strings.Join(s, "\n") + "\n" }

func TestNewApp_RequiresIO(t *testing.T) {
	assert.Panics(t, func() { NewApp("alice", nil, nil, nil, logging.Nop()) })
}

func TestApp_AccountsFlow(t *testing.T) {
	env := newTestEnv(t, lines(
		"accounts",
		"addaccount", "Main", "Checking", "1234567", "Visa", "4242",
		"addaccount", "", "checking", "1", "", "",
		"accounts",
		"primary",
		"exit",
	))
	env.app.Run(context.Background())

	out := env.out.String()
	assert.Contains(t, out, "No accounts.")
	assert.Contains(t, out, "Account added:")
	assert.Contains(t, out, "₹12,34,567.00")
	assert.Contains(t, out, "Visa *4242")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "Main (")

	require.Len(t, env.svc.Accounts.GetAll(context.Background(), "alice"), 1)
}

func TestApp_TransactionsAndReports(t *testing.T) {
	env := newTestEnv(t, lines(
		"addtx", "income", "5000", "Salary", "2025-04-01", "April pay", "",
		"addtx", "expense", "1,200", "Food", "2025-04-03", "Groceries", "",
		"addtx", "expense", "10", "", "", "Coffee", "",
		"tx",
		"month",
		"summary",
		"breakdown",
		"balance",
		"change",
		"exit",
	))
	env.app.Run(context.Background())

	out := env.out.String()
	assert.Equal(t, 3, strings.Count(out, "Transaction added:"))
	assert.Contains(t, out, "Uncategorized")
	assert.Contains(t, out, "2025-04-17")
	assert.Contains(t, out, "Income:   ₹5,000.00")
	assert.Contains(t, out, "Expenses: ₹1,210.00")
	assert.Contains(t, out, "Net:      ₹3,790.00")
	assert.Contains(t, out, "Apr 2025")
	assert.Contains(t, out, "#FFAA33")
	assert.Contains(t, out, "Total balance:    ₹3,790.00")
	assert.Contains(t, out, "Change vs last month: +100%")
}

func TestApp_TransactionInputErrors(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	env.app.in = rdr(lines("transfer", "10", "", "", "", ""))
	require.ErrorIs(t, env.app.Exec(ctx, "addtx", nil), common.ErrValidation)

	env.app.in = rdr(lines("income", "ten"))
	require.ErrorContains(t, env.app.Exec(ctx, "addtx", nil), `invalid amount "ten"`)

	env.app.in = rdr(lines("income", "10", "", "17/04/2025"))
	require.ErrorIs(t, env.app.Exec(ctx, "addtx", nil), common.ErrValidation)

	require.ErrorContains(t, env.app.Exec(ctx, "tx", []string{"0"}), `invalid limit "0"`)
}

func TestApp_ReceiptFile(t *testing.T) {
	origRead, origWrite := readFile, writeFile
	t.Cleanup(func() { readFile, writeFile = origRead, origWrite })

	png := []byte("\x89PNG\r\n\x1a\nrest")
	readFile = func(name string) ([]byte, error) {
		if name == "/scans/bill" {
			return png, nil
		}
		return nil, os.ErrNotExist
	}
	written := map[string][]byte{}
	writeFile = func(name string, data []byte, _ os.FileMode) error {
		written[name] = data
		return nil
	}

	env := newTestEnv(t, lines(
		"addreceipt", "Dinner", "850", "Food", "2025-04-10", "team", "/scans/bill",
		"addreceipt", "Taxi", "120", "Transport", "", "", "",
		"addreceipt", "Lost", "1", "Other", "", "", "/scans/missing",
		"receipts",
		"exit",
	))
	env.app.Run(context.Background())

	out := env.out.String()
	assert.Equal(t, 2, strings.Count(out, "Receipt added:"))
	assert.Contains(t, out, "bill (12 B)")

	ctx := context.Background()
	receipts := env.svc.Receipts.GetAll(ctx, "alice")
	require.Len(t, receipts, 2)
	var withFile, without string
	for _, r := range receipts {
		if r.FileName != "" {
			withFile = r.ID
			assert.Equal(t, "image/png", r.FileType)
		} else {
			without = r.ID
		}
	}

	require.NoError(t, env.app.Exec(ctx, "getreceipt", []string{withFile, "out.png"}))
	assert.Equal(t, png, written["out.png"])

	require.ErrorIs(t, env.app.Exec(ctx, "getreceipt", []string{without, "x"}), common.ErrNotFound)
	require.ErrorIs(t, env.app.Exec(ctx, "receipturl", []string{withFile}), common.ErrBlobStoreDisabled)

	env.out.Reset()
	require.NoError(t, env.app.Exec(ctx, "delreceipt", []string{without}))
	require.NoError(t, env.app.Exec(ctx, "delreceipt", []string{without}))
	assert.Equal(t, "Receipt deleted.\nNo such receipt.\n", env.out.String())
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", contentType("a.pdf", nil))
	assert.Equal(t, "image/png", contentType("scan", []byte("\x89PNG\r\n\x1a\n")))
	assert.Equal(t, "text/plain; charset=utf-8", contentType("notes", []byte("hello")))
}

func TestApp_HoldingsAndContacts(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	require.NoError(t, env.app.Exec(ctx, "addholding", []string{"usd", "100"}))
	require.NoError(t, env.app.Exec(ctx, "addholding", []string{"gbp", "2.5"}))
	require.Error(t, env.app.Exec(ctx, "addholding", []string{"usd", "x"}))
	require.NoError(t, env.app.Exec(ctx, "addcontact", []string{"Ravi", "Kumar"}))

	env.out.Reset()
	require.NoError(t, env.app.Exec(ctx, "currencies", nil))
	assert.Contains(t, env.out.String(), "$100")
	assert.Contains(t, env.out.String(), "₹8,350.00")
	assert.Contains(t, env.out.String(), "£2.5")
	assert.Contains(t, env.out.String(), "₹267.00")

	env.out.Reset()
	require.NoError(t, env.app.Exec(ctx, "contacts", nil))
	assert.Contains(t, env.out.String(), "Ravi Kumar")

	contacts := env.svc.Contacts.GetAll(ctx, "alice")
	require.Len(t, contacts, 1)
	env.out.Reset()
	require.NoError(t, env.app.Exec(ctx, "delcontact", []string{contacts[0].ID}))
	assert.Equal(t, "Contact deleted.\n", env.out.String())

	env.out.Reset()
	require.NoError(t, env.app.Exec(ctx, "goals", nil))
	assert.Equal(t, "No savings goals.\n", env.out.String())
}

func TestApp_ProfileAndPreferences(t *testing.T) {
	env := newTestEnv(t, lines(
		"profile",
		"setprofile", "Asha", "", "+91 98765 43210", "",
		"profile",
		"prefs",
		"setprefs", "usd", "", "n", "y",
		"prefs",
		"setprefs", "zzz", "", "", "",
		"exit",
	))
	env.app.Run(context.Background())

	out := env.out.String()
	assert.Contains(t, out, "No profile yet.")
	assert.Contains(t, out, "Profile saved.")
	assert.Contains(t, out, "Name:    Asha")
	assert.Contains(t, out, "Phone:   +91 98765 43210")
	assert.Contains(t, out, "Currency:            INR")
	assert.Contains(t, out, "Preferences saved.")

	p := env.svc.Settings.Preferences(context.Background(), "alice")
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "DD/MM/YYYY", p.DateFormat)
	assert.False(t, p.EmailNotifications)
	assert.True(t, p.PushNotifications)
}

func TestApp_StatusAndSync(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	env.syncer.status = outbox.Status{Online: true, Pending: 2, Done: 5}
	assert.Equal(t, "(alice online, 2 pending)", env.app.status(ctx))
	require.NoError(t, env.app.Exec(ctx, "status", nil))
	assert.Contains(t, env.out.String(), "Mirror:  online")

	env.out.Reset()
	env.syncer.result = outbox.Result{Done: 2}
	require.NoError(t, env.app.Exec(ctx, "sync", nil))
	assert.Equal(t, "Synced 2, retrying 0, failed 0.\n", env.out.String())

	env.out.Reset()
	env.syncer.syncErr = common.ErrMirrorUnavailable
	require.NoError(t, env.app.Exec(ctx, "sync", nil))
	assert.Equal(t, "Mirror unavailable, changes stay queued.\n", env.out.String())

	env.syncer.syncErr = errors.New("disk full")
	require.ErrorContains(t, env.app.Exec(ctx, "sync", nil), "disk full")
	assert.Equal(t, 3, env.syncer.syncs)

	env.syncer.status = outbox.Status{}
	assert.Equal(t, "(alice offline)", env.app.status(ctx))
}

func TestApp_UserSwitchAndDispatch(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	require.NoError(t, env.app.Exec(ctx, "addcontact", []string{"Ravi"}))
	require.NoError(t, env.app.Exec(ctx, "user", []string{"bob"}))
	assert.Equal(t, "bob", env.app.user)

	env.out.Reset()
	require.NoError(t, env.app.Exec(ctx, "contacts", nil))
	assert.Equal(t, "No contacts.\n", env.out.String())

	require.ErrorIs(t, env.app.Exec(ctx, "nope", nil), errUnknownCommand)
	require.EqualError(t, env.app.Exec(ctx, "delaccount", nil), "usage: delaccount <id>")

	help := env.app.Help()
	assert.Contains(t, help, "addholding <code> <amount>")
	assert.Contains(t, help, "exit | quit")
}

func TestApp_LogLevel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")

	require.EqualError(t, env.app.Exec(ctx, "loglevel", nil), "log level cannot be changed at runtime")

	var logs bytes.Buffer
	log, err := logging.New(&logs, "info", logging.FormatText)
	require.NoError(t, err)
	env.app.log = logging.ForModule(log, "cli")

	require.NoError(t, env.app.Exec(ctx, "loglevel", nil))
	require.NoError(t, env.app.Exec(ctx, "loglevel", []string{"debug"}))
	assert.Contains(t, env.out.String(), "Log level: info\n")
	assert.Contains(t, env.out.String(), "Log level: debug\n")

	log.Debug(ctx, "visible now")
	assert.Contains(t, logs.String(), "visible now")

	require.ErrorIs(t, env.app.Exec(ctx, "loglevel", []string{"chatty"}), common.ErrValidation)
}
