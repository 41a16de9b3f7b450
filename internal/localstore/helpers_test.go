package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestDB(t *testing.T, opts ...Option) (*DB, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2025, time.April, 17, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	db, err := Open(context.Background(), ":memory:", logging.Nop(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, clock
}
