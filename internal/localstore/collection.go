package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/finhive/internal/dbx"
	"github.com/dmitrijs2005/finhive/internal/logging"
)

// ErrUnreadable marks a collection whose stored blob cannot be loaded or
// decoded.
var ErrUnreadable = errors.New("collection unreadable")

type collectionState struct {
	mu       sync.Mutex
	revision atomic.Uint64
}

// Collection is a typed view over the JSON array stored under one key.
// Collections created for the same key on the same DB share a write lock
// and a revision counter.
type Collection[T any] struct {
	key   string
	db    *DB
	state *collectionState
	log   logging.Logger
}

// NewCollection binds key on db to element type T.
func NewCollection[T any](db *DB, key string) *Collection[T] {
	return &Collection[T]{
		key:   key,
		db:    db,
		state: db.state(key),
		log:   db.log.With("collection", key),
	}
}

func (c *Collection[T]) Key() string { return c.key }

// Revision increases on every committed write. Readers use it to tell
// whether derived data is stale.
func (c *Collection[T]) Revision() uint64 {
	return c.state.revision.Load()
}

// Load returns every record in the collection. Missing, unreadable or
// malformed data yields an empty slice and a warning, never an error.
func (c *Collection[T]) Load(ctx context.Context) []T {
	items, err := c.read(ctx, c.db.sql)
	if err != nil {
		c.log.Warn(ctx, "collection unreadable, treating as empty", "error", err)
		return []T{}
	}
	return items
}

// Read is Load without the fallback: unreadable or malformed data is
// returned as an error wrapping ErrUnreadable.
func (c *Collection[T]) Read(ctx context.Context) ([]T, error) {
	return c.read(ctx, c.db.sql)
}

func (c *Collection[T]) read(ctx context.Context, q dbx.DBTX) ([]T, error) {
	raw, err := c.db.newStore(q).Load(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, c.key, err)
	}
	if len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, c.key, err)
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Save overwrites the whole collection, replacing whatever was stored,
// readable or not.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	if err := c.db.newStore(c.db.sql).Save(ctx, c.key, data); err != nil {
		return err
	}
	c.state.revision.Add(1)
	return nil
}

// MutateFunc receives the current records and an Enqueuer bound to the same
// transaction. It returns the new records and whether they changed.
type MutateFunc[T any] func(ctx context.Context, items []T, q Enqueuer) ([]T, bool, error)

// Mutate performs a read-modify-write under the collection lock. The new
// collection and any jobs enqueued by fn commit in one local transaction;
// an error from fn rolls both back. An unreadable collection is never
// overwritten: Mutate fails with ErrUnreadable before fn runs.
func (c *Collection[T]) Mutate(ctx context.Context, fn MutateFunc[T]) error {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	changed := false
	err := dbx.WithTx(ctx, c.db.sql, nil, func(ctx context.Context, tx dbx.DBTX) error {
		items, err := c.read(ctx, tx)
		if err != nil {
			return err
		}

		out, ch, err := fn(ctx, items, NewOutboxRepository(tx, c.db.now))
		if err != nil || !ch {
			return err
		}

		if out == nil {
			out = []T{}
		}
		data, err := json.Marshal(out)
		if err != nil {
			return err
		}
		if err := c.db.newStore(tx).Save(ctx, c.key, data); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return err
	}

	if changed {
		c.state.revision.Add(1)
	}
	return nil
}
