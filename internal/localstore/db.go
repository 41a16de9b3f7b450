package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/finhive/internal/dbx"
	"github.com/dmitrijs2005/finhive/internal/filex"
	"github.com/dmitrijs2005/finhive/internal/localstore/migrations"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/timex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// migrateUp is a seam for testing.
var migrateUp = func(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// RunMigrations applies the embedded local schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, goose.DialectSQLite3, migrations.Migrations)
}

// DB owns the SQLite handle and the per-collection write locks.
type DB struct {
	sql      *sql.DB
	now      timex.Clock
	log      logging.Logger
	newStore func(dbx.DBTX) Store

	mu     sync.Mutex
	states map[string]*collectionState
}

// Option customizes a DB.
type Option func(*DB)

// WithClock sets the clock used for outbox timestamps.
func WithClock(c timex.Clock) Option {
	return func(d *DB) { d.now = c }
}

// WithStore replaces the collection store factory.
func WithStore(f func(dbx.DBTX) Store) Option {
	return func(d *DB) { d.newStore = f }
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
// The handle is limited to one connection: SQLite serializes writers anyway,
// and ":memory:" databases exist per connection.
func Open(ctx context.Context, dsn string, log logging.Logger, opts ...Option) (*DB, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("failed to prepare local store directory: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return New(db, log, opts...), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, log logging.Logger, opts ...Option) *DB {
	d := &DB{
		sql:      db,
		now:      timex.SystemClock,
		log:      logging.ForModule(log, "localstore"),
		newStore: func(q dbx.DBTX) Store { return NewSQLiteStore(q) },
		states:   make(map[string]*collectionState),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Outbox returns the outbox repository bound to the main handle.
func (d *DB) Outbox() *OutboxRepository {
	return NewOutboxRepository(d.sql, d.now)
}

func (d *DB) state(key string) *collectionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.states[key]
	if !ok {
		st = &collectionState{}
		d.states[key] = st
	}
	return st
}
