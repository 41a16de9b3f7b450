package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/finhive/internal/common"
	"github.com/dmitrijs2005/finhive/internal/mirror/migrations"
	"github.com/dmitrijs2005/finhive/internal/timex"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// migrateUp is a seam for testing. It applies every pending migration in
// fsys through a goose provider scoped to db.
var migrateUp = func(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	_, err = p.Up(ctx)
	return err
}

// RunMigrations applies the embedded mirror schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, goose.DialectPostgres, migrations.Migrations)
}

// PostgresMirror implements Mirror on PostgreSQL.
type PostgresMirror struct {
	db  *sql.DB
	now timex.Clock

	mu       sync.Mutex
	migrated bool
}

// New wraps an open database handle. The schema is bootstrapped on the first
// successful Ping.
func New(db *sql.DB, now timex.Clock) *PostgresMirror {
	if now == nil {
		now = timex.SystemClock
	}
	return &PostgresMirror{db: db, now: now}
}

// Open prepares a pgx-backed handle for dsn. No connection is made until the
// first call; the server may well be offline at startup.
func Open(dsn string, now timex.Clock) (*PostgresMirror, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return New(db, now), nil
}

// Ping reports whether the remote store is reachable and migrated. Failures
// wrap common.ErrMirrorUnavailable.
func (m *PostgresMirror) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMirrorUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.migrated {
		return nil
	}
	if err := RunMigrations(ctx, m.db); err != nil {
		return fmt.Errorf("%w: migration error: %v", common.ErrMirrorUnavailable, err)
	}
	m.migrated = true
	return nil
}

func (m *PostgresMirror) Close() error {
	return m.db.Close()
}
