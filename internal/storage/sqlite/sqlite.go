// Package sqlite persists the museum records in an embedded SQLite database.
//
// The store enforces uniqueness, foreign-key and check constraints as a
// defensive backstop; business validation runs in the services before any
// statement is issued. Constraint violations are surfaced as sentinel errors
// with the underlying constraint text preserved.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"curator/pkg/platform/sentinel"
	txcontext "curator/pkg/platform/tx"
)

// dateFormat is the calendar form used for every persisted date.
const dateFormat = "2006-01-02"

const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS museum (
	id INTEGER PRIMARY KEY,
	museum_name TEXT NOT NULL,
	city TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	opening_hours TEXT NOT NULL DEFAULT '',
	UNIQUE (museum_name, city)
);

CREATE TABLE IF NOT EXISTS museum_item (
	item_id INTEGER PRIMARY KEY,
	museum_ref INTEGER NOT NULL REFERENCES museum(id),
	item_title TEXT NOT NULL,
	item_type TEXT NOT NULL DEFAULT '',
	date_acquired TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	condition TEXT NOT NULL DEFAULT 'Good'
		CHECK (condition IN ('Excellent', 'Good', 'Fair', 'Poor', 'Restoration Required')),
	value REAL NOT NULL DEFAULT 0 CHECK (value >= 0)
);

CREATE TABLE IF NOT EXISTS item_maintenance (
	maintenance_id INTEGER PRIMARY KEY,
	item_ref INTEGER NOT NULL REFERENCES museum_item(item_id) ON DELETE RESTRICT,
	maintenance_type TEXT NOT NULL,
	maintenance_date TEXT NOT NULL,
	specialist_name TEXT NOT NULL,
	cost REAL NOT NULL DEFAULT 0 CHECK (cost >= 0),
	notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS guest (
	guest_id INTEGER PRIMARY KEY,
	guest_name TEXT NOT NULL,
	contact_email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL DEFAULT '',
	membership_type TEXT NOT NULL DEFAULT 'None'
);

CREATE TABLE IF NOT EXISTS guest_visit (
	visit_id INTEGER PRIMARY KEY,
	guest_ref INTEGER NOT NULL REFERENCES guest(guest_id),
	museum_ref INTEGER NOT NULL REFERENCES museum(id),
	visit_date TEXT NOT NULL,
	ticket_price REAL NOT NULL DEFAULT 0 CHECK (ticket_price >= 0),
	rating INTEGER CHECK (rating IS NULL OR (rating >= 1 AND rating <= 5))
);

CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('admin', 'curator', 'viewer')),
	is_active INTEGER NOT NULL DEFAULT 1,
	last_login TEXT
);

CREATE TABLE IF NOT EXISTS audit_log (
	log_id INTEGER PRIMARY KEY,
	event_id TEXT NOT NULL UNIQUE,
	user_id INTEGER REFERENCES users(user_id),
	table_name TEXT NOT NULL,
	action TEXT NOT NULL CHECK (action IN ('INSERT', 'UPDATE', 'DELETE')),
	record_id INTEGER NOT NULL,
	details TEXT NOT NULL DEFAULT '',
	timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_guest_email ON guest(contact_email);
CREATE INDEX IF NOT EXISTS idx_maintenance_date ON item_maintenance(maintenance_date);
CREATE INDEX IF NOT EXISTS idx_visit_museum ON guest_visit(museum_ref);
`

// DB wraps the SQLite handle and owns transaction scoping for business
// operations.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if needed) the database at path and bootstraps the
// schema. Use ":memory:" for throwaway databases in tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// The driver serializes access per connection; a single connection gives
	// the single-writer semantics the system assumes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error { return d.sql.Close() }

// RunInTx executes fn inside one transaction. The transaction travels in the
// context so every store touched by fn joins it; it is rolled back on any
// error, including validation failures raised before the first write.
func (d *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", sentinel.ErrUnavailable, err)
	}
	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

// executor is satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (d *DB) execer(ctx context.Context) executor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return d.sql
}

// mapErr translates driver constraint failures into sentinel errors while
// preserving the constraint text for error detail.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint"):
		return fmt.Errorf("%w: %v", sentinel.ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint"):
		return fmt.Errorf("%w: %v", sentinel.ErrForeignKey, err)
	case strings.Contains(msg, "CHECK constraint"):
		return fmt.Errorf("%w: %v", sentinel.ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
}

func insertID(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func formatDate(t time.Time) string { return t.Format(dateFormat) }

func parseDate(s string) (time.Time, error) {
	// Accept both bare dates and timestamps that SQLite functions produce.
	if len(s) > len(dateFormat) {
		s = s[:len(dateFormat)]
	}
	return time.Parse(dateFormat, s)
}

func scanNullDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
