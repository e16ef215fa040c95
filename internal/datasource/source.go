// Package datasource ties a configured database entry to a live connection
// pool and the dialect that understands it. Every command works against a
// Source; nothing above this package touches *sql.DB directly.
package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"db-admin/internal/dialect"
)

// SQLite pragmas applied through the DSN when the configuration leaves them
// unset. WAL plus a busy timeout keeps concurrent commands from tripping
// over SQLITE_BUSY on a shared file.
const (
	sqliteBusyTimeout = "5000" // milliseconds
	sqliteJournalMode = "WAL"
)

// Source is an open connection to one configured data source.
type Source struct {
	name    string
	driver  string
	db      *sql.DB
	dialect dialect.Dialect
}

// Open resolves the driver to a dialect, opens the pool and verifies the
// connection with a ping. maxOpen and maxIdle apply only when positive.
func Open(name, driver, dsn string, maxOpen, maxIdle int) (*Source, error) {
	d, err := dialect.GetDialect(driver)
	if err != nil {
		return nil, err
	}

	if d.Name() == "sqlite3" {
		dsn = hardenSQLiteDSN(dsn)
	}

	db, err := sql.Open(d.Name(), dsn)
	if err != nil {
		return nil, dialect.ErrConnectivity("data source %q: open failed: %v", name, err)
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, dialect.ErrConnectivity("data source %q: connection failed: %v", name, err)
	}

	return &Source{name: name, driver: d.Name(), db: db, dialect: d}, nil
}

// hardenSQLiteDSN appends journal, busy-timeout and foreign-key parameters
// unless the DSN already carries its own.
func hardenSQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_journal_mode=" + sqliteJournalMode +
		"&_busy_timeout=" + sqliteBusyTimeout +
		"&_foreign_keys=on"
}

func (s *Source) Name() string   { return s.name }
func (s *Source) Driver() string { return s.driver }

// DB exposes the raw pool for the seed path, which manages its own
// transactions.
func (s *Source) DB() *sql.DB { return s.db }

// Dialect returns the dialect bound to this source.
func (s *Source) Dialect() dialect.Dialect { return s.dialect }

// Close releases the pool. Safe to call on a nil or already-closed source.
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// wrap tags an error with the source name so multi-source operations stay
// attributable. Wrapping preserves the dialect error types for errors.As.
func (s *Source) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("data source %q: %w", s.name, err)
}
