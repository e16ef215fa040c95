package dialect

import (
	"database/sql"

	"db-admin/internal/schema"
)

// Dialect abstracts database-specific operations.
type Dialect interface {
	// Name returns the registered database/sql driver name this dialect
	// drives. It is the string handed to sql.Open, so config aliases
	// (sqlite, mssql) resolve through the factory to a canonical name.
	Name() string

	// Metadata Queries (Schema Introspection)
	TableExists(db *sql.DB, table string) (bool, error)
	ListTables(db *sql.DB) ([]schema.TableInfo, error)
	// TableStructure introspects one table into the normalized model. The
	// table's existence is checked explicitly first; a missing table yields
	// a NotFoundError, never an empty structure.
	TableStructure(db *sql.DB, table string) (schema.TableStructure, error)

	// Comparison Support
	// Normalize rewrites dialect-local type and default spellings into a
	// canonical form before two structures are compared. It returns a fresh
	// structure; dialects without aliasing return the input unchanged.
	Normalize(st schema.TableStructure) schema.TableStructure

	// DDL Synthesis
	// Both return complete, ';'-terminated statements. A dialect that cannot
	// express the change (SQLite column modification) returns an explanatory
	// SQL comment line instead of a runnable statement.
	AddColumnSQL(table, column string, attrs schema.ColumnAttributes) []string
	ModifyColumnSQL(table, column string, attrs schema.ColumnAttributes) []string

	// Query Generation
	QuoteIdentifier(name string) string
	Placeholder(index int) string // Returns ?, $1, :1, @p1, etc. (index is 0-based)
	BatchSelectQuery(table string, columns []string, offset, limit int) string

	// Helpers
	// FormatValue renders a scanned Go value as a SQL literal for exported
	// INSERT statements (quoting, hex encodings, date formats).
	FormatValue(v interface{}) string
}
