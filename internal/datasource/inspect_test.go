package datasource_test

import (
	"errors"
	"testing"

	"db-admin/internal/dialect"
)

func TestListTables(t *testing.T) {
	src := newSQLiteSource(t, "main")
	mustExec(t, src,
		"CREATE TABLE orders (id INTEGER PRIMARY KEY AUTOINCREMENT)",
		"CREATE TABLE users (id INTEGER PRIMARY KEY)",
	)

	tables, err := src.ListTables()
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	// sqlite_sequence exists because of AUTOINCREMENT but must stay hidden.
	if len(tables) != 2 {
		t.Fatalf("got %d tables %v, want 2", len(tables), tables)
	}
	if tables[0].Name != "orders" || tables[1].Name != "users" {
		t.Errorf("tables = %v, want sorted [orders users]", tables)
	}
}

func TestTableStructure_KeysAndIndexes(t *testing.T) {
	src := newSQLiteSource(t, "main")
	mustExec(t, src,
		"CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT, name TEXT NOT NULL)",
		"CREATE UNIQUE INDEX uq_email ON users (email)",
		"CREATE INDEX ix_name ON users (name)",
	)

	st, err := src.TableStructure("users")
	if err != nil {
		t.Fatalf("TableStructure: %v", err)
	}
	if len(st) != 3 {
		t.Fatalf("got %d columns, want 3", len(st))
	}

	if st["id"].Key != "PRI" {
		t.Errorf("id key = %q, want PRI", st["id"].Key)
	}
	if st["email"].Key != "UNI (uq_email)" {
		t.Errorf("email key = %q, want UNI (uq_email)", st["email"].Key)
	}
	if st["name"].Key != "IDX (ix_name)" {
		t.Errorf("name key = %q, want IDX (ix_name)", st["name"].Key)
	}
	if st["name"].Nullable != "NO" {
		t.Errorf("name nullable = %q, want NO", st["name"].Nullable)
	}
	if st["email"].Nullable != "YES" {
		t.Errorf("email nullable = %q, want YES", st["email"].Nullable)
	}
}

func TestTableStructure_MissingTable(t *testing.T) {
	src := newSQLiteSource(t, "main")

	_, err := src.TableStructure("ghost")
	if err == nil {
		t.Fatal("expected an error for a missing table")
	}
	var notFound *dialect.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error %v is not a NotFoundError", err)
	}
}

func TestTableExists(t *testing.T) {
	src := newSQLiteSource(t, "main")
	mustExec(t, src, "CREATE TABLE present (id INTEGER)")

	exists, err := src.TableExists("present")
	if err != nil || !exists {
		t.Errorf("TableExists(present) = %v, %v", exists, err)
	}
	exists, err = src.TableExists("absent")
	if err != nil || exists {
		t.Errorf("TableExists(absent) = %v, %v", exists, err)
	}
}
