package datasource_test

import (
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"db-admin/internal/datasource"
)

// newSQLiteSource opens a Source backed by a throwaway SQLite file.
func newSQLiteSource(t *testing.T, name string) *datasource.Source {
	t.Helper()

	src, err := datasource.Open(name, "sqlite", t.TempDir()+"/"+name+".db", 0, 0)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { src.Close() })
	return src
}

func mustExec(t *testing.T, src *datasource.Source, stmts ...string) {
	t.Helper()

	for _, stmt := range stmts {
		if _, err := src.DB().Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

func countRows(t *testing.T, src *datasource.Source, table string) int {
	t.Helper()

	var n int
	if err := src.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
