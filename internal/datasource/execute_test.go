package datasource_test

import (
	"reflect"
	"testing"
)

func TestExecute_SelectReturnsGrid(t *testing.T) {
	src := newSQLiteSource(t, "main")
	mustExec(t, src,
		"CREATE TABLE pets (id INTEGER PRIMARY KEY, name TEXT, owner TEXT)",
		"INSERT INTO pets (name, owner) VALUES ('rex', 'kim')",
		"INSERT INTO pets (name, owner) VALUES ('milo', NULL)",
	)

	res, err := src.Execute("SELECT name, owner FROM pets ORDER BY name")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.IsQuery {
		t.Fatal("SELECT must be routed as a query")
	}
	if !reflect.DeepEqual(res.Columns, []string{"name", "owner"}) {
		t.Errorf("Columns = %v", res.Columns)
	}
	want := [][]string{{"milo", "NULL"}, {"rex", "kim"}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows = %v, want %v", res.Rows, want)
	}
}

func TestExecute_DMLReportsAffected(t *testing.T) {
	src := newSQLiteSource(t, "main")
	mustExec(t, src,
		"CREATE TABLE pets (id INTEGER PRIMARY KEY, name TEXT)",
		"INSERT INTO pets (name) VALUES ('rex')",
		"INSERT INTO pets (name) VALUES ('milo')",
	)

	res, err := src.Execute("UPDATE pets SET name = name || '!'")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.IsQuery {
		t.Fatal("UPDATE must not be routed as a query")
	}
	if res.Affected != 2 {
		t.Errorf("Affected = %d, want 2", res.Affected)
	}
}

func TestExecute_DDLCountsAsOne(t *testing.T) {
	src := newSQLiteSource(t, "main")

	res, err := src.Execute("CREATE TABLE t (id INTEGER)")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Affected != 1 {
		t.Errorf("Affected = %d, want 1 for DDL", res.Affected)
	}
}

func TestExecute_TrailingSemicolonAccepted(t *testing.T) {
	src := newSQLiteSource(t, "main")

	res, err := src.Execute("SELECT 1 AS one;")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0][0] != "1" {
		t.Errorf("Rows = %v", res.Rows)
	}
}

func TestExecute_EmptyStatement(t *testing.T) {
	src := newSQLiteSource(t, "main")

	if _, err := src.Execute("   ;  "); err == nil {
		t.Fatal("expected an error for an empty statement")
	}
}
