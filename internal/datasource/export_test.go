package datasource_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"db-admin/internal/dialect"
)

func TestExportData_WritesInsertFile(t *testing.T) {
	src := newSQLiteSource(t, "main")
	mustExec(t, src,
		"CREATE TABLE files (id INTEGER PRIMARY KEY, name TEXT, body BLOB)",
		"INSERT INTO files (name, body) VALUES ('a.txt', x'dead')",
		"INSERT INTO files (name, body) VALUES ('it''s.txt', NULL)",
	)

	dir := t.TempDir()
	var done, total int
	result, err := src.ExportData("files", dir, func(d, n int) { done, total = d, n })
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}
	if result.Rows != 2 {
		t.Errorf("Rows = %d, want 2", result.Rows)
	}
	if done != 1 || total != 1 {
		t.Errorf("progress reported %d/%d, want 1/1", done, total)
	}
	wantPath := filepath.Join(dir, "files_1.sql")
	if len(result.Files) != 1 || result.Files[0] != wantPath {
		t.Fatalf("Files = %v, want [%s]", result.Files, wantPath)
	}

	content, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	sql := string(content)
	if !strings.HasPrefix(sql, "INSERT INTO files (body, id, name) VALUES ") {
		t.Errorf("artifact prefix wrong: %q", sql)
	}
	if !strings.HasSuffix(sql, ";") {
		t.Errorf("artifact must end with a semicolon")
	}
	// BLOB column keeps hex form, text stays quoted with '' doubling.
	if !strings.Contains(sql, "X'dead'") {
		t.Errorf("missing hex literal in %q", sql)
	}
	if !strings.Contains(sql, "'it''s.txt'") {
		t.Errorf("missing escaped string in %q", sql)
	}
	if !strings.Contains(sql, "NULL") {
		t.Errorf("missing NULL literal in %q", sql)
	}
}

func TestExportData_PagesIntoMultipleFiles(t *testing.T) {
	src := newSQLiteSource(t, "main")
	mustExec(t, src, "CREATE TABLE nums (id INTEGER PRIMARY KEY, n INTEGER)")

	tx, err := src.DB().Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	for i := 0; i < 1500; i++ {
		if _, err := tx.Exec("INSERT INTO nums (n) VALUES (?)", i); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	dir := t.TempDir()
	result, err := src.ExportData("nums", dir, nil)
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}
	if result.Rows != 1500 {
		t.Errorf("Rows = %d, want 1500", result.Rows)
	}
	want := []string{
		filepath.Join(dir, "nums_1.sql"),
		filepath.Join(dir, "nums_2.sql"),
	}
	if fmt.Sprintf("%v", result.Files) != fmt.Sprintf("%v", want) {
		t.Errorf("Files = %v, want %v", result.Files, want)
	}
}

func TestExportData_EmptyTable(t *testing.T) {
	src := newSQLiteSource(t, "main")
	mustExec(t, src, "CREATE TABLE empty_t (id INTEGER PRIMARY KEY)")

	result, err := src.ExportData("empty_t", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}
	if result.Rows != 0 || len(result.Files) != 0 {
		t.Errorf("empty table exported %d rows, %d files", result.Rows, len(result.Files))
	}
}

func TestExportData_MissingTable(t *testing.T) {
	src := newSQLiteSource(t, "main")

	_, err := src.ExportData("ghost", t.TempDir(), nil)
	if err == nil {
		t.Fatal("expected an error for a missing table")
	}
	var notFound *dialect.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error %v is not a NotFoundError", err)
	}
}
