package datasource_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-admin/internal/dialect"
)

func TestCompareWith_ReportSections(t *testing.T) {
	mine := newSQLiteSource(t, "primary")
	other := newSQLiteSource(t, "replica")

	mustExec(t, mine, `CREATE TABLE users (id INTEGER PRIMARY KEY, username TEXT NOT NULL, legacy_flag INTEGER)`)
	mustExec(t, other, `CREATE TABLE users (id INTEGER PRIMARY KEY, username VARCHAR(100) NOT NULL, email TEXT)`)

	report, err := mine.CompareWith("users", other, false, t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, report, "Structure comparison for table 'users'")
	assert.Contains(t, report, "mine:  primary (sqlite3)")
	assert.Contains(t, report, "other: replica (sqlite3)")
	assert.Contains(t, report, "Columns only in primary:")
	assert.Contains(t, report, "legacy_flag")
	assert.Contains(t, report, "Columns only in replica:")
	assert.Contains(t, report, "email")
	assert.Contains(t, report, "Columns with different definitions:")
	assert.Contains(t, report, "username")
}

func TestCompareWith_GeneratesAlterArtifact(t *testing.T) {
	mine := newSQLiteSource(t, "primary")
	other := newSQLiteSource(t, "replica")

	mustExec(t, mine, `CREATE TABLE users (id INTEGER PRIMARY KEY, username TEXT NOT NULL)`)
	mustExec(t, other, `CREATE TABLE users (id INTEGER PRIMARY KEY, username VARCHAR(100) NOT NULL, email TEXT)`)

	dir := t.TempDir()
	report, err := mine.CompareWith("users", other, true, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "alter_users_replica.sql")
	assert.Contains(t, report, "ALTER script written to "+path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	sql := string(content)

	assert.Contains(t, sql, `ALTER TABLE "users" ADD COLUMN "email" TEXT;`)
	// The username change is not expressible as SQLite DDL; it must appear
	// as a comment, not as a runnable statement.
	assert.Contains(t, sql, "-- SQLite does not support ALTER COLUMN")
	assert.Contains(t, sql, "username VARCHAR(100) NOT NULL")
	assert.NotContains(t, sql, "ALTER COLUMN \"username\"")
}

func TestCompareWith_MatchingStructures(t *testing.T) {
	mine := newSQLiteSource(t, "primary")
	other := newSQLiteSource(t, "replica")

	ddl := `CREATE TABLE users (id INTEGER PRIMARY KEY, username TEXT NOT NULL)`
	mustExec(t, mine, ddl)
	mustExec(t, other, ddl)

	dir := t.TempDir()
	report, err := mine.CompareWith("users", other, true, dir)
	require.NoError(t, err)
	assert.Contains(t, report, "Table structures match.")

	// No artifact for a clean comparison, even with generation requested.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompareWith_OnlyLocalExtras(t *testing.T) {
	mine := newSQLiteSource(t, "primary")
	other := newSQLiteSource(t, "replica")

	mustExec(t, mine, `CREATE TABLE users (id INTEGER PRIMARY KEY, extra_col TEXT)`)
	mustExec(t, other, `CREATE TABLE users (id INTEGER PRIMARY KEY)`)

	dir := t.TempDir()
	report, err := mine.CompareWith("users", other, true, dir)
	require.NoError(t, err)

	assert.Contains(t, report, "No ALTER statements to generate")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompareWith_MissingTableUniformFailure(t *testing.T) {
	mine := newSQLiteSource(t, "primary")
	other := newSQLiteSource(t, "replica")

	mustExec(t, other, `CREATE TABLE users (id INTEGER PRIMARY KEY)`)

	report, err := mine.CompareWith("users", other, false, t.TempDir())
	require.Error(t, err)
	assert.Empty(t, report)
	assert.True(t, strings.HasPrefix(err.Error(), "table structure comparison failed:"), err.Error())

	var notFound *dialect.NotFoundError
	assert.True(t, errors.As(err, &notFound), "wrapped chain should keep the NotFoundError")
	assert.Contains(t, err.Error(), `data source "primary"`)
}
