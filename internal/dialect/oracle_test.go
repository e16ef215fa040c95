package dialect_test

import (
	"testing"
	"time"

	"db-admin/internal/dialect"
	"db-admin/internal/schema"
)

func TestOracleColumnDDL_DefaultBeforeNullability(t *testing.T) {
	d := &dialect.OracleDialect{}

	stmts := d.AddColumnSQL("USERS", "STATUS", schema.ColumnAttributes{
		Type:     "VARCHAR2(20)",
		Nullable: "NO",
		Default:  "'ACTIVE'",
	})
	want := "ALTER TABLE USERS ADD STATUS VARCHAR2(20) DEFAULT 'ACTIVE' NOT NULL;"
	if len(stmts) != 1 || stmts[0] != want {
		t.Errorf("got %v, want [%q]", stmts, want)
	}
}

func TestOracleModifyColumnSQL(t *testing.T) {
	d := &dialect.OracleDialect{}

	stmts := d.ModifyColumnSQL("USERS", "NICKNAME", schema.ColumnAttributes{
		Type:     "VARCHAR2(100)",
		Nullable: "YES",
	})
	want := "ALTER TABLE USERS MODIFY NICKNAME VARCHAR2(100) NULL;"
	if len(stmts) != 1 || stmts[0] != want {
		t.Errorf("got %v, want [%q]", stmts, want)
	}
}

func TestOracleQuoteIdentifierIsBare(t *testing.T) {
	d := &dialect.OracleDialect{}

	// Quoted identifiers would become case sensitive and stop matching the
	// upper-cased catalog entries, so names pass through untouched.
	if got := d.QuoteIdentifier("users"); got != "users" {
		t.Errorf("QuoteIdentifier = %q, want %q", got, "users")
	}
}

func TestOraclePlaceholder(t *testing.T) {
	d := &dialect.OracleDialect{}

	if got := d.Placeholder(0); got != ":1" {
		t.Errorf("Placeholder(0) = %q, want :1", got)
	}
	if got := d.Placeholder(4); got != ":5" {
		t.Errorf("Placeholder(4) = %q, want :5", got)
	}
}

func TestOracleBatchSelectQuery(t *testing.T) {
	d := &dialect.OracleDialect{}

	got := d.BatchSelectQuery("USERS", []string{"ID", "NAME"}, 1000, 500)
	want := "SELECT ID, NAME FROM USERS OFFSET 1000 ROWS FETCH NEXT 500 ROWS ONLY"
	if got != want {
		t.Errorf("BatchSelectQuery = %q, want %q", got, want)
	}
}

func TestOracleFormatValue(t *testing.T) {
	d := &dialect.OracleDialect{}

	if got := d.FormatValue([]byte{0xca, 0xfe}); got != "HEXTORAW('cafe')" {
		t.Errorf("FormatValue bytes = %q", got)
	}
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	want := "TO_DATE('2024-03-01 10:30:00', 'YYYY-MM-DD HH24:MI:SS')"
	if got := d.FormatValue(ts); got != want {
		t.Errorf("FormatValue time = %q, want %q", got, want)
	}
	if got := d.FormatValue(true); got != "1" {
		t.Errorf("FormatValue bool = %q, want 1", got)
	}
}
