package dialect_test

import (
	"testing"

	"db-admin/internal/dialect"
	"db-admin/internal/schema"
)

func TestMSSQLAddColumnSQL(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	stmts := d.AddColumnSQL("users", "email", schema.ColumnAttributes{
		Type:     "nvarchar(255)",
		Nullable: "YES",
	})
	want := "ALTER TABLE [users] ADD [email] nvarchar(255) NULL;"
	if len(stmts) != 1 || stmts[0] != want {
		t.Errorf("got %v, want [%q]", stmts, want)
	}
}

// Changing a column with a default takes two statements: SQL Server keeps
// defaults in their own DF constraint, out of reach of ALTER COLUMN.
func TestMSSQLModifyColumnSQL_WithDefault(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	stmts := d.ModifyColumnSQL("users", "status", schema.ColumnAttributes{
		Type:     "varchar(20)",
		Nullable: "NO",
		Default:  "pending",
	})
	want := []string{
		"ALTER TABLE [users] ALTER COLUMN [status] varchar(20) NOT NULL;",
		"ALTER TABLE [users] ADD CONSTRAINT [DF_users_status] DEFAULT 'pending' FOR [status];",
	}
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements %v, want %d", len(stmts), stmts, len(want))
	}
	for i := range want {
		if stmts[i] != want[i] {
			t.Errorf("stmt[%d] = %q, want %q", i, stmts[i], want[i])
		}
	}
}

func TestMSSQLModifyColumnSQL_NoDefault(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	stmts := d.ModifyColumnSQL("users", "bio", schema.ColumnAttributes{
		Type:     "nvarchar(max)",
		Nullable: "YES",
	})
	want := "ALTER TABLE [users] ALTER COLUMN [bio] nvarchar(max) NULL;"
	if len(stmts) != 1 || stmts[0] != want {
		t.Errorf("got %v, want [%q]", stmts, want)
	}
}

func TestMSSQLDefaultFormatting(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	cases := []struct {
		def  string
		want string
	}{
		{"getdate()", "DEFAULT getdate()"},
		{"0", "DEFAULT 0"},
		{"1.5", "DEFAULT 1.5"},
		{"pending", "DEFAULT 'pending'"},
		{"N'draft'", "DEFAULT N'draft'"},
		{"CURRENT_TIMESTAMP", "DEFAULT CURRENT_TIMESTAMP"},
	}
	for _, tc := range cases {
		stmts := d.AddColumnSQL("t", "c", schema.ColumnAttributes{
			Type:     "varchar(20)",
			Nullable: "YES",
			Default:  tc.def,
		})
		want := "ALTER TABLE [t] ADD [c] varchar(20) NULL " + tc.want + ";"
		if stmts[0] != want {
			t.Errorf("default %q: got %q, want %q", tc.def, stmts[0], want)
		}
	}
}

func TestMSSQLQuoteIdentifier(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	if got := d.QuoteIdentifier("users"); got != "[users]" {
		t.Errorf("QuoteIdentifier = %q", got)
	}
	if got := d.QuoteIdentifier("od]d"); got != "[od]]d]" {
		t.Errorf("QuoteIdentifier with bracket = %q", got)
	}
}

func TestMSSQLPlaceholder(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	if got := d.Placeholder(0); got != "@p1" {
		t.Errorf("Placeholder(0) = %q, want @p1", got)
	}
	if got := d.Placeholder(2); got != "@p3" {
		t.Errorf("Placeholder(2) = %q, want @p3", got)
	}
}

func TestMSSQLBatchSelectQuery(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	got := d.BatchSelectQuery("users", []string{"id"}, 0, 1000)
	want := "SELECT [id] FROM [users] ORDER BY (SELECT NULL) OFFSET 0 ROWS FETCH NEXT 1000 ROWS ONLY"
	if got != want {
		t.Errorf("BatchSelectQuery = %q, want %q", got, want)
	}
}

func TestMSSQLFormatValue_BytesAreUnquotedHex(t *testing.T) {
	d := &dialect.MSSQLDialect{}

	if got := d.FormatValue([]byte{0xab, 0xcd}); got != "0xabcd" {
		t.Errorf("FormatValue bytes = %q, want 0xabcd", got)
	}
}
