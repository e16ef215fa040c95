package dialect

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"db-admin/internal/schema"
)

type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite3" }

func (d *SQLiteDialect) TableExists(db *sql.DB, table string) (bool, error) {
	count, err := queryCount(db,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
		table)
	return count > 0, err
}

func (d *SQLiteDialect) ListTables(db *sql.DB) ([]schema.TableInfo, error) {
	// SQLite has no table comments.
	rows, err := db.Query(`SELECT name, NULL FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return scanTableInfos(rows)
}

func (d *SQLiteDialect) TableStructure(db *sql.DB, table string) (schema.TableStructure, error) {
	exists, err := d.TableExists(db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound("table '%s' does not exist in the database", table)
	}

	// PRAGMA statements do not take bind parameters; the pragma_* table
	// functions do, so introspection stays parameterized throughout.
	rows, err := db.Query(`SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st := make(schema.TableStructure)
	for rows.Next() {
		var name, colType string
		var notNull, pk int
		var def sql.NullString
		if err := rows.Scan(&name, &colType, &notNull, &def, &pk); err != nil {
			return nil, err
		}
		attrs := schema.ColumnAttributes{
			Type:     colType,
			Nullable: "YES",
			Default:  def.String,
		}
		if notNull == 1 {
			attrs.Nullable = "NO"
		}
		if pk > 0 {
			attrs.Key = "PRI"
		}
		st[name] = attrs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := d.applyIndexInfo(db, table, st); err != nil {
		return nil, err
	}
	if err := d.applyAutoincrement(db, table, st); err != nil {
		return nil, err
	}
	return st, nil
}

// applyIndexInfo walks the table's index list once: a single-column unique
// index marks its column UNI, and every non-pk index name augments the key
// of each member column.
func (d *SQLiteDialect) applyIndexInfo(db *sql.DB, table string, st schema.TableStructure) error {
	rows, err := db.Query(`SELECT name, "unique", origin FROM pragma_index_list(?)`, table)
	if err != nil {
		return err
	}

	type indexEntry struct {
		name   string
		unique bool
	}
	var indexes []indexEntry
	for rows.Next() {
		var name, origin string
		var unique int
		if err := rows.Scan(&name, &unique, &origin); err != nil {
			rows.Close()
			return err
		}
		if origin == "pk" {
			continue
		}
		indexes = append(indexes, indexEntry{name: name, unique: unique == 1})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	memberships := make(map[string][]string)
	for _, ix := range indexes {
		cols, err := queryStrings(db, `SELECT name FROM pragma_index_info(?)`, ix.name)
		if err != nil {
			return err
		}
		for _, col := range cols {
			memberships[col] = append(memberships[col], ix.name)
		}
		if ix.unique && len(cols) == 1 {
			if attrs, ok := st[cols[0]]; ok && attrs.Key == "" {
				attrs.Key = "UNI"
				st[cols[0]] = attrs
			}
		}
	}
	for col, names := range memberships {
		if attrs, ok := st[col]; ok {
			attrs.Key = AugmentKey(attrs.Key, names)
			st[col] = attrs
		}
	}
	return nil
}

// applyAutoincrement marks the INTEGER PRIMARY KEY column when the table DDL
// carries AUTOINCREMENT. The flag lives only in the stored CREATE statement.
func (d *SQLiteDialect) applyAutoincrement(db *sql.DB, table string, st schema.TableStructure) error {
	var ddl sql.NullString
	err := db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&ddl)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToUpper(ddl.String), "AUTOINCREMENT") {
		return nil
	}
	for name, attrs := range st {
		if strings.HasPrefix(attrs.Key, "PRI") {
			attrs.Extra = "auto_increment"
			st[name] = attrs
		}
	}
	return nil
}

func (d *SQLiteDialect) Normalize(st schema.TableStructure) schema.TableStructure {
	return st
}

func (d *SQLiteDialect) AddColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD COLUMN %s %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column), attrs.Type)
	if attrs.HasDefault() {
		// dflt_value keeps the DDL spelling, quotes included; emit verbatim.
		b.WriteString(" DEFAULT " + attrs.Default)
	}
	if attrs.Nullable == "NO" {
		b.WriteString(" NOT NULL")
	}
	b.WriteString(";")
	return []string{b.String()}
}

// ModifyColumnSQL cannot be expressed in SQLite: there is no ALTER COLUMN.
// The returned line is an explanatory SQL comment, not a runnable statement,
// so generated files stay loadable while making the gap visible.
func (d *SQLiteDialect) ModifyColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	decl := column + " " + attrs.Type
	if attrs.HasDefault() {
		decl += " DEFAULT " + attrs.Default
	}
	if attrs.Nullable == "NO" {
		decl += " NOT NULL"
	} else {
		decl += " NULL"
	}
	return []string{"-- SQLite does not support ALTER COLUMN. Manual table recreation required for: " + decl}
}

func (d *SQLiteDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SQLiteDialect) BatchSelectQuery(table string, columns []string, offset, limit int) string {
	return fmt.Sprintf("SELECT %s FROM %s LIMIT %d OFFSET %d",
		QuoteColumns(columns, d.QuoteIdentifier), d.QuoteIdentifier(table), limit, offset)
}

func (d *SQLiteDialect) FormatValue(v interface{}) string {
	switch val := v.(type) {
	case []byte:
		return "X'" + hex.EncodeToString(val) + "'"
	case time.Time:
		return "'" + val.Format(DateTimeLayout) + "'"
	case bool:
		if val {
			return "1"
		}
		return "0"
	}
	return formatBasicValue(v)
}
