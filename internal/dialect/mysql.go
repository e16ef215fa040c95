package dialect

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"db-admin/internal/schema"
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string { return "mysql" }

func (d *MysqlDialect) TableExists(db *sql.DB, table string) (bool, error) {
	count, err := queryCount(db,
		`SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
		table)
	return count > 0, err
}

func (d *MysqlDialect) ListTables(db *sql.DB) ([]schema.TableInfo, error) {
	rows, err := db.Query(`SELECT TABLE_NAME, TABLE_COMMENT FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`)
	if err != nil {
		return nil, err
	}
	return scanTableInfos(rows)
}

func (d *MysqlDialect) TableStructure(db *sql.DB, table string) (schema.TableStructure, error) {
	exists, err := d.TableExists(db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound("table '%s' does not exist in the current database", table)
	}

	rows, err := db.Query(`SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_KEY, COLUMN_DEFAULT, EXTRA, COLUMN_COMMENT
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st := make(schema.TableStructure)
	for rows.Next() {
		var name, colType, nullable, key, extra, comment string
		var def sql.NullString
		if err := rows.Scan(&name, &colType, &nullable, &key, &def, &extra, &comment); err != nil {
			return nil, err
		}
		st[name] = schema.ColumnAttributes{
			Type:     colType,
			Nullable: nullable,
			Key:      key,
			Default:  def.String,
			Extra:    extra,
			Comment:  comment,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Secondary index membership (the PRIMARY index is already covered by
	// COLUMN_KEY).
	for name, attrs := range st {
		indexes, err := queryStrings(db,
			`SELECT DISTINCT INDEX_NAME FROM information_schema.STATISTICS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ? AND INDEX_NAME <> 'PRIMARY'`,
			table, name)
		if err != nil {
			return nil, err
		}
		attrs.Key = AugmentKey(attrs.Key, indexes)
		st[name] = attrs
	}
	return st, nil
}

func (d *MysqlDialect) Normalize(st schema.TableStructure) schema.TableStructure {
	return st
}

func (d *MysqlDialect) AddColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	return []string{d.columnDDL("ADD", table, column, attrs)}
}

func (d *MysqlDialect) ModifyColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	return []string{d.columnDDL("MODIFY", table, column, attrs)}
}

// columnDDL builds the shared ADD/MODIFY COLUMN statement. MySQL takes the
// whole column definition in one clause: type, nullability, default, extra
// and comment.
func (d *MysqlDialect) columnDDL(action, table, column string, attrs schema.ColumnAttributes) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s %s COLUMN %s %s",
		d.QuoteIdentifier(table), action, d.QuoteIdentifier(column), attrs.Type)

	if attrs.Nullable == "NO" {
		b.WriteString(" NOT NULL")
	} else {
		b.WriteString(" NULL")
	}
	if attrs.HasDefault() {
		if strings.EqualFold(attrs.Default, "CURRENT_TIMESTAMP") {
			b.WriteString(" DEFAULT " + attrs.Default)
		} else {
			b.WriteString(" DEFAULT " + QuoteString(attrs.Default))
		}
	}
	if attrs.Extra != "" {
		b.WriteString(" " + attrs.Extra)
	}
	if attrs.Comment != "" {
		b.WriteString(" COMMENT " + QuoteString(attrs.Comment))
	}
	b.WriteString(";")
	return b.String()
}

func (d *MysqlDialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) BatchSelectQuery(table string, columns []string, offset, limit int) string {
	return fmt.Sprintf("SELECT %s FROM %s LIMIT %d OFFSET %d",
		QuoteColumns(columns, d.QuoteIdentifier), d.QuoteIdentifier(table), limit, offset)
}

func (d *MysqlDialect) FormatValue(v interface{}) string {
	switch val := v.(type) {
	case []byte:
		return "x'" + hex.EncodeToString(val) + "'"
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
