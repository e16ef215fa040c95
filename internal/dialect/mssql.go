package dialect

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"db-admin/internal/schema"
)

type MSSQLDialect struct{}

// go-mssqldb prefers @p1, @p2 named parameters over ?. The same @pN may be
// referenced several times in one query, which the constraint subqueries
// below rely on. Introspection is scoped to the default dbo schema.

func (d *MSSQLDialect) Name() string { return "sqlserver" }

func (d *MSSQLDialect) TableExists(db *sql.DB, table string) (bool, error) {
	count, err := queryCount(db,
		`SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = 'dbo' AND TABLE_NAME = @p1 AND TABLE_TYPE = 'BASE TABLE'`,
		table)
	return count > 0, err
}

func (d *MSSQLDialect) ListTables(db *sql.DB) ([]schema.TableInfo, error) {
	rows, err := db.Query(`SELECT t.TABLE_NAME, CAST(ep.value AS NVARCHAR(MAX))
FROM INFORMATION_SCHEMA.TABLES t
LEFT JOIN sys.extended_properties ep
    ON ep.major_id = OBJECT_ID(t.TABLE_SCHEMA + '.' + t.TABLE_NAME)
    AND ep.minor_id = 0
    AND ep.name = 'MS_Description'
WHERE t.TABLE_SCHEMA = 'dbo' AND t.TABLE_TYPE = 'BASE TABLE'
ORDER BY t.TABLE_NAME`)
	if err != nil {
		return nil, err
	}
	return scanTableInfos(rows)
}

func (d *MSSQLDialect) TableStructure(db *sql.DB, table string) (schema.TableStructure, error) {
	exists, err := d.TableExists(db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound("table '%s' does not exist in schema 'dbo'", table)
	}

	rows, err := db.Query(`
SELECT
    c.COLUMN_NAME,
    c.DATA_TYPE + CASE
        WHEN c.DATA_TYPE IN ('varchar', 'nvarchar', 'char', 'nchar', 'varbinary', 'binary') AND c.CHARACTER_MAXIMUM_LENGTH = -1 THEN '(max)'
        WHEN c.DATA_TYPE IN ('varchar', 'nvarchar', 'char', 'nchar', 'varbinary', 'binary') AND c.CHARACTER_MAXIMUM_LENGTH IS NOT NULL THEN '(' + CAST(c.CHARACTER_MAXIMUM_LENGTH AS VARCHAR(10)) + ')'
        WHEN c.DATA_TYPE IN ('decimal', 'numeric') THEN '(' + CAST(c.NUMERIC_PRECISION AS VARCHAR(10)) + ',' + CAST(c.NUMERIC_SCALE AS VARCHAR(10)) + ')'
        ELSE ''
    END AS COLUMN_TYPE,
    c.IS_NULLABLE,
    CASE
        WHEN pk.COLUMN_NAME IS NOT NULL THEN 'PRI'
        WHEN uq.COLUMN_NAME IS NOT NULL THEN 'UNI'
        WHEN fk.COLUMN_NAME IS NOT NULL THEN 'MUL'
        ELSE ''
    END AS COLUMN_KEY,
    c.COLUMN_DEFAULT,
    CASE WHEN COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity') = 1 THEN 'identity' ELSE '' END AS EXTRA,
    CAST(ep.value AS NVARCHAR(MAX)) AS COLUMN_COMMENT
FROM INFORMATION_SCHEMA.COLUMNS c
LEFT JOIN (
    SELECT DISTINCT kcu.TABLE_NAME, kcu.COLUMN_NAME
    FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
    JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
    WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = 'dbo' AND tc.TABLE_NAME = @p1
) pk ON c.TABLE_NAME = pk.TABLE_NAME AND c.COLUMN_NAME = pk.COLUMN_NAME
LEFT JOIN (
    SELECT DISTINCT kcu.TABLE_NAME, kcu.COLUMN_NAME
    FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
    JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
    WHERE tc.CONSTRAINT_TYPE = 'UNIQUE' AND tc.TABLE_SCHEMA = 'dbo' AND tc.TABLE_NAME = @p1
) uq ON c.TABLE_NAME = uq.TABLE_NAME AND c.COLUMN_NAME = uq.COLUMN_NAME
LEFT JOIN (
    SELECT DISTINCT kcu.TABLE_NAME, kcu.COLUMN_NAME
    FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
    JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
    WHERE tc.CONSTRAINT_TYPE = 'FOREIGN KEY' AND tc.TABLE_SCHEMA = 'dbo' AND tc.TABLE_NAME = @p1
) fk ON c.TABLE_NAME = fk.TABLE_NAME AND c.COLUMN_NAME = fk.COLUMN_NAME
LEFT JOIN sys.extended_properties ep
    ON ep.major_id = OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME)
    AND ep.minor_id = c.ORDINAL_POSITION
    AND ep.name = 'MS_Description'
WHERE c.TABLE_SCHEMA = 'dbo' AND c.TABLE_NAME = @p1
ORDER BY c.ORDINAL_POSITION`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st := make(schema.TableStructure)
	for rows.Next() {
		var name, colType, nullable, key, extra string
		var def, comment sql.NullString
		if err := rows.Scan(&name, &colType, &nullable, &key, &def, &extra, &comment); err != nil {
			return nil, err
		}
		st[name] = schema.ColumnAttributes{
			Type:     colType,
			Nullable: nullable,
			Key:      key,
			Default:  trimEnclosingParens(def.String), // the catalog wraps defaults: ((0)), (getdate())
			Extra:    extra,
			Comment:  comment.String,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for name, attrs := range st {
		indexes, err := queryStrings(db, `SELECT i.name
FROM sys.indexes i
JOIN sys.index_columns ic ON i.object_id = ic.object_id AND i.index_id = ic.index_id
JOIN sys.columns col ON ic.object_id = col.object_id AND ic.column_id = col.column_id
WHERE i.object_id = OBJECT_ID('dbo.' + @p1) AND col.name = @p2 AND i.is_primary_key = 0 AND i.type > 0`,
			table, name)
		if err != nil {
			return nil, err
		}
		attrs.Key = AugmentKey(attrs.Key, indexes)
		st[name] = attrs
	}
	return st, nil
}

// trimEnclosingParens strips the wrapping parentheses SQL Server adds around
// stored default expressions, but only while the outermost pair really spans
// the whole string.
func trimEnclosingParens(s string) string {
	for len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		depth, wraps := 0, true
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 && i < len(s)-1 {
					wraps = false
				}
			}
			if !wraps {
				break
			}
		}
		if !wraps {
			break
		}
		s = s[1 : len(s)-1]
	}
	return s
}

func (d *MSSQLDialect) Normalize(st schema.TableStructure) schema.TableStructure {
	return st
}

func (d *MSSQLDialect) AddColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD %s %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column), attrs.Type)
	if attrs.Nullable == "NO" {
		b.WriteString(" NOT NULL")
	} else {
		b.WriteString(" NULL")
	}
	if attrs.HasDefault() {
		b.WriteString(" DEFAULT " + d.formatDefault(attrs.Default))
	}
	b.WriteString(";")
	return []string{b.String()}
}

// ModifyColumnSQL needs two statements when a default is involved: ALTER
// COLUMN cannot change a default, that lives in a separate DF constraint.
func (d *MSSQLDialect) ModifyColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ALTER COLUMN %s %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column), attrs.Type)
	if attrs.Nullable == "NO" {
		b.WriteString(" NOT NULL")
	} else {
		b.WriteString(" NULL")
	}
	b.WriteString(";")

	stmts := []string{b.String()}
	if attrs.HasDefault() {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFAULT %s FOR %s;",
			d.QuoteIdentifier(table),
			d.QuoteIdentifier("DF_"+table+"_"+column),
			d.formatDefault(attrs.Default),
			d.QuoteIdentifier(column)))
	}
	return stmts
}

// formatDefault re-emits function calls and already-quoted catalog values
// verbatim; bare words get quoted, numbers stay bare.
func (d *MSSQLDialect) formatDefault(def string) string {
	up := strings.ToUpper(def)
	if up == "CURRENT_TIMESTAMP" {
		return def
	}
	if strings.Contains(def, "(") && strings.HasSuffix(def, ")") {
		return def
	}
	if strings.HasPrefix(def, "'") || strings.HasPrefix(up, "N'") {
		return def
	}
	if _, err := strconv.ParseFloat(def, 64); err == nil {
		return def
	}
	return QuoteString(def)
}

func (d *MSSQLDialect) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) BatchSelectQuery(table string, columns []string, offset, limit int) string {
	// OFFSET requires an ORDER BY; (SELECT NULL) keeps the page order the
	// engine's natural one like the other dialects.
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY (SELECT NULL) OFFSET %d ROWS FETCH NEXT %d ROWS ONLY",
		QuoteColumns(columns, d.QuoteIdentifier), d.QuoteIdentifier(table), offset, limit)
}

func (d *MSSQLDialect) FormatValue(v interface{}) string {
	switch val := v.(type) {
	case []byte:
		return "0x" + hex.EncodeToString(val)
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
