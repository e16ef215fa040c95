package dialect

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"db-admin/internal/schema"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

// Unquoted Oracle identifiers are stored upper case, so lookups go through
// UPPER() to keep 'users' and 'USERS' equivalent for callers.

func (d *OracleDialect) TableExists(db *sql.DB, table string) (bool, error) {
	count, err := queryCount(db,
		`SELECT COUNT(*) FROM USER_TABLES WHERE TABLE_NAME = UPPER(:1)`,
		table)
	return count > 0, err
}

func (d *OracleDialect) ListTables(db *sql.DB) ([]schema.TableInfo, error) {
	rows, err := db.Query(`SELECT t.TABLE_NAME, c.COMMENTS
FROM USER_TABLES t
LEFT JOIN USER_TAB_COMMENTS c ON t.TABLE_NAME = c.TABLE_NAME
ORDER BY t.TABLE_NAME`)
	if err != nil {
		return nil, err
	}
	return scanTableInfos(rows)
}

func (d *OracleDialect) TableStructure(db *sql.DB, table string) (schema.TableStructure, error) {
	exists, err := d.TableExists(db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound("table '%s' does not exist in the current user schema", table)
	}

	// Types are rendered the way Oracle prints them: length for character
	// and raw types, precision (and scale when positive) for NUMBER.
	// Constraint roles come from three DISTINCT subqueries so a column in
	// several constraints of one kind cannot duplicate rows.
	rows, err := db.Query(`
SELECT
    t.COLUMN_NAME,
    CASE
        WHEN t.DATA_TYPE IN ('VARCHAR2', 'NVARCHAR2', 'CHAR', 'NCHAR', 'RAW') THEN t.DATA_TYPE || '(' || t.DATA_LENGTH || ')'
        WHEN t.DATA_TYPE = 'NUMBER' AND t.DATA_PRECISION IS NOT NULL AND COALESCE(t.DATA_SCALE, 0) > 0 THEN 'NUMBER(' || t.DATA_PRECISION || ',' || t.DATA_SCALE || ')'
        WHEN t.DATA_TYPE = 'NUMBER' AND t.DATA_PRECISION IS NOT NULL THEN 'NUMBER(' || t.DATA_PRECISION || ')'
        ELSE t.DATA_TYPE
    END AS COLUMN_TYPE,
    CASE WHEN t.NULLABLE = 'Y' THEN 'YES' ELSE 'NO' END AS IS_NULLABLE,
    CASE
        WHEN p.COLUMN_NAME IS NOT NULL THEN 'PRI'
        WHEN u.COLUMN_NAME IS NOT NULL THEN 'UNI'
        WHEN r.COLUMN_NAME IS NOT NULL THEN 'MUL'
        ELSE ''
    END AS COLUMN_KEY,
    t.DATA_DEFAULT,
    CASE WHEN t.IDENTITY_COLUMN = 'YES' THEN 'identity' ELSE '' END AS EXTRA,
    c.COMMENTS
FROM USER_TAB_COLUMNS t
LEFT JOIN (
    SELECT DISTINCT cc.TABLE_NAME, cc.COLUMN_NAME
    FROM USER_CONS_COLUMNS cc
    JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'P'
) p ON t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
LEFT JOIN (
    SELECT DISTINCT cc.TABLE_NAME, cc.COLUMN_NAME
    FROM USER_CONS_COLUMNS cc
    JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'U'
) u ON t.TABLE_NAME = u.TABLE_NAME AND t.COLUMN_NAME = u.COLUMN_NAME
LEFT JOIN (
    SELECT DISTINCT cc.TABLE_NAME, cc.COLUMN_NAME
    FROM USER_CONS_COLUMNS cc
    JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'R'
) r ON t.TABLE_NAME = r.TABLE_NAME AND t.COLUMN_NAME = r.COLUMN_NAME
LEFT JOIN USER_COL_COMMENTS c ON t.TABLE_NAME = c.TABLE_NAME AND t.COLUMN_NAME = c.COLUMN_NAME
WHERE t.TABLE_NAME = UPPER(:1)
ORDER BY t.COLUMN_ID`, table)
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
			Default:  strings.TrimSpace(def.String), // DATA_DEFAULT is LONG and keeps trailing whitespace
			Extra:    extra,
			Comment:  comment.String,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for name, attrs := range st {
		indexes, err := queryStrings(db, `SELECT ic.INDEX_NAME
FROM USER_IND_COLUMNS ic
JOIN USER_INDEXES i ON ic.INDEX_NAME = i.INDEX_NAME
WHERE ic.TABLE_NAME = UPPER(:1) AND ic.COLUMN_NAME = UPPER(:2) AND i.INDEX_TYPE != 'LOB'`,
			table, name)
		if err != nil {
			return nil, err
		}
		attrs.Key = AugmentKey(attrs.Key, indexes)
		st[name] = attrs
	}
	return st, nil
}

func (d *OracleDialect) Normalize(st schema.TableStructure) schema.TableStructure {
	return st
}

func (d *OracleDialect) AddColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	return []string{d.columnDDL("ADD", table, column, attrs)}
}

func (d *OracleDialect) ModifyColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	return []string{d.columnDDL("MODIFY", table, column, attrs)}
}

// columnDDL builds the ADD/MODIFY statement. Oracle grammar puts DEFAULT
// before the nullability constraint, and string defaults arrive from
// DATA_DEFAULT already quoted, so the value is emitted verbatim.
func (d *OracleDialect) columnDDL(action, table, column string, attrs schema.ColumnAttributes) string {
	parts := []string{"ALTER TABLE", table, action, column, attrs.Type}
	if attrs.HasDefault() {
		parts = append(parts, "DEFAULT", attrs.Default)
	}
	if attrs.Nullable == "NO" {
		parts = append(parts, "NOT NULL")
	} else {
		parts = append(parts, "NULL")
	}
	return strings.Join(parts, " ") + ";"
}

func (d *OracleDialect) QuoteIdentifier(name string) string {
	// Quoting would make identifiers case sensitive, which breaks the
	// upper-cased USER_* catalog lookups above. Oracle DDL here uses bare
	// identifiers like the catalog stores them.
	return name
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) BatchSelectQuery(table string, columns []string, offset, limit int) string {
	return fmt.Sprintf("SELECT %s FROM %s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY",
		strings.Join(columns, ", "), table, offset, limit)
}

func (d *OracleDialect) FormatValue(v interface{}) string {
	switch val := v.(type) {
	case []byte:
		return "HEXTORAW('" + hex.EncodeToString(val) + "')"
	case time.Time:
		return "TO_DATE('" + val.Format(DateTimeLayout) + "', 'YYYY-MM-DD HH24:MI:SS')"
	case bool:
		if val {
			return "1"
		}
		return "0"
	}
	return formatBasicValue(v)
}
