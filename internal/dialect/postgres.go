package dialect

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"db-admin/internal/schema"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) TableExists(db *sql.DB, table string) (bool, error) {
	count, err := queryCount(db,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1`,
		table)
	return count > 0, err
}

func (d *PostgresDialect) ListTables(db *sql.DB) ([]schema.TableInfo, error) {
	rows, err := db.Query(`SELECT c.relname, obj_description(c.oid, 'pg_class')
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = 'public' AND c.relkind = 'r'
ORDER BY c.relname`)
	if err != nil {
		return nil, err
	}
	return scanTableInfos(rows)
}

func (d *PostgresDialect) TableStructure(db *sql.DB, table string) (schema.TableStructure, error) {
	exists, err := d.TableExists(db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound("table '%s' does not exist in schema 'public'", table)
	}

	// Size suffixes are rendered here so the type reads the way psql prints
	// it: character varying(50), numeric(10,2). Plain integer types carry a
	// numeric_precision in the catalog and must not get one.
	rows, err := db.Query(`SELECT c.column_name,
       CASE
           WHEN c.data_type IN ('character varying', 'character') AND c.character_maximum_length IS NOT NULL
               THEN c.data_type || '(' || c.character_maximum_length || ')'
           WHEN c.data_type IN ('numeric', 'decimal') AND c.numeric_precision IS NOT NULL
               THEN c.data_type || '(' || c.numeric_precision || ',' || c.numeric_scale || ')'
           ELSE c.data_type
       END AS column_type,
       c.is_nullable,
       c.column_default,
       col_description(pgc.oid, c.ordinal_position) AS column_comment
FROM information_schema.columns c
JOIN pg_class pgc ON pgc.relname = c.table_name
JOIN pg_namespace pgn ON pgn.oid = pgc.relnamespace AND pgn.nspname = c.table_schema
WHERE c.table_schema = 'public' AND c.table_name = $1
ORDER BY c.ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st := make(schema.TableStructure)
	for rows.Next() {
		var name, colType, nullable string
		var def, comment sql.NullString
		if err := rows.Scan(&name, &colType, &nullable, &def, &comment); err != nil {
			return nil, err
		}
		st[name] = schema.ColumnAttributes{
			Type:     colType,
			Nullable: nullable,
			Default:  def.String,
			Comment:  comment.String,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := d.applyKeyRoles(db, table, st); err != nil {
		return nil, err
	}

	for name, attrs := range st {
		indexes, err := queryStrings(db, `SELECT i.relname
FROM pg_index ix
JOIN pg_class i ON i.oid = ix.indexrelid
JOIN pg_class t ON t.oid = ix.indrelid
JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
WHERE t.relname = $1 AND a.attname = $2 AND NOT ix.indisprimary`, table, name)
		if err != nil {
			return nil, err
		}
		attrs.Key = AugmentKey(attrs.Key, indexes)
		st[name] = attrs
	}
	return st, nil
}

// applyKeyRoles resolves each column's constraint role. A column can sit in
// several constraints at once (a primary key that is also referenced), so
// roles are ranked PRI > UNI > MUL.
func (d *PostgresDialect) applyKeyRoles(db *sql.DB, table string, st schema.TableStructure) error {
	rows, err := db.Query(`SELECT kcu.column_name, tc.constraint_type
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
    ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
WHERE tc.table_schema = 'public' AND tc.table_name = $1
  AND tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE', 'FOREIGN KEY')`, table)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var column, constraintType string
		if err := rows.Scan(&column, &constraintType); err != nil {
			return err
		}
		attrs, ok := st[column]
		if !ok {
			continue
		}
		role := ""
		switch constraintType {
		case "PRIMARY KEY":
			role = "PRI"
		case "UNIQUE":
			role = "UNI"
		case "FOREIGN KEY":
			role = "MUL"
		}
		if keyRank(role) > keyRank(attrs.Key) {
			attrs.Key = role
			st[column] = attrs
		}
	}
	return rows.Err()
}

func keyRank(role string) int {
	switch role {
	case "PRI":
		return 3
	case "UNI":
		return 2
	case "MUL":
		return 1
	}
	return 0
}

// pgTypeAliases maps the short spellings PostgreSQL accepts (and some
// clients emit) onto the canonical names the catalog reports. Matching is
// an exact lookup on the base name, never a prefix rewrite, so canonical
// names map to themselves and normalization is idempotent.
var pgTypeAliases = map[string]string{
	"int":         "integer",
	"int4":        "integer",
	"int2":        "smallint",
	"int8":        "bigint",
	"serial":      "integer",
	"bigserial":   "bigint",
	"smallserial": "smallint",
	"varchar":     "character varying",
	"char":        "character",
	"bpchar":      "character",
	"bool":        "boolean",
	"decimal":     "numeric",
	"float4":      "real",
	"float8":      "double precision",
	"timestamptz": "timestamp with time zone",
	"timestamp":   "timestamp without time zone",
	"timetz":      "time with time zone",
}

func (d *PostgresDialect) Normalize(st schema.TableStructure) schema.TableStructure {
	normalized := make(schema.TableStructure, len(st))
	for name, attrs := range st {
		attrs.Type = d.NormalizeType(attrs.Type)
		attrs.Default = d.NormalizeDefault(attrs.Default)
		normalized[name] = attrs
	}
	return normalized
}

// NormalizeType canonicalizes a type spelling: lowercase, trimmed, base name
// resolved through pgTypeAliases with any (n) / (p,s) suffix reattached.
func (d *PostgresDialect) NormalizeType(colType string) string {
	t := strings.ToLower(strings.TrimSpace(colType))
	base, suffix := t, ""
	if i := strings.Index(t, "("); i >= 0 {
		base, suffix = strings.TrimSpace(t[:i]), t[i:]
	}
	if canonical, ok := pgTypeAliases[base]; ok {
		return canonical + suffix
	}
	return t
}

// NormalizeDefault folds catalog renderings of a default into a portable
// form. Sequence-backed defaults collapse to a SEQUENCE marker because the
// literal sequence name never matches across databases.
func (d *PostgresDialect) NormalizeDefault(def string) string {
	v := strings.TrimSpace(def)
	if v == "" || strings.EqualFold(v, "null") {
		return "NULL"
	}
	lower := strings.ToLower(v)
	if strings.Contains(lower, "nextval") {
		return "SEQUENCE"
	}
	if strings.Contains(lower, "now()") || strings.Contains(lower, "current_timestamp") {
		return "CURRENT_TIMESTAMP"
	}
	if i := strings.Index(v, "::"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	v = strings.Trim(v, `'"`)
	if v == "" || strings.EqualFold(v, "null") {
		return "NULL"
	}
	return v
}

func (d *PostgresDialect) AddColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD COLUMN %s %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column), attrs.Type)
	if attrs.Nullable == "NO" {
		b.WriteString(" NOT NULL")
	}
	if attrs.HasDefault() {
		b.WriteString(" DEFAULT " + d.formatDefault(attrs.Default))
	}
	b.WriteString(";")

	stmts := []string{b.String()}
	if attrs.Comment != "" {
		stmts = append(stmts, d.commentDDL(table, column, attrs.Comment))
	}
	return stmts
}

// ModifyColumnSQL emits one ALTER per changed aspect: PostgreSQL has no
// single-clause column redefinition like MySQL's MODIFY COLUMN.
func (d *PostgresDialect) ModifyColumnSQL(table, column string, attrs schema.ColumnAttributes) []string {
	t := d.QuoteIdentifier(table)
	c := d.QuoteIdentifier(column)

	stmts := []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s;", t, c, attrs.Type)}
	if attrs.Nullable == "NO" {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL;", t, c))
	} else {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP NOT NULL;", t, c))
	}
	if attrs.HasDefault() {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s;", t, c, d.formatDefault(attrs.Default)))
	} else {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT;", t, c))
	}
	if attrs.Comment != "" {
		stmts = append(stmts, d.commentDDL(table, column, attrs.Comment))
	}
	return stmts
}

func (d *PostgresDialect) commentDDL(table, column, comment string) string {
	return fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s;",
		d.QuoteIdentifier(table), d.QuoteIdentifier(column), QuoteString(comment))
}

// formatDefault leaves the function-style defaults bare and quotes the rest.
func (d *PostgresDialect) formatDefault(def string) string {
	switch strings.ToUpper(def) {
	case "CURRENT_TIMESTAMP", "NOW()", "CURRENT_DATE":
		return def
	}
	return QuoteString(def)
}

func (d *PostgresDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) BatchSelectQuery(table string, columns []string, offset, limit int) string {
	return fmt.Sprintf("SELECT %s FROM %s LIMIT %d OFFSET %d",
		QuoteColumns(columns, d.QuoteIdentifier), d.QuoteIdentifier(table), limit, offset)
}

func (d *PostgresDialect) FormatValue(v interface{}) string {
	switch val := v.(type) {
	case []byte:
		return `'\x` + hex.EncodeToString(val) + `'`
	case time.Time:
		return "'" + val.Format(DateTimeLayout) + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	}
	return formatBasicValue(v)
}
