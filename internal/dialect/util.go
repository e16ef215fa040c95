package dialect

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"db-admin/internal/schema"
)

// DateTimeLayout is the literal layout used when rendering timestamps into
// generated SQL.
const DateTimeLayout = "2006-01-02 15:04:05"

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// QuoteString renders s as a single-quoted SQL literal, doubling embedded
// quotes.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteColumns quotes every name with the dialect's quoting function and
// joins them with commas.
func QuoteColumns(names []string, quote func(string) string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return strings.Join(quoted, ", ")
}

// AugmentKey appends secondary index names to a constraint key role:
// "PRI" + [ix_a] -> "PRI (ix_a)", "" + [ix_a, ix_b] -> "IDX (ix_a, ix_b)".
// Names are sorted so describe output stays stable.
func AugmentKey(key string, indexes []string) string {
	if len(indexes) == 0 {
		return key
	}
	sort.Strings(indexes)
	joined := strings.Join(indexes, ", ")
	if key == "" {
		return "IDX (" + joined + ")"
	}
	return key + " (" + joined + ")"
}

// formatBasicValue renders the literals whose spelling every dialect shares.
// Byte slices, times and booleans differ per dialect and must be handled by
// the caller before delegating here.
func formatBasicValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return QuoteString(val)
	default:
		return QuoteString(fmt.Sprintf("%v", val))
	}
}

// queryStrings runs a query expected to yield a single string column.
func queryStrings(db *sql.DB, query string, args ...interface{}) ([]string, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// queryCount runs a COUNT(*)-style query and returns the single value.
func queryCount(db *sql.DB, query string, args ...interface{}) (int, error) {
	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// scanTableInfos drains a (name, nullable comment) result set.
func scanTableInfos(rows *sql.Rows) ([]schema.TableInfo, error) {
	defer rows.Close()

	var out []schema.TableInfo
	for rows.Next() {
		var name string
		var comment sql.NullString
		if err := rows.Scan(&name, &comment); err != nil {
			return nil, err
		}
		out = append(out, schema.TableInfo{Name: name, Comment: comment.String})
	}
	return out, rows.Err()
}
