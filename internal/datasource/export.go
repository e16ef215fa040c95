package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"db-admin/internal/dialect"
)

// exportBatchSize is the number of rows per generated file.
const exportBatchSize = 1000

// ExportResult summarizes one table export.
type ExportResult struct {
	Table string
	Rows  int
	Files []string
}

// ExportData pages the table in batches and writes each batch to
// <dir>/<table>_<n>.sql as one multi-row INSERT. Column order follows the
// sorted structure so the files are reproducible run to run. progress, when
// set, fires after every written file with the done and total batch counts.
func (s *Source) ExportData(table, dir string, progress func(done, total int)) (*ExportResult, error) {
	st, err := s.TableStructure(table)
	if err != nil {
		return nil, err
	}
	columns := st.SortedColumns()

	var count int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.dialect.QuoteIdentifier(table))
	if err := s.db.QueryRow(countQuery).Scan(&count); err != nil {
		return nil, s.wrap(dialect.ErrExecution("count failed for table '%s': %v", table, err))
	}

	result := &ExportResult{Table: table}
	if count == 0 {
		return result, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, s.wrap(err)
	}

	batches := (count + exportBatchSize - 1) / exportBatchSize
	for i := 0; i < batches; i++ {
		query := s.dialect.BatchSelectQuery(table, columns, i*exportBatchSize, exportBatchSize)
		values, err := s.fetchBatchValues(query)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%d.sql", table, i+1))
		if err := writeInsertFile(path, table, columns, values); err != nil {
			return nil, s.wrap(err)
		}
		result.Rows += len(values)
		result.Files = append(result.Files, path)
		if progress != nil {
			progress(i+1, batches)
		}
	}
	return result, nil
}

// fetchBatchValues runs one page query and renders every row into a
// parenthesized SQL tuple.
func (s *Source) fetchBatchValues(query string) ([]string, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, s.wrap(dialect.ErrExecution("batch query failed: %v", err))
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, s.wrap(err)
	}
	// Text columns arrive as []byte from several drivers; only genuinely
	// binary columns may stay []byte for hex formatting.
	binary := make([]bool, len(colTypes))
	for i, ct := range colTypes {
		binary[i] = isBinaryType(ct.DatabaseTypeName())
	}

	var tuples []string
	for rows.Next() {
		vals := make([]interface{}, len(colTypes))
		ptrs := make([]interface{}, len(colTypes))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, s.wrap(err)
		}

		rendered := make([]string, len(vals))
		for i, v := range vals {
			if b, ok := v.([]byte); ok && !binary[i] {
				v = string(b)
			}
			rendered[i] = s.dialect.FormatValue(v)
		}
		tuples = append(tuples, "("+strings.Join(rendered, ", ")+")")
	}
	return tuples, rows.Err()
}

func isBinaryType(dbType string) bool {
	t := strings.ToUpper(dbType)
	switch {
	case strings.Contains(t, "BLOB"),
		strings.Contains(t, "BINARY"),
		t == "BYTEA",
		t == "RAW", t == "LONG RAW",
		t == "IMAGE":
		return true
	}
	return false
}

func writeInsertFile(path, table string, columns []string, values []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))
	b.WriteString(strings.Join(values, ", "))
	b.WriteString(";")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
