package datasource

import (
	"database/sql"
	"fmt"
	"strings"

	"db-admin/internal/dialect"
)

// ExecResult is the outcome of one ad-hoc statement.
type ExecResult struct {
	IsQuery  bool
	Columns  []string
	Rows     [][]string
	Affected int64
}

// Execute runs a single SQL statement. Row-returning statements come back
// as a stringified grid, everything else as an affected-row count.
func (s *Source) Execute(stmt string) (*ExecResult, error) {
	stmt = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt), ";"))
	if stmt == "" {
		return nil, s.wrap(dialect.ErrExecution("empty statement"))
	}

	if isRowReturning(stmt) {
		rows, err := s.db.Query(stmt)
		if err != nil {
			return nil, s.wrap(dialect.ErrExecution("query failed: %v", err))
		}
		cols, grid, err := scanGrid(rows)
		if err != nil {
			return nil, s.wrap(dialect.ErrExecution("scan failed: %v", err))
		}
		return &ExecResult{IsQuery: true, Columns: cols, Rows: grid}, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, s.wrap(dialect.ErrExecution("begin failed: %v", err))
	}
	res, err := tx.Exec(stmt)
	if err != nil {
		tx.Rollback()
		return nil, s.wrap(dialect.ErrExecution("execution failed: %v", err))
	}
	if err := tx.Commit(); err != nil {
		return nil, s.wrap(dialect.ErrExecution("commit failed: %v", err))
	}
	return &ExecResult{Affected: countAffected(stmt, res)}, nil
}

// countAffected reads RowsAffected for DML. DDL drivers report nothing
// useful there, so a DDL statement counts as one.
func countAffected(stmt string, res sql.Result) int64 {
	if isDDL(stmt) {
		return 1
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return affected
}

func isDDL(stmt string) bool {
	head := strings.ToUpper(stmt)
	if i := strings.IndexAny(head, " \t\r\n("); i > 0 {
		head = head[:i]
	}
	switch head {
	case "ALTER", "CREATE", "DROP", "TRUNCATE", "COMMENT":
		return true
	}
	return false
}

// isRowReturning routes on the leading keyword. DML and DDL go through
// Exec; anything that produces a result set goes through Query.
func isRowReturning(stmt string) bool {
	head := strings.ToUpper(stmt)
	if i := strings.IndexAny(head, " \t\r\n("); i > 0 {
		head = head[:i]
	}
	switch head {
	case "SELECT", "WITH", "SHOW", "PRAGMA", "EXPLAIN", "DESCRIBE", "DESC":
		return true
	}
	return false
}

// scanGrid drains a result set into strings for display. Every value is
// scanned into interface{} first so each driver's native types survive.
func scanGrid(rows *sql.Rows) ([]string, [][]string, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var grid [][]string
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = displayValue(v)
		}
		grid = append(grid, row)
	}
	return cols, grid, rows.Err()
}

func displayValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
