package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"db-admin/internal/dialect"
)

// FileResult summarizes one executed script file.
type FileResult struct {
	Path       string
	Statements int
	Affected   int64
}

// RunPath executes a .sql file, or every .sql file inside a directory in
// name order. Each file runs inside its own transaction, so a failing
// statement rolls back the whole file but keeps earlier files committed.
func (s *Source) RunPath(path string) ([]FileResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, s.wrap(dialect.ErrNotFound("path '%s' does not exist", path))
	}
	if err != nil {
		return nil, s.wrap(err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, s.wrap(err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".sql") {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
		sort.Strings(files)
		if len(files) == 0 {
			return nil, s.wrap(dialect.ErrNotFound("no .sql files found in directory '%s'", path))
		}
	} else {
		if !strings.EqualFold(filepath.Ext(path), ".sql") {
			return nil, fmt.Errorf("not a .sql file: %s", path)
		}
		files = []string{path}
	}

	var results []FileResult
	for _, f := range files {
		result, err := s.runFile(f)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Source) runFile(path string) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, s.wrap(err)
	}

	stmts := SplitStatements(string(content))
	result := FileResult{Path: path}
	if len(stmts) == 0 {
		return result, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return result, s.wrap(dialect.ErrExecution("begin failed: %v", err))
	}
	for i, stmt := range stmts {
		res, err := tx.Exec(stmt)
		if err != nil {
			tx.Rollback()
			return result, s.wrap(dialect.ErrExecution("file '%s' statement %d failed: %v", path, i+1, err))
		}
		result.Statements++
		result.Affected += countAffected(stmt, res)
	}
	if err := tx.Commit(); err != nil {
		return result, s.wrap(dialect.ErrExecution("file '%s' commit failed: %v", path, err))
	}
	return result, nil
}

// SplitStatements cuts script text on ';' and keeps only runnable
// fragments. A fragment whose every line is blank or a -- comment is
// dropped; comment lines above a statement stay attached to it.
func SplitStatements(script string) []string {
	var out []string
	for _, frag := range strings.Split(script, ";") {
		stmt := strings.TrimSpace(frag)
		if stmt == "" || isCommentOnly(stmt) {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

func isCommentOnly(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		return false
	}
	return true
}
