package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"db-admin/internal/schema"
)

// CompareWith introspects the table on both sources, diffs the structures
// and renders a report. With generateSQL set, the ALTER statements that
// would reshape this source's table into the other's land in
// <exportDir>/alter_<table>_<otherSource>.sql.
//
// Every failure surfaces under one message prefix so callers and scripts
// see a single contract regardless of which side or step failed.
func (s *Source) CompareWith(table string, other *Source, generateSQL bool, exportDir string) (string, error) {
	report, err := s.compareWith(table, other, generateSQL, exportDir)
	if err != nil {
		return "", fmt.Errorf("table structure comparison failed: %w", err)
	}
	return report, nil
}

func (s *Source) compareWith(table string, other *Source, generateSQL bool, exportDir string) (string, error) {
	mine, err := s.TableStructure(table)
	if err != nil {
		return "", err
	}
	theirs, err := other.TableStructure(table)
	if err != nil {
		return "", err
	}

	// Both sides normalize through this source's dialect so spelling
	// variants of one type (int vs integer) never read as drift.
	mineN := s.dialect.Normalize(mine)
	theirsN := s.dialect.Normalize(theirs)
	diff := schema.Diff(mineN, theirsN)

	var b strings.Builder
	fmt.Fprintf(&b, "Structure comparison for table '%s'\n", table)
	fmt.Fprintf(&b, "  mine:  %s (%s)\n", s.name, s.driver)
	fmt.Fprintf(&b, "  other: %s (%s)\n\n", other.name, other.driver)

	if !diff.HasChanges() {
		b.WriteString("Table structures match.\n")
		return b.String(), nil
	}

	if len(diff.OnlyInMine) > 0 {
		fmt.Fprintf(&b, "Columns only in %s:\n", s.name)
		for _, col := range diff.OnlyInMine {
			fmt.Fprintf(&b, "  - %s %s\n", col, mineN[col].Type)
		}
		b.WriteString("\n")
	}
	if len(diff.OnlyInOther) > 0 {
		fmt.Fprintf(&b, "Columns only in %s:\n", other.name)
		for _, col := range diff.OnlyInOther {
			fmt.Fprintf(&b, "  - %s %s\n", col, theirsN[col].Type)
		}
		b.WriteString("\n")
	}
	if len(diff.Differing) > 0 {
		b.WriteString("Columns with different definitions:\n")
		for _, col := range diff.Differing {
			m, o := mineN[col], theirsN[col]
			fmt.Fprintf(&b, "  - %s\n", col)
			fmt.Fprintf(&b, "      mine:  %s\n", describeColumn(m))
			fmt.Fprintf(&b, "      other: %s\n", describeColumn(o))
		}
		b.WriteString("\n")
	}

	if generateSQL {
		// Synthesis consumes the other side's raw attributes: catalog
		// types are valid DDL, normalized markers like SEQUENCE are not.
		stmts := s.synthesizeAlter(table, theirs, diff)
		if len(stmts) == 0 {
			b.WriteString("No ALTER statements to generate (differences exist only on this side).\n")
			return b.String(), nil
		}
		path := filepath.Join(exportDir, fmt.Sprintf("alter_%s_%s.sql", table, other.name))
		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(strings.Join(stmts, "\n")+"\n"), 0o644); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "ALTER script written to %s\n", path)
	}
	return b.String(), nil
}

// synthesizeAlter turns the diff into DDL against this source: ADD for every
// column the other side has and this one lacks, MODIFY for every common
// column whose definition drifted. Columns only on this side are reported
// but never dropped.
func (s *Source) synthesizeAlter(table string, theirs schema.TableStructure, diff schema.DiffResult) []string {
	var stmts []string
	for _, col := range diff.OnlyInOther {
		stmts = append(stmts, s.dialect.AddColumnSQL(table, col, theirs[col])...)
	}
	for _, col := range diff.Differing {
		stmts = append(stmts, s.dialect.ModifyColumnSQL(table, col, theirs[col])...)
	}
	return stmts
}

func describeColumn(attrs schema.ColumnAttributes) string {
	def := attrs.Default
	if !attrs.HasDefault() {
		def = "NULL"
	}
	return fmt.Sprintf("%s, nullable=%s, default=%s", attrs.Type, attrs.Nullable, def)
}
