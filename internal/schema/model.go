package schema

import "sort"

// ColumnAttributes describes a single column as reported by the owning
// database's catalog. Type keeps the dialect's own rendering (varchar(100),
// NUMBER(10,2), ...) so generated DDL round-trips verbatim.
type ColumnAttributes struct {
	Type     string // dialect-rendered column type
	Nullable string // "YES" or "NO"
	Key      string // "PRI", "UNI", "MUL", optionally with index names appended
	Default  string // literal default value; "NULL" or "" both mean no default
	Extra    string // dialect extras such as "auto_increment" or "identity"
	Comment  string
}

// HasDefault reports whether the column carries a real default value.
// Catalogs render "no default" as NULL; the empty string and the literal
// string "NULL" are both treated as absent.
func (a ColumnAttributes) HasDefault() bool {
	return a.Default != "" && a.Default != "NULL"
}

// TableStructure maps column names to their attributes. Introspection builds
// a fresh map on every call; callers may mutate their copy freely.
type TableStructure map[string]ColumnAttributes

// SortedColumns returns the column names in lexicographic order so that
// rendering and DDL generation stay deterministic.
func (t TableStructure) SortedColumns() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TableInfo is one row of a table listing.
type TableInfo struct {
	Name    string
	Comment string
}
