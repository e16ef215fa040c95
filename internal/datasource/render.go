package datasource

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"db-admin/internal/schema"
)

// RenderTableList writes the table inventory as an aligned two-column grid.
func RenderTableList(w io.Writer, tables []schema.TableInfo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tCOMMENT")
	for _, t := range tables {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Comment)
	}
	tw.Flush()
}

// RenderStructure writes one row per column, sorted by column name, with
// the full attribute set an operator needs to eyeball a table.
func RenderStructure(w io.Writer, table string, st schema.TableStructure) {
	fmt.Fprintf(w, "Structure of %s (%d columns):\n", table, len(st))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tNULLABLE\tKEY\tDEFAULT\tEXTRA\tCOMMENT")
	for _, name := range st.SortedColumns() {
		attrs := st[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			name, attrs.Type, attrs.Nullable, attrs.Key,
			renderDefault(attrs), attrs.Extra, attrs.Comment)
	}
	tw.Flush()
}

func renderDefault(attrs schema.ColumnAttributes) string {
	if !attrs.HasDefault() {
		return "NULL"
	}
	return attrs.Default
}

// RenderResultGrid writes an ad-hoc query result. Values arrive already
// stringified; NULLs are printed as NULL.
func RenderResultGrid(w io.Writer, columns []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d row(s)\n", len(rows))
}
