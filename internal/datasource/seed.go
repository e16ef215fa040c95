package datasource

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"db-admin/internal/dialect"
	"db-admin/internal/schema"
)

// seedTxBatch is how many inserts share one transaction.
const seedTxBatch = 500

// SeedResult summarizes one seeding run.
type SeedResult struct {
	Table    string
	Inserted int
}

// SeedTable inserts count synthetic rows. Auto-increment and identity
// columns are left to the engine; every other column gets a generated value
// picked from its name and type. onRow, when set, fires per inserted row.
func (s *Source) SeedTable(table string, count int, onRow func()) (*SeedResult, error) {
	st, err := s.TableStructure(table)
	if err != nil {
		return nil, err
	}

	var cols []string
	for _, name := range st.SortedColumns() {
		extra := strings.ToLower(st[name].Extra)
		if strings.Contains(extra, "auto_increment") || strings.Contains(extra, "identity") {
			continue
		}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return nil, s.wrap(dialect.ErrExecution("table '%s' has no seedable columns", table))
	}

	insert := s.insertQuery(table, cols)
	result := &SeedResult{Table: table}

	for result.Inserted < count {
		batch := count - result.Inserted
		if batch > seedTxBatch {
			batch = seedTxBatch
		}

		tx, err := s.db.Begin()
		if err != nil {
			return result, s.wrap(dialect.ErrExecution("begin failed: %v", err))
		}
		for i := 0; i < batch; i++ {
			values := make([]interface{}, len(cols))
			for j, col := range cols {
				values[j] = generateValue(col, st[col])
			}
			if _, err := tx.Exec(insert, values...); err != nil {
				tx.Rollback()
				return result, s.wrap(dialect.ErrExecution("insert into '%s' failed: %v", table, err))
			}
			if onRow != nil {
				onRow()
			}
		}
		if err := tx.Commit(); err != nil {
			return result, s.wrap(dialect.ErrExecution("commit failed: %v", err))
		}
		result.Inserted += batch
	}
	return result, nil
}

func (s *Source) insertQuery(table string, cols []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.dialect.QuoteIdentifier(table),
		dialect.QuoteColumns(cols, s.dialect.QuoteIdentifier),
		dialect.GeneratePlaceholders(len(cols), s.dialect.Placeholder))
}

// generateValue picks a fake value for one column. Name hints win for text
// columns so email stays an email; all other types generate from the type
// alone. Dates bind as formatted strings, the most portable spelling across
// the supported drivers.
func generateValue(name string, attrs schema.ColumnAttributes) interface{} {
	typ := strings.ToLower(attrs.Type)
	col := strings.ToLower(name)

	if isTextType(typ) {
		length := typeLength(typ)
		switch {
		case strings.Contains(col, "email"):
			return truncate(gofakeit.Email(), length)
		case strings.Contains(col, "phone"):
			return truncate(gofakeit.Phone(), length)
		case strings.Contains(col, "first") && strings.Contains(col, "name"):
			return truncate(gofakeit.FirstName(), length)
		case strings.Contains(col, "last") && strings.Contains(col, "name"):
			return truncate(gofakeit.LastName(), length)
		case strings.Contains(col, "name") || strings.Contains(col, "user"):
			return truncate(gofakeit.Name(), length)
		case strings.Contains(col, "city"):
			return truncate(gofakeit.City(), length)
		case strings.Contains(col, "country"):
			return truncate(gofakeit.Country(), length)
		case strings.Contains(col, "address"):
			return truncate(gofakeit.Street(), length)
		case strings.Contains(col, "zip") || strings.Contains(col, "postal"):
			return truncate(gofakeit.Zip(), length)
		case strings.Contains(col, "url"):
			return truncate(gofakeit.URL(), length)
		case strings.Contains(col, "year"):
			return strconv.Itoa(gofakeit.Number(1980, 2025))
		case strings.Contains(col, "description") || strings.Contains(col, "comment") || strings.Contains(col, "text"):
			return truncate(gofakeit.Sentence(8), length)
		}
		if length > 0 && length < 12 {
			return truncate(gofakeit.Word(), length)
		}
		return truncate(gofakeit.Sentence(3), length)
	}

	switch {
	case strings.Contains(typ, "date") || strings.Contains(typ, "time"):
		val := gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
		if typ == "date" {
			return val.Format("2006-01-02")
		}
		if typ == "time" {
			return val.Format("15:04:05")
		}
		return val.Format(dialect.DateTimeLayout)
	case strings.Contains(typ, "int"):
		return gofakeit.Number(1, 10000)
	case strings.Contains(typ, "bool") || strings.HasPrefix(typ, "bit"):
		return gofakeit.Bool()
	case strings.Contains(typ, "num") || strings.Contains(typ, "dec") ||
		strings.Contains(typ, "float") || strings.Contains(typ, "real") ||
		strings.Contains(typ, "double") || strings.Contains(typ, "money"):
		return gofakeit.Price(1, 10000)
	case strings.Contains(typ, "blob") || strings.Contains(typ, "binary") ||
		strings.Contains(typ, "bytea") || strings.Contains(typ, "raw"):
		return []byte(gofakeit.LetterN(8))
	case strings.Contains(typ, "uuid"):
		return gofakeit.UUID()
	}
	return gofakeit.Word()
}

func isTextType(typ string) bool {
	return strings.Contains(typ, "char") || strings.Contains(typ, "text") ||
		strings.Contains(typ, "clob") || strings.Contains(typ, "string")
}

// typeLength pulls n out of a type rendered like varchar(n). Types without
// a single-number suffix report 0, meaning no limit to enforce.
func typeLength(typ string) int {
	open := strings.Index(typ, "(")
	end := strings.Index(typ, ")")
	if open < 0 || end <= open {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(typ[open+1 : end]))
	if err != nil {
		return 0
	}
	return n
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
