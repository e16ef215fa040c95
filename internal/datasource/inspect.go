package datasource

import "db-admin/internal/schema"

// ListTables returns the source's base tables sorted by name.
func (s *Source) ListTables() ([]schema.TableInfo, error) {
	tables, err := s.dialect.ListTables(s.db)
	if err != nil {
		return nil, s.wrap(err)
	}
	return tables, nil
}

// TableStructure introspects one table through the source's dialect.
func (s *Source) TableStructure(table string) (schema.TableStructure, error) {
	st, err := s.dialect.TableStructure(s.db, table)
	if err != nil {
		return nil, s.wrap(err)
	}
	return st, nil
}

// TableExists reports whether the table is present.
func (s *Source) TableExists(table string) (bool, error) {
	exists, err := s.dialect.TableExists(s.db, table)
	if err != nil {
		return false, s.wrap(err)
	}
	return exists, nil
}
