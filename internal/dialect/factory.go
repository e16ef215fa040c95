package dialect

// GetDialect returns the appropriate Dialect implementation based on driver name.
// Config aliases resolve here; the returned dialect's Name() is always the
// registered driver string, so sql.Open(d.Name(), dsn) works for any alias.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return &MysqlDialect{}, nil
	case "postgres", "postgresql":
		return &PostgresDialect{}, nil
	case "oracle":
		return &OracleDialect{}, nil
	case "sqlite3", "sqlite":
		return &SQLiteDialect{}, nil
	case "sqlserver", "mssql":
		return &MSSQLDialect{}, nil
	}
	return nil, ErrUnsupported("unsupported driver %q (supported: mysql, postgres, oracle, sqlite3, sqlserver)", driver)
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
