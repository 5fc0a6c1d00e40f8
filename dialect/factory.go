package dialect

import "strings"

// Names lists the supported dialect identifiers.
var Names = []string{"postgres", "mysql", "mssql", "sqlite"}

// GetDialect returns the Dialect implementation for the given name.
// Unknown names fall back to postgres.
func GetDialect(name string) Dialect {
	switch strings.ToLower(name) {
	case "mysql", "mariadb":
		return &MysqlDialect{}
	case "mssql", "sqlserver":
		return &MSSQLDialect{}
	case "sqlite", "sqlite3":
		return &SqliteDialect{}
	default: // postgres
		return &PostgresDialect{}
	}
}

// Ensure interface implementation
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*SqliteDialect)(nil)
