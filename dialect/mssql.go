package dialect

import "github.com/IvanStoilov/sequelize-auto/schema"

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string     { return "mssql" }
func (d *MSSQLDialect) HasSchema() bool  { return true }
func (d *MSSQLDialect) CanAliasPK() bool { return true }

// IsSerialKey covers IDENTITY columns, which loaders report through the
// auto-increment flag.
func (d *MSSQLDialect) IsSerialKey(c *schema.Column) bool {
	return c.AutoIncrement
}
