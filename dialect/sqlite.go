package dialect

import "github.com/IvanStoilov/sequelize-auto/schema"

type SqliteDialect struct{}

func (d *SqliteDialect) Name() string    { return "sqlite" }
func (d *SqliteDialect) HasSchema() bool { return false }

// CanAliasPK is false: sqlite rowid primary keys must keep their column
// name as the attribute name.
func (d *SqliteDialect) CanAliasPK() bool { return false }

func (d *SqliteDialect) IsSerialKey(c *schema.Column) bool {
	return c.AutoIncrement
}
