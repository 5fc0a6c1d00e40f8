package dialect

import "github.com/IvanStoilov/sequelize-auto/schema"

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string     { return "mysql" }
func (d *MysqlDialect) HasSchema() bool  { return false }
func (d *MysqlDialect) CanAliasPK() bool { return true }

func (d *MysqlDialect) IsSerialKey(c *schema.Column) bool {
	return c.AutoIncrement
}
