package dialect

import (
	"strings"

	"github.com/IvanStoilov/sequelize-auto/schema"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string     { return "postgres" }
func (d *PostgresDialect) HasSchema() bool  { return true }
func (d *PostgresDialect) CanAliasPK() bool { return true }

// IsSerialKey treats identity columns and nextval-backed sequence
// defaults as serial.
func (d *PostgresDialect) IsSerialKey(c *schema.Column) bool {
	if c.AutoIncrement {
		return true
	}
	def, ok := c.Default.(string)
	return ok && strings.HasPrefix(def, "nextval(") && strings.Contains(def, "::regclass")
}
