package dialect

import "github.com/IvanStoilov/sequelize-auto/schema"

// Dialect abstracts the database-specific quirks that change how a model
// is rendered.
type Dialect interface {
	// Name is the identifier used for dialect-keyed behavior such as
	// default-value handling.
	Name() string
	// HasSchema reports whether the dialect supports schema-qualified
	// table names.
	HasSchema() bool
	// CanAliasPK reports whether a primary-key column may be renamed to a
	// different attribute name in the model.
	CanAliasPK() bool
	// IsSerialKey reports whether the column is an auto-populated
	// serial/identity key.
	IsSerialKey(c *schema.Column) bool
}
