package schema

import "strings"

// TableData is a fully loaded schema: every table plus the flat list of
// cross-table relations consumed during generation.
type TableData struct {
	Tables    []*Table
	Relations []*Relation
}

// Table looks a table up by bare or schema-qualified name.
func (td *TableData) Table(name string) *Table {
	for _, t := range td.Tables {
		if t.Name == name || t.QName() == name {
			return t
		}
	}
	return nil
}

type Table struct {
	Schema      string
	Name        string
	Columns     []*Column // declaration order is preserved through generation
	Indexes     []*Index
	HasTriggers bool
}

// QName returns the schema-qualified table name.
func (t *Table) QName() string {
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

// Column looks a column up by name.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type Column struct {
	Name          string
	Type          string // raw SQL type, e.g. "character varying(45)"
	AllowNull     bool
	Default       any // raw default: string, number or bool; nil when absent
	PrimaryKey    bool
	AutoIncrement bool
	Unique        bool
	UniqueKey     string // named unique constraint; wins over Unique
	Comment       string
	Special       []string       // enum values
	ElementType   string         // element type for array/range/geometry columns
	Extra         map[string]any // passthrough attributes emitted verbatim
	ForeignKey    *ForeignKey
}

type ForeignKey struct {
	TargetTable  string
	TargetColumn string
	Generation   string // identity generation: "ALWAYS" or "BY DEFAULT"
	IsForeignKey bool   // true inbound foreign key, not an exported-key record
	IsPrimaryKey bool
	IsUnique     bool
	IsSerialKey  bool
}

type Index struct {
	Name   string
	Unique bool
	Type   string // UNIQUE, FULLTEXT, SPATIAL, or an access method like btree
	Fields []*IndexField
}

type IndexField struct {
	Name    string
	Collate string
	Length  int
	Order   string // ASC or DESC; ASC is never emitted
}

// Relation links a parent table to a child table through a foreign key.
// Model and prop names are stored already case-converted.
type Relation struct {
	ParentTable string
	ParentModel string
	ParentProp  string
	ParentID    string // foreign-key column on the child (or junction) table
	ChildTable  string
	ChildModel  string
	ChildProp   string
	ChildID     string
	IsOne       bool
	IsM2M       bool
	JoinModel   string // junction model name, many-to-many only
}

// SplitQName splits an optionally schema-qualified table name.
func SplitQName(qname string) (schemaName, tableName string) {
	if i := strings.Index(qname, "."); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}
