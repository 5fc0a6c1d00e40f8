package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/IvanStoilov/sequelize-auto/schema"
)

// Document is a parsed schema file: the loaded tables plus the dialect
// the file declares for itself, if any.
type Document struct {
	Dialect string
	Data    *schema.TableData
}

type yamlFile struct {
	Dialect   string         `yaml:"dialect"`
	Schema    string         `yaml:"schema"`
	Tables    []yamlTable    `yaml:"tables"`
	Relations []yamlRelation `yaml:"relations"`
}

type yamlTable struct {
	Name        string       `yaml:"name"`
	Schema      string       `yaml:"schema"`
	HasTriggers bool         `yaml:"has_triggers"`
	Columns     []yamlColumn `yaml:"columns"`
	Indexes     []yamlIndex  `yaml:"indexes"`
}

type yamlColumn struct {
	Name          string          `yaml:"name"`
	Type          string          `yaml:"type"`
	NotNull       bool            `yaml:"not_null"`
	Primary       bool            `yaml:"primary"`
	AutoIncrement bool            `yaml:"auto_increment"`
	Unique        bool            `yaml:"unique"`
	UniqueKey     string          `yaml:"unique_key"`
	Default       any             `yaml:"default"`
	Comment       string          `yaml:"comment"`
	Special       []string        `yaml:"special"`
	ElementType   string          `yaml:"element_type"`
	Extra         map[string]any  `yaml:"extra"`
	ForeignKey    *yamlForeignKey `yaml:"foreign_key"`
}

type yamlForeignKey struct {
	ReferencesTable  string `yaml:"references_table"`
	ReferencesColumn string `yaml:"references_column"`
	Primary          bool   `yaml:"primary"`
	Unique           bool   `yaml:"unique"`
	Serial           bool   `yaml:"serial"`
	Generation       string `yaml:"generation"`
}

type yamlIndex struct {
	Name   string           `yaml:"name"`
	Unique bool             `yaml:"unique"`
	Type   string           `yaml:"type"`
	Fields []yamlIndexField `yaml:"fields"`
}

// yamlIndexField accepts either a bare column name or a mapping with
// collate/length/order.
type yamlIndexField struct {
	Name    string `yaml:"name"`
	Collate string `yaml:"collate"`
	Length  int    `yaml:"length"`
	Order   string `yaml:"order"`
}

func (f *yamlIndexField) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&f.Name)
	}
	type plain yamlIndexField
	return node.Decode((*plain)(f))
}

type yamlRelation struct {
	ParentTable string `yaml:"parent_table"`
	ParentModel string `yaml:"parent_model"`
	ParentProp  string `yaml:"parent_prop"`
	ParentID    string `yaml:"parent_id"`
	ChildTable  string `yaml:"child_table"`
	ChildModel  string `yaml:"child_model"`
	ChildProp   string `yaml:"child_prop"`
	ChildID     string `yaml:"child_id"`
	One         bool   `yaml:"one"`
	M2M         bool   `yaml:"m2m"`
	JoinModel   string `yaml:"join_model"`
}

// LoadSchemaFromYAML reads a schema file and maps it onto the schema
// model. JSON schema files load through the same path, YAML being a
// superset.
func LoadSchemaFromYAML(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	td := &schema.TableData{}
	for _, t := range yf.Tables {
		table := &schema.Table{
			Name:        t.Name,
			Schema:      t.Schema,
			HasTriggers: t.HasTriggers,
		}
		if table.Schema == "" {
			table.Schema = yf.Schema
		}
		for _, c := range t.Columns {
			table.Columns = append(table.Columns, mapColumn(c))
		}
		for _, idx := range t.Indexes {
			table.Indexes = append(table.Indexes, mapIndex(idx))
		}
		td.Tables = append(td.Tables, table)
	}
	for _, r := range yf.Relations {
		td.Relations = append(td.Relations, &schema.Relation{
			ParentTable: r.ParentTable,
			ParentModel: r.ParentModel,
			ParentProp:  r.ParentProp,
			ParentID:    r.ParentID,
			ChildTable:  r.ChildTable,
			ChildModel:  r.ChildModel,
			ChildProp:   r.ChildProp,
			ChildID:     r.ChildID,
			IsOne:       r.One,
			IsM2M:       r.M2M,
			JoinModel:   r.JoinModel,
		})
	}

	return &Document{Dialect: yf.Dialect, Data: td}, nil
}

func mapColumn(c yamlColumn) *schema.Column {
	col := &schema.Column{
		Name: c.Name,
		Type: c.Type,
		// primary keys are implicitly not null
		AllowNull:     !c.NotNull && !c.Primary,
		Default:       c.Default,
		PrimaryKey:    c.Primary,
		AutoIncrement: c.AutoIncrement,
		Unique:        c.Unique,
		UniqueKey:     c.UniqueKey,
		Comment:       c.Comment,
		Special:       c.Special,
		ElementType:   c.ElementType,
		Extra:         c.Extra,
	}
	if c.ForeignKey != nil {
		col.ForeignKey = &schema.ForeignKey{
			TargetTable:  c.ForeignKey.ReferencesTable,
			TargetColumn: c.ForeignKey.ReferencesColumn,
			Generation:   c.ForeignKey.Generation,
			// a descriptor without a target carries identity metadata
			// only, not a real foreign key
			IsForeignKey: c.ForeignKey.ReferencesTable != "",
			IsPrimaryKey: c.ForeignKey.Primary || c.Primary,
			IsUnique:     c.ForeignKey.Unique || c.Unique,
			IsSerialKey:  c.ForeignKey.Serial,
		}
	}
	return col
}

func mapIndex(idx yamlIndex) *schema.Index {
	out := &schema.Index{
		Name:   idx.Name,
		Unique: idx.Unique,
		Type:   idx.Type,
	}
	for _, f := range idx.Fields {
		out.Fields = append(out.Fields, &schema.IndexField{
			Name:    f.Name,
			Collate: f.Collate,
			Length:  f.Length,
			Order:   f.Order,
		})
	}
	return out
}
