package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IvanStoilov/sequelize-auto/dialect"
	"github.com/IvanStoilov/sequelize-auto/generator"
	"github.com/IvanStoilov/sequelize-auto/schema"
)

func buildWithIndexes(t *testing.T, indexes []*schema.Index) string {
	t.Helper()
	data := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "articles", Columns: []*schema.Column{
				{Name: "id", Type: "int", PrimaryKey: true},
				{Name: "title", Type: "varchar(200)"},
				{Name: "body", Type: "text", AllowNull: true},
			}, Indexes: indexes},
		},
	}
	g := generator.New(data, dialect.GetDialect("mysql"), generator.Options{Spaces: true})
	text, _ := g.BuildTable(data.Tables[0])
	return text
}

func TestIndexesOmittedWhenEmpty(t *testing.T) {
	t.Parallel()

	text := buildWithIndexes(t, nil)
	assert.NotContains(t, text, "indexes:")
}

func TestIndexesTypeDesignators(t *testing.T) {
	t.Parallel()

	text := buildWithIndexes(t, []*schema.Index{
		{Name: "PRIMARY", Unique: true, Type: "UNIQUE", Fields: []*schema.IndexField{{Name: "id"}}},
		{Name: "title_search", Type: "FULLTEXT", Fields: []*schema.IndexField{{Name: "title"}, {Name: "body"}}},
		{Name: "title_btree", Type: "btree", Fields: []*schema.IndexField{{Name: "title"}}},
	})

	assert.Contains(t, text, `        name: "PRIMARY",
        unique: true,
        type: "UNIQUE",
        fields: [
          { name: "id" },
        ]
`)
	assert.Contains(t, text, `        name: "title_search",
        type: "FULLTEXT",
        fields: [
          { name: "title" },
          { name: "body" },
        ]
`)
	assert.Contains(t, text, `        name: "title_btree",
        using: "btree",
`)
}

func TestIndexFieldModifiers(t *testing.T) {
	t.Parallel()

	text := buildWithIndexes(t, []*schema.Index{
		{Name: "title_prefix", Type: "btree", Fields: []*schema.IndexField{
			{Name: "title", Collate: "utf8mb4_general_ci", Length: 10, Order: "DESC"},
			{Name: "id", Order: "ASC"},
		}},
	})

	assert.Contains(t, text,
		`          { name: "title", collate: "utf8mb4_general_ci", length: 10, order: "DESC" },`+"\n")
	assert.Contains(t, text, `          { name: "id" },`+"\n",
		"ascending order is the default and never spelled out")
}

func TestIndexWithoutName(t *testing.T) {
	t.Parallel()

	text := buildWithIndexes(t, []*schema.Index{
		{Unique: true, Fields: []*schema.IndexField{{Name: "title"}}},
	})

	assert.Contains(t, text, `      {
        unique: true,
        fields: [
          { name: "title" },
        ]
      }`)
	assert.NotContains(t, text, "name: \"\"")
}
