package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanStoilov/sequelize-auto/naming"
	"github.com/IvanStoilov/sequelize-auto/schema"
)

func fkColumn(name, targetTable, targetColumn string, pk, unique bool) *schema.Column {
	return &schema.Column{
		Name:       name,
		Type:       "INT",
		PrimaryKey: pk,
		ForeignKey: &schema.ForeignKey{
			TargetTable:  targetTable,
			TargetColumn: targetColumn,
			IsForeignKey: true,
			IsPrimaryKey: pk,
			IsUnique:     unique,
		},
	}
}

func TestRelateBelongsToHasMany(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "customers", Columns: []*schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
			}},
			{Name: "orders", Columns: []*schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
				fkColumn("customer_id", "customers", "id", false, false),
			}},
		},
	}

	schema.Relate(td, naming.CaseOriginal, naming.CaseOriginal, false)
	require.Len(t, td.Relations, 1)

	rel := td.Relations[0]
	assert.Equal(t, "customers", rel.ParentTable)
	assert.Equal(t, "customers", rel.ParentModel)
	assert.Equal(t, "customer", rel.ParentProp)
	assert.Equal(t, "customer_id", rel.ParentID)
	assert.Equal(t, "orders", rel.ChildTable)
	assert.Equal(t, "orders", rel.ChildProp)
	assert.Equal(t, "id", rel.ChildID)
	assert.False(t, rel.IsOne)
	assert.False(t, rel.IsM2M)
}

func TestRelateUniqueForeignKeyIsOne(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "users", Columns: []*schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
			}},
			{Name: "profiles", Columns: []*schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
				fkColumn("userid", "users", "id", false, true),
			}},
		},
	}

	schema.Relate(td, naming.CaseCamel, naming.CaseCamel, true)
	require.Len(t, td.Relations, 1)

	rel := td.Relations[0]
	assert.True(t, rel.IsOne)
	assert.Equal(t, "user", rel.ParentProp)
	assert.Equal(t, "profile", rel.ChildProp)
	assert.Equal(t, "user", rel.ParentModel)
	assert.Equal(t, "profile", rel.ChildModel)
}

func TestRelateJunctionTable(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "posts", Columns: []*schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
			}},
			{Name: "tags", Columns: []*schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
			}},
			{Name: "post_tags", Columns: []*schema.Column{
				fkColumn("post_id", "posts", "id", true, false),
				fkColumn("tag_id", "tags", "id", true, false),
			}},
		},
	}

	schema.Relate(td, naming.CaseOriginal, naming.CaseOriginal, false)

	var m2m []*schema.Relation
	for _, rel := range td.Relations {
		if rel.IsM2M {
			m2m = append(m2m, rel)
		}
	}
	require.Len(t, m2m, 2, "junction table should produce one many-to-many per side")
	require.Len(t, td.Relations, 4)

	byParent := map[string]*schema.Relation{}
	for _, rel := range m2m {
		byParent[rel.ParentTable] = rel
	}
	require.Contains(t, byParent, "posts")
	require.Contains(t, byParent, "tags")

	posts := byParent["posts"]
	assert.Equal(t, "tags", posts.ParentProp)
	assert.Equal(t, "post_id", posts.ParentID)
	assert.Equal(t, "tag_id", posts.ChildID)
	assert.Equal(t, "post_tags", posts.JoinModel)

	tags := byParent["tags"]
	assert.Equal(t, "posts", tags.ParentProp)
	assert.Equal(t, "tag_id", tags.ParentID)
	assert.Equal(t, "post_id", tags.ChildID)
}

func TestRelateCompositeKeyWithoutPartnerIsNotM2M(t *testing.T) {
	t.Parallel()

	// Only one of the key columns is a foreign key, so this is a weak
	// entity rather than a junction.
	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "orders", Columns: []*schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
			}},
			{Name: "order_lines", Columns: []*schema.Column{
				fkColumn("order_id", "orders", "id", true, false),
				{Name: "line_no", Type: "INT", PrimaryKey: true},
			}},
		},
	}

	schema.Relate(td, naming.CaseOriginal, naming.CaseOriginal, false)
	require.Len(t, td.Relations, 1)
	assert.False(t, td.Relations[0].IsM2M)
	assert.True(t, td.Relations[0].IsOne, "sole primary-key foreign key implies a one-to-one")
}

func TestRelateSortsByParentThenChild(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "zones", Columns: []*schema.Column{{Name: "id", Type: "INT", PrimaryKey: true}}},
			{Name: "areas", Columns: []*schema.Column{{Name: "id", Type: "INT", PrimaryKey: true}}},
			{Name: "sites", Columns: []*schema.Column{
				{Name: "id", Type: "INT", PrimaryKey: true},
				fkColumn("zone_id", "zones", "id", false, false),
				fkColumn("area_id", "areas", "id", false, false),
			}},
		},
	}

	schema.Relate(td, naming.CaseOriginal, naming.CaseOriginal, false)
	require.Len(t, td.Relations, 2)
	assert.Equal(t, "areas", td.Relations[0].ParentTable)
	assert.Equal(t, "zones", td.Relations[1].ParentTable)
}

func TestRelateReplacesExistingRelations(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "users", Columns: []*schema.Column{{Name: "id", Type: "INT", PrimaryKey: true}}},
		},
		Relations: []*schema.Relation{{ParentTable: "stale"}},
	}

	schema.Relate(td, naming.CaseOriginal, naming.CaseOriginal, false)
	assert.Empty(t, td.Relations)
}

func TestSplitQName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		qname  string
		schema string
		table  string
	}{
		{"public.users", "public", "users"},
		{"users", "", "users"},
		{"dbo.sales.orders", "dbo", "sales.orders"},
	}
	for _, tt := range tests {
		s, n := schema.SplitQName(tt.qname)
		assert.Equal(t, tt.schema, s, tt.qname)
		assert.Equal(t, tt.table, n, tt.qname)
	}
}

func TestTableLookup(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Schema: "public", Name: "users"},
			{Name: "orders"},
		},
	}

	assert.NotNil(t, td.Table("users"))
	assert.NotNil(t, td.Table("public.users"))
	assert.NotNil(t, td.Table("orders"))
	assert.Nil(t, td.Table("missing"))
	assert.Nil(t, td.Table("other.users"))
}
