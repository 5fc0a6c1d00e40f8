package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanStoilov/sequelize-auto/schema"
	"github.com/IvanStoilov/sequelize-auto/validator"
)

func errorTypes(errs []validator.ValidationError) []string {
	types := make([]string, len(errs))
	for i, e := range errs {
		types[i] = e.Type
	}
	return types
}

func TestValidateSchemaClean(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "customers", Columns: []*schema.Column{
				{Name: "id", Type: "int", PrimaryKey: true},
			}},
			{Name: "orders", Columns: []*schema.Column{
				{Name: "id", Type: "int", PrimaryKey: true},
				{Name: "customer_id", Type: "int", ForeignKey: &schema.ForeignKey{
					TargetTable:  "customers",
					TargetColumn: "id",
					IsForeignKey: true,
				}},
			}, Indexes: []*schema.Index{
				{Name: "orders_customer_idx", Fields: []*schema.IndexField{{Name: "customer_id"}}},
			}},
		},
		Relations: []*schema.Relation{
			{ParentTable: "customers", ChildTable: "orders"},
		},
	}

	result := validator.ValidateSchema(td)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateSchemaTableErrors(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "users", Columns: []*schema.Column{{Name: "id", Type: "int", PrimaryKey: true}}},
			{Name: "users", Columns: []*schema.Column{{Name: "id", Type: "int", PrimaryKey: true}}},
			{Name: "empty"},
			{Name: ""},
		},
	}

	result := validator.ValidateSchema(td)
	assert.False(t, result.Valid)
	assert.ElementsMatch(t,
		[]string{"duplicate_table", "no_columns", "table_name"},
		errorTypes(result.Errors))
}

func TestValidateSchemaColumnChecks(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "things", Columns: []*schema.Column{
				{Name: "id", Type: "int", PrimaryKey: true},
				{Name: "id", Type: "int"},
				{Name: "label", Type: ""},
				{Name: "payload", Type: "mystery_type"},
			}},
			{Name: "keyless", Columns: []*schema.Column{
				{Name: "value", Type: "text"},
			}},
		},
	}

	result := validator.ValidateSchema(td)
	assert.False(t, result.Valid)
	assert.ElementsMatch(t, []string{"duplicate_column", "column_type"}, errorTypes(result.Errors))

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "unmapped_type", result.Warnings[0].Type)
	assert.Equal(t, "payload", result.Warnings[0].Column)
	assert.Equal(t, "no_primary_key", result.Warnings[1].Type)
	assert.Equal(t, "keyless", result.Warnings[1].Table)
}

func TestValidateSchemaIndexChecks(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "articles", Columns: []*schema.Column{
				{Name: "id", Type: "int", PrimaryKey: true},
				{Name: "title", Type: "varchar(200)"},
			}, Indexes: []*schema.Index{
				{Name: "by_title", Fields: []*schema.IndexField{{Name: "title"}}},
				{Name: "by_title", Fields: []*schema.IndexField{{Name: "title"}}},
				{Name: "dangling", Fields: []*schema.IndexField{{Name: "missing_col"}}},
				{Name: "hollow"},
			}},
		},
	}

	result := validator.ValidateSchema(td)
	assert.ElementsMatch(t,
		[]string{"duplicate_index", "index_column_not_found", "empty_index"},
		errorTypes(result.Errors))
}

func TestValidateSchemaForeignKeys(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "orders", Columns: []*schema.Column{
				{Name: "id", Type: "int", PrimaryKey: true},
				{Name: "customer_id", Type: "int", ForeignKey: &schema.ForeignKey{
					TargetTable: "nowhere", TargetColumn: "id", IsForeignKey: true,
				}},
				{Name: "parent_id", Type: "int", ForeignKey: &schema.ForeignKey{
					TargetTable: "orders", TargetColumn: "missing", IsForeignKey: true,
				}},
				{Name: "self_ref", Type: "int", ForeignKey: &schema.ForeignKey{
					TargetTable: "orders", TargetColumn: "self_ref", IsForeignKey: true,
				}},
				{Name: "seq_id", Type: "int", ForeignKey: &schema.ForeignKey{
					Generation: "ALWAYS",
				}},
			}},
		},
	}

	result := validator.ValidateSchema(td)
	assert.ElementsMatch(t,
		[]string{"foreign_key_table_not_found", "foreign_key_column_not_found", "foreign_key"},
		errorTypes(result.Errors),
		"identity-only descriptors are not foreign keys and go unchecked")
}

func TestValidateSchemaRelations(t *testing.T) {
	t.Parallel()

	td := &schema.TableData{
		Tables: []*schema.Table{
			{Name: "posts", Columns: []*schema.Column{{Name: "id", Type: "int", PrimaryKey: true}}},
			{Name: "tags", Columns: []*schema.Column{{Name: "id", Type: "int", PrimaryKey: true}}},
		},
		Relations: []*schema.Relation{
			{ParentTable: "posts", ChildTable: "gone"},
			{ParentTable: "posts", ChildTable: "tags", IsM2M: true},
		},
	}

	result := validator.ValidateSchema(td)
	assert.ElementsMatch(t,
		[]string{"relation_table_not_found", "relation_join_model"},
		errorTypes(result.Errors))
}
