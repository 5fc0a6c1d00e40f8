// Package validator runs offline structural checks over a loaded schema
// before generation. It never opens a database; everything it needs is
// in the schema file.
package validator

import (
	"fmt"

	"github.com/IvanStoilov/sequelize-auto/generator"
	"github.com/IvanStoilov/sequelize-auto/schema"
)

// ValidationError represents a single finding with its location.
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Index    string `json:"index,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error" or "warning"
}

// ValidationResult contains all findings of one run.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

func (r *ValidationResult) addError(e ValidationError) {
	e.Severity = "error"
	r.Errors = append(r.Errors, e)
}

func (r *ValidationResult) addWarning(e ValidationError) {
	e.Severity = "warning"
	r.Warnings = append(r.Warnings, e)
}

// ValidateSchema checks tables, indexes, foreign keys and relations.
// Errors mean the generated models would be broken; warnings flag
// things generation papers over, like unmapped column types.
func ValidateSchema(td *schema.TableData) *ValidationResult {
	result := &ValidationResult{}

	tableNames := make(map[string]bool)
	for _, t := range td.Tables {
		if t.Name == "" {
			result.addError(ValidationError{
				Type:    "table_name",
				Message: "table name cannot be empty",
			})
			continue
		}
		if tableNames[t.QName()] {
			result.addError(ValidationError{
				Type:    "duplicate_table",
				Table:   t.QName(),
				Message: fmt.Sprintf("duplicate table name '%s'", t.QName()),
			})
			continue
		}
		tableNames[t.QName()] = true

		validateColumns(t, result)
		validateIndexes(t, result)
	}

	validateForeignKeys(td, result)
	validateRelations(td, result)

	result.Valid = len(result.Errors) == 0
	return result
}

func validateColumns(t *schema.Table, result *ValidationResult) {
	if len(t.Columns) == 0 {
		result.addError(ValidationError{
			Type:    "no_columns",
			Table:   t.QName(),
			Message: fmt.Sprintf("table '%s' must have at least one column", t.QName()),
		})
		return
	}

	columnNames := make(map[string]bool)
	hasPrimaryKey := false
	for _, c := range t.Columns {
		if c.Name == "" {
			result.addError(ValidationError{
				Type:    "column_name",
				Table:   t.QName(),
				Message: fmt.Sprintf("table '%s' has a column without a name", t.QName()),
			})
			continue
		}
		if columnNames[c.Name] {
			result.addError(ValidationError{
				Type:    "duplicate_column",
				Table:   t.QName(),
				Column:  c.Name,
				Message: fmt.Sprintf("duplicate column name '%s' in table '%s'", c.Name, t.QName()),
			})
			continue
		}
		columnNames[c.Name] = true

		if c.Type == "" {
			result.addError(ValidationError{
				Type:    "column_type",
				Table:   t.QName(),
				Column:  c.Name,
				Message: fmt.Sprintf("column '%s' has no type", c.Name),
			})
		} else if _, ok := generator.MapType(c); !ok {
			result.addWarning(ValidationError{
				Type:    "unmapped_type",
				Table:   t.QName(),
				Column:  c.Name,
				Message: fmt.Sprintf("type '%s' has no mapping and will be emitted as a raw string", c.Type),
			})
		}

		if c.PrimaryKey {
			hasPrimaryKey = true
		}
	}

	if !hasPrimaryKey {
		result.addWarning(ValidationError{
			Type:    "no_primary_key",
			Table:   t.QName(),
			Message: fmt.Sprintf("table '%s' has no primary key defined", t.QName()),
		})
	}
}

func validateIndexes(t *schema.Table, result *ValidationResult) {
	columnNames := make(map[string]bool)
	for _, c := range t.Columns {
		columnNames[c.Name] = true
	}

	indexNames := make(map[string]bool)
	for _, idx := range t.Indexes {
		if idx.Name != "" {
			if indexNames[idx.Name] {
				result.addError(ValidationError{
					Type:    "duplicate_index",
					Table:   t.QName(),
					Index:   idx.Name,
					Message: fmt.Sprintf("duplicate index name '%s' in table '%s'", idx.Name, t.QName()),
				})
				continue
			}
			indexNames[idx.Name] = true
		}

		if len(idx.Fields) == 0 {
			result.addError(ValidationError{
				Type:    "empty_index",
				Table:   t.QName(),
				Index:   idx.Name,
				Message: fmt.Sprintf("index '%s' has no fields", idx.Name),
			})
			continue
		}
		for _, f := range idx.Fields {
			if !columnNames[f.Name] {
				result.addError(ValidationError{
					Type:    "index_column_not_found",
					Table:   t.QName(),
					Index:   idx.Name,
					Column:  f.Name,
					Message: fmt.Sprintf("index '%s' references non-existent column '%s' in table '%s'", idx.Name, f.Name, t.QName()),
				})
			}
		}
	}
}

func validateForeignKeys(td *schema.TableData, result *ValidationResult) {
	for _, t := range td.Tables {
		for _, c := range t.Columns {
			if c.ForeignKey == nil || !c.ForeignKey.IsForeignKey {
				continue
			}
			fk := c.ForeignKey

			if fk.TargetColumn == "" {
				result.addError(ValidationError{
					Type:    "foreign_key",
					Table:   t.QName(),
					Column:  c.Name,
					Message: "foreign key references column cannot be empty",
				})
				continue
			}

			target := td.Table(fk.TargetTable)
			if target == nil {
				result.addError(ValidationError{
					Type:    "foreign_key_table_not_found",
					Table:   t.QName(),
					Column:  c.Name,
					Message: fmt.Sprintf("foreign key references non-existent table '%s'", fk.TargetTable),
				})
				continue
			}
			if target.Column(fk.TargetColumn) == nil {
				result.addError(ValidationError{
					Type:    "foreign_key_column_not_found",
					Table:   t.QName(),
					Column:  c.Name,
					Message: fmt.Sprintf("foreign key references non-existent column '%s' in table '%s'", fk.TargetColumn, fk.TargetTable),
				})
			}
			if target == t && fk.TargetColumn == c.Name {
				result.addError(ValidationError{
					Type:    "foreign_key",
					Table:   t.QName(),
					Column:  c.Name,
					Message: "foreign key cannot reference itself",
				})
			}
		}
	}
}

func validateRelations(td *schema.TableData, result *ValidationResult) {
	for _, rel := range td.Relations {
		if td.Table(rel.ParentTable) == nil {
			result.addError(ValidationError{
				Type:    "relation_table_not_found",
				Table:   rel.ParentTable,
				Message: fmt.Sprintf("relation references non-existent parent table '%s'", rel.ParentTable),
			})
		}
		if td.Table(rel.ChildTable) == nil {
			result.addError(ValidationError{
				Type:    "relation_table_not_found",
				Table:   rel.ChildTable,
				Message: fmt.Sprintf("relation references non-existent child table '%s'", rel.ChildTable),
			})
		}
		if rel.IsM2M && rel.JoinModel == "" {
			result.addError(ValidationError{
				Type:    "relation_join_model",
				Table:   rel.ParentTable,
				Message: fmt.Sprintf("many-to-many relation between '%s' and '%s' is missing its join model", rel.ParentTable, rel.ChildTable),
			})
		}
	}
}
