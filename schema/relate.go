package schema

import (
	"sort"
	"strings"

	"github.com/IvanStoilov/sequelize-auto/naming"
)

// Relate infers the relation list from the tables' foreign keys and
// stores it on td, replacing whatever was there. Junction tables whose
// primary key is exactly two foreign keys additionally produce a
// many-to-many relation per side.
func Relate(td *TableData, caseModel, caseProp naming.Case, singularize bool) {
	var rels []*Relation
	for _, t := range td.Tables {
		var fks []*Column
		for _, c := range t.Columns {
			if c.ForeignKey != nil && c.ForeignKey.IsForeignKey {
				fks = append(fks, c)
			}
		}
		for _, c := range fks {
			fk := c.ForeignKey
			_, targetTable := SplitQName(fk.TargetTable)
			parentModel := naming.Recase(caseModel, targetTable, singularize)
			childModel := naming.Recase(caseModel, t.Name, singularize)

			otherPKFK := false
			for _, o := range fks {
				if o != c && o.ForeignKey.IsPrimaryKey {
					otherPKFK = true
					break
				}
			}
			isOne := (fk.IsPrimaryKey && !otherPKFK) || fk.IsUnique

			childBase := t.Name
			if isOne {
				childBase = naming.Singularize(childBase)
			} else {
				childBase = naming.Pluralize(childBase)
			}

			rels = append(rels, &Relation{
				ParentTable: fk.TargetTable,
				ParentModel: parentModel,
				ParentProp:  fkAlias(caseProp, c.Name, targetTable),
				ParentID:    c.Name,
				ChildTable:  t.QName(),
				ChildModel:  childModel,
				ChildProp:   naming.Recase(caseProp, childBase, false),
				ChildID:     fk.TargetColumn,
				IsOne:       isOne,
			})

			if fk.IsPrimaryKey {
				if other := junctionPartner(fks, c); other != nil {
					_, otherTarget := SplitQName(other.ForeignKey.TargetTable)
					rels = append(rels, &Relation{
						ParentTable: fk.TargetTable,
						ParentModel: parentModel,
						ParentProp:  naming.Recase(caseProp, naming.Pluralize(otherTarget), false),
						ParentID:    c.Name,
						ChildTable:  other.ForeignKey.TargetTable,
						ChildModel:  naming.Recase(caseModel, otherTarget, singularize),
						ChildProp:   naming.Recase(caseProp, naming.Pluralize(targetTable), false),
						ChildID:     other.Name,
						IsM2M:       true,
						JoinModel:   naming.Recase(caseModel, t.Name, singularize),
					})
				}
			}
		}
	}

	sort.SliceStable(rels, func(i, j int) bool {
		if rels[i].ParentTable != rels[j].ParentTable {
			return rels[i].ParentTable < rels[j].ParentTable
		}
		return rels[i].ChildTable < rels[j].ChildTable
	})
	td.Relations = rels
}

// junctionPartner returns the single other primary-key foreign key of a
// junction table, or nil when the table does not look like a junction.
func junctionPartner(fks []*Column, c *Column) *Column {
	var partner *Column
	for _, o := range fks {
		if o == c || !o.ForeignKey.IsPrimaryKey {
			continue
		}
		if partner != nil {
			return nil
		}
		partner = o
	}
	return partner
}

// fkAlias converts a foreign-key column name into the parent-role
// alias, trimming a trailing id marker (customer_id becomes customer).
func fkAlias(caseProp naming.Case, fkColumn, targetTable string) string {
	name := fkColumn
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "_id"):
		name = name[:len(name)-3]
	case strings.HasSuffix(lower, "id"):
		name = name[:len(name)-2]
	}
	if name == "" {
		name = naming.Singularize(targetTable)
	}
	return naming.Recase(caseProp, name, false)
}
