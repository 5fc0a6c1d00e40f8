package loader

import (
	"strings"

	"github.com/IvanStoilov/sequelize-auto/schema"
)

// FilterTables narrows td to the include list minus the skip list.
// Names match case-insensitively, with or without the schema qualifier.
// Relations pointing at a dropped table are dropped with it.
func FilterTables(td *schema.TableData, include, skip []string) {
	if len(include) == 0 && len(skip) == 0 {
		return
	}

	var kept []*schema.Table
	for _, t := range td.Tables {
		if len(include) > 0 && !matchesAny(t, include) {
			continue
		}
		if matchesAny(t, skip) {
			continue
		}
		kept = append(kept, t)
	}
	td.Tables = kept

	var rels []*schema.Relation
	for _, rel := range td.Relations {
		if td.Table(rel.ParentTable) == nil || td.Table(rel.ChildTable) == nil {
			continue
		}
		rels = append(rels, rel)
	}
	td.Relations = rels
}

func matchesAny(t *schema.Table, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(n, t.Name) || strings.EqualFold(n, t.QName()) {
			return true
		}
	}
	return false
}
