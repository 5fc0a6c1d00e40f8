package generator

import (
	"strings"

	"github.com/IvanStoilov/sequelize-auto/naming"
)

// addAssociations renders the table's association declarations as
// comments inside the options block. Registration is left to whatever
// wires the generated models together, so every line stays inert.
func (b *tableBuilder) addAssociations() string {
	sp2 := b.sp(2)
	var str strings.Builder
	for _, rel := range b.g.data.Relations {
		if rel.IsM2M {
			if b.ownsTable(rel.ParentTable) {
				str.WriteString(sp2 + "// " + rel.ParentModel + ".belongsToMany(" + rel.ChildModel +
					", { as: '" + rel.ParentProp + "', through: " + rel.JoinModel +
					`, foreignKey: "` + rel.ParentID + `", otherKey: "` + rel.ChildID + `" });` + "\n")
			}
			continue
		}
		if b.ownsTable(rel.ChildTable) {
			alias := `as: "` + rel.ParentProp + `", `
			if b.g.opts.NoAlias && strings.EqualFold(rel.ParentProp, rel.ParentModel) {
				alias = ""
			}
			str.WriteString(sp2 + "// " + rel.ChildModel + ".belongsTo(" + rel.ParentModel +
				", { " + alias + `foreignKey: "` + rel.ParentID + `"});` + "\n")
		}
		if b.ownsTable(rel.ParentTable) {
			verb := "hasMany"
			if rel.IsOne {
				verb = "hasOne"
			}
			alias := `as: "` + rel.ChildProp + `", `
			if b.g.opts.NoAlias && strings.EqualFold(rel.ChildProp, pluralizeLower(rel.ChildModel)) {
				alias = ""
			}
			str.WriteString(sp2 + "// " + rel.ParentModel + "." + verb + "(" + rel.ChildModel +
				", { " + alias + `foreignKey: "` + rel.ParentID + `"});` + "\n")
		}
	}
	return str.String()
}

// ownsTable matches a relation endpoint against this table by bare or
// qualified name.
func (b *tableBuilder) ownsTable(name string) bool {
	return name == b.table.Name || name == b.table.QName()
}

func pluralizeLower(model string) string {
	return naming.Pluralize(strings.ToLower(model))
}
