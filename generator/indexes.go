package generator

import (
	"strconv"
	"strings"
)

// addIndexes renders the indexes: option. UNIQUE, FULLTEXT and SPATIAL
// designators become type:, anything else is an access method emitted
// as using:.
func (b *tableBuilder) addIndexes() string {
	if len(b.table.Indexes) == 0 {
		return ""
	}
	sp2, sp3, sp4, sp5 := b.sp(2), b.sp(3), b.sp(4), b.sp(5)

	var str strings.Builder
	str.WriteString(sp2 + "indexes: [\n")
	for _, idx := range b.table.Indexes {
		str.WriteString(sp3 + "{\n")
		if idx.Name != "" {
			str.WriteString(sp4 + `name: "` + idx.Name + `",` + "\n")
		}
		if idx.Unique {
			str.WriteString(sp4 + "unique: true,\n")
		}
		switch kind := strings.ToUpper(idx.Type); kind {
		case "":
		case "UNIQUE", "FULLTEXT", "SPATIAL":
			str.WriteString(sp4 + `type: "` + kind + `",` + "\n")
		default:
			str.WriteString(sp4 + `using: "` + idx.Type + `",` + "\n")
		}
		str.WriteString(sp4 + "fields: [\n")
		for _, f := range idx.Fields {
			str.WriteString(sp5 + `{ name: "` + f.Name + `"`)
			if f.Collate != "" {
				str.WriteString(`, collate: "` + f.Collate + `"`)
			}
			if f.Length > 0 {
				str.WriteString(", length: " + strconv.Itoa(f.Length))
			}
			if f.Order != "" && !strings.EqualFold(f.Order, "ASC") {
				str.WriteString(`, order: "` + f.Order + `"`)
			}
			str.WriteString(" },\n")
		}
		str.WriteString(sp4 + "]\n")
		str.WriteString(sp3 + "},\n")
	}
	str.WriteString(sp2 + "],\n")
	return str.String()
}
