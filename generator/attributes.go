package generator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/IvanStoilov/sequelize-auto/naming"
	"github.com/IvanStoilov/sequelize-auto/schema"
)

// addTable renders the attribute object and the model options block for
// one table, leaving header and footer to the caller. Timestamp and
// paranoid detection is folded over the column loop so the builder
// carries no cross-table state.
func (b *tableBuilder) addTable() string {
	sp1 := b.sp(1)

	var fields strings.Builder
	hasTimestampFields := false
	hasParanoidFields := false
	for _, c := range b.table.Columns {
		if b.isTimestampField(c.Name) {
			hasTimestampFields = true
		}
		if b.isParanoidField(c.Name) {
			hasParanoidFields = true
		}
		fields.WriteString(b.addField(c))
	}
	attrs := fields.String()
	if attrs != "" {
		attrs = strings.TrimSuffix(attrs, ",\n") + "\n"
	}

	opts := b.addOptions(hasTimestampFields, hasParanoidFields)
	opts += b.addAssociations()
	opts += b.addIndexes()
	opts = strings.TrimSuffix(opts, ",\n") + "\n"

	return attrs + sp1 + "}, {\n" + opts + sp1 + "});\n"
}

// addField renders one column's attribute declaration. The well-known
// attributes keep a fixed order so regenerated models diff cleanly.
func (b *tableBuilder) addField(c *schema.Column) string {
	sp2, sp3, sp4 := b.sp(2), b.sp(3), b.sp(4)
	d := b.g.dialect
	isSerial := (c.ForeignKey != nil && c.ForeignKey.IsSerialKey) || d.IsSerialKey(c)

	var str strings.Builder
	str.WriteString(sp2 + quoteName(b.propName(c.Name)) + ": {\n")

	if isSerial || c.AutoIncrement {
		str.WriteString(sp3 + "autoIncrement: true,\n")
		if d.Name() == "postgres" && c.ForeignKey != nil && c.ForeignKey.IsPrimaryKey &&
			(c.ForeignKey.Generation == "ALWAYS" || c.ForeignKey.Generation == "BY DEFAULT") {
			str.WriteString(sp3 + "autoIncrementIdentity: true,\n")
		}
	}

	typeExpr, ok := MapType(c)
	if !ok {
		typeExpr = `"` + escapeReplacer.Replace(c.Type) + `"`
		b.warn(c.Name, fmt.Sprintf("no type mapping for %q, emitting the raw type", c.Type))
	}
	str.WriteString(sp3 + "type: " + typeExpr + ",\n")

	if c.ForeignKey != nil && c.ForeignKey.IsForeignKey {
		str.WriteString(sp3 + "references: {\n")
		str.WriteString(sp4 + "model: '" + c.ForeignKey.TargetTable + "',\n")
		str.WriteString(sp4 + "key: '" + c.ForeignKey.TargetColumn + "'\n")
		str.WriteString(sp3 + "},\n")
	}

	if c.PrimaryKey && (c.ForeignKey == nil || c.ForeignKey.IsPrimaryKey) {
		str.WriteString(sp3 + "primaryKey: true,\n")
	}

	str.WriteString(sp3 + "allowNull: " + strconv.FormatBool(c.AllowNull) + ",\n")

	wroteDefault := false
	if val, ok := NormalizeDefault(c, d.Name(), isSerial); ok {
		str.WriteString(sp3 + "defaultValue: " + val + ",\n")
		wroteDefault = true
	}

	if c.Comment != "" {
		str.WriteString(sp3 + `comment: "` + escapeReplacer.Replace(c.Comment) + `",` + "\n")
	}

	for _, k := range sortedKeys(c.Extra) {
		str.WriteString(sp3 + k + ": " + formatAttrValue(c.Extra[k]) + ",\n")
	}

	if !wroteDefault && b.isTimestampField(c.Name) {
		str.WriteString(sp3 + "defaultValue: DataTypes.NOW,\n")
	}

	if c.UniqueKey != "" {
		str.WriteString(sp3 + `unique: "` + c.UniqueKey + `",` + "\n")
	} else if c.Unique || (c.ForeignKey != nil && c.ForeignKey.IsForeignKey && c.ForeignKey.IsUnique) {
		str.WriteString(sp3 + "unique: true,\n")
	}

	// primary keys on dialects that match key names case-insensitively
	// skip the override when only the casing changed
	if name := b.propName(c.Name); name != c.Name {
		if !c.PrimaryKey || d.CanAliasPK() || !strings.EqualFold(name, c.Name) {
			str.WriteString(sp3 + "field: '" + c.Name + "',\n")
		}
	}

	out := strings.TrimSuffix(str.String(), ",\n") + "\n"
	return out + sp2 + "},\n"
}

// addOptions renders the scalar model options in their fixed order:
// table name, schema, trigger flag, timestamps, paranoid, the timestamp
// column overrides, then the remaining additional options sorted by key.
func (b *tableBuilder) addOptions(hasTimestampFields, hasParanoidFields bool) string {
	sp2, sp3 := b.sp(2), b.sp(3)
	t := b.table
	add := b.g.opts.Additional

	timestamps := add["timestamps"] == true || hasTimestampFields
	paranoid := hasParanoidFields && timestamps

	var str strings.Builder
	if b.g.opts.Lang.isClass() {
		str.WriteString(sp2 + "sequelize,\n")
	}
	str.WriteString(sp2 + "tableName: '" + t.Name + "',\n")
	if t.Schema != "" && b.g.dialect.HasSchema() {
		str.WriteString(sp2 + "schema: '" + t.Schema + "',\n")
	}
	if t.HasTriggers {
		str.WriteString(sp2 + "hasTrigger: true,\n")
	}
	str.WriteString(sp2 + "timestamps: " + strconv.FormatBool(timestamps) + ",\n")
	if paranoid {
		str.WriteString(sp2 + "paranoid: true,\n")
	}
	for _, key := range []string{"createdAt", "updatedAt", "deletedAt"} {
		if v, ok := add[key]; ok {
			str.WriteString(sp2 + key + ": " + formatOptionValue(v) + ",\n")
		}
	}
	for _, k := range sortedKeys(add) {
		switch k {
		case "timestamps", "paranoid", "createdAt", "updatedAt", "deletedAt":
			continue
		case "name":
			if add[k] == true {
				// preserve the exact table name for both grammatical forms
				str.WriteString(sp2 + "name: {\n")
				str.WriteString(sp3 + "singular: '" + t.Name + "',\n")
				str.WriteString(sp3 + "plural: '" + t.Name + "'\n")
				str.WriteString(sp2 + "},\n")
				continue
			}
		}
		str.WriteString(sp2 + k + ": " + formatOptionValue(add[k]) + ",\n")
	}
	return str.String()
}

// timestampsDisabled reports whether additional options switch the
// timestamp machinery off entirely.
func (b *tableBuilder) timestampsDisabled() bool {
	v, ok := b.g.opts.Additional["timestamps"]
	return ok && v == false
}

// isTimestampField reports whether the column is the create or update
// timestamp, honoring explicit overrides in the additional options.
func (b *tableBuilder) isTimestampField(field string) bool {
	if b.timestampsDisabled() {
		return false
	}
	return b.matchesOverride(field, "createdAt") || b.matchesOverride(field, "updatedAt")
}

// isParanoidField reports whether the column is the soft-delete
// timestamp; it never matches when timestamps are disabled.
func (b *tableBuilder) isParanoidField(field string) bool {
	if b.timestampsDisabled() {
		return false
	}
	return b.matchesOverride(field, "deletedAt")
}

// matchesOverride compares a column name against one of the timestamp
// options. An explicit override must match exactly; otherwise the
// camelized column name is compared, so created_at and createdAt both
// count.
func (b *tableBuilder) matchesOverride(field, key string) bool {
	if v, ok := b.g.opts.Additional[key]; ok {
		s, isStr := v.(string)
		return isStr && field == s
	}
	return naming.Recase(naming.CaseCamel, field, false) == key
}

// hasCreationDefault mirrors the truthiness rules deciding whether a
// default makes an attribute optional at creation: empty strings count,
// zero numbers and false do not.
func hasCreationDefault(def any) bool {
	switch v := def.(type) {
	case nil:
		return false
	case string:
		return true
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case float64:
		return v != 0
	}
	return true
}

func formatAttrValue(v any) string {
	if s, ok := v.(string); ok {
		return `"` + escapeReplacer.Replace(s) + `"`
	}
	return fmt.Sprintf("%v", v)
}

func formatOptionValue(v any) string {
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}
	return fmt.Sprintf("%v", v)
}

func sortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
