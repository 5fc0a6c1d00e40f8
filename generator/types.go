package generator

import (
	"regexp"
	"strings"

	"github.com/IvanStoilov/sequelize-auto/schema"
)

// typeInfo is the parsed form of a raw SQL type string. The raw type is
// parsed once and every match rule dispatches on the result.
type typeInfo struct {
	orig      string // original spelling, kept for enum value extraction
	raw       string // lower-cased spelling used by the match rules
	length    string // "(45)" when a single-number parameter is present
	precision string // "(10,2)" when a precision/scale pair is present
	unsigned  bool
	zerofill  bool
}

var (
	lengthRe    = regexp.MustCompile(`\(\d+\)`)
	precisionRe = regexp.MustCompile(`\(\d+,\d+\)`)
	intFamilyRe = regexp.MustCompile(`^(bigint|smallint|mediumint|tinyint|int)`)
	enumRe      = regexp.MustCompile(`^enum(\(.*\))?$`)
)

func parseType(rawType string) typeInfo {
	orig := strings.TrimSpace(rawType)
	raw := strings.ToLower(orig)
	return typeInfo{
		orig:      orig,
		raw:       raw,
		length:    lengthRe.FindString(raw),
		precision: precisionRe.FindString(raw),
		unsigned:  strings.Contains(raw, "unsigned"),
		zerofill:  strings.Contains(raw, "zerofill"),
	}
}

type matcher func(typeInfo) bool

type producer func(typeInfo, *schema.Column) string

// typeRule pairs a match predicate with a producer. Rules are evaluated
// top to bottom and the first match wins; the overlap between entries
// (jsonb before json, float before double) is load-bearing, so the
// order must not change.
type typeRule struct {
	match   matcher
	produce producer
}

func exact(vals ...string) matcher {
	return func(t typeInfo) bool {
		for _, v := range vals {
			if t.raw == v {
				return true
			}
		}
		return false
	}
}

func prefix(prefixes ...string) matcher {
	return func(t typeInfo) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(t.raw, p) {
				return true
			}
		}
		return false
	}
}

func substr(subs ...string) matcher {
	return func(t typeInfo) bool {
		for _, s := range subs {
			if strings.Contains(t.raw, s) {
				return true
			}
		}
		return false
	}
}

func literal(val string) producer {
	return func(typeInfo, *schema.Column) string { return val }
}

func withLength(base string) producer {
	return func(t typeInfo, _ *schema.Column) string { return base + t.length }
}

func withPrecision(base string) producer {
	return func(t typeInfo, _ *schema.Column) string { return base + t.precision }
}

// ormTypeRules is assigned in init: the array rule recurses through
// mapType, which walks this table, and a package-level literal would
// form an initialization cycle.
var ormTypeRules []typeRule

func init() {
	ormTypeRules = []typeRule{
		// boolean family, including the single-bit spellings
		{match: exact("boolean", "bit(1)", "bit", "tinyint(1)"), produce: literal("DataTypes.BOOLEAN")},
		// postgres range family
		{match: exact("numrange"), produce: literal("DataTypes.RANGE(DataTypes.DECIMAL)")},
		{match: exact("int4range"), produce: literal("DataTypes.RANGE(DataTypes.INTEGER)")},
		{match: exact("int8range"), produce: literal("DataTypes.RANGE(DataTypes.BIGINT)")},
		{match: exact("daterange"), produce: literal("DataTypes.RANGE(DataTypes.DATEONLY)")},
		{match: exact("tsrange", "tstzrange"), produce: literal("DataTypes.RANGE(DataTypes.DATE)")},
		// integer family; longer names sit before "int" so they win
		{match: func(t typeInfo) bool { return intFamilyRe.MatchString(t.raw) }, produce: integerType},
		// dialect spellings of unbounded text
		{match: exact("varchar(max)", "nvarchar(max)"), produce: literal("DataTypes.TEXT")},
		{match: substr("nvarchar", "varchar", "string", "varying"), produce: withLength("DataTypes.STRING")},
		{match: prefix("char", "nchar"), produce: withLength("DataTypes.CHAR")},
		{match: prefix("real"), produce: literal("DataTypes.REAL")},
		{match: func(t typeInfo) bool { return strings.HasSuffix(t.raw, "text") }, produce: withLength("DataTypes.TEXT")},
		{match: exact("date"), produce: literal("DataTypes.DATEONLY")},
		{match: prefix("date", "timestamp"), produce: withLength("DataTypes.DATE")},
		{match: prefix("time"), produce: literal("DataTypes.TIME")},
		{match: prefix("float", "float4"), produce: withPrecision("DataTypes.FLOAT")},
		{match: prefix("decimal", "numeric"), produce: withPrecision("DataTypes.DECIMAL")},
		{match: prefix("money"), produce: literal("DataTypes.DECIMAL(19,4)")},
		{match: prefix("smallmoney"), produce: literal("DataTypes.DECIMAL(10,4)")},
		{match: prefix("float8", "double"), produce: withPrecision("DataTypes.DOUBLE")},
		{match: prefix("uuid", "uniqueidentifier"), produce: literal("DataTypes.UUID")},
		{match: prefix("jsonb"), produce: literal("DataTypes.JSONB")},
		{match: prefix("json"), produce: literal("DataTypes.JSON")},
		{match: prefix("geometry"), produce: spatialType("DataTypes.GEOMETRY")},
		{match: prefix("geography"), produce: spatialType("DataTypes.GEOGRAPHY")},
		{match: prefix("array"), produce: arrayType},
		{match: substr("binary", "image", "blob"), produce: literal("DataTypes.BLOB")},
		{match: prefix("hstore"), produce: literal("DataTypes.HSTORE")},
		{match: func(t typeInfo) bool { return enumRe.MatchString(t.raw) }, produce: enumType},
	}
}

func integerType(t typeInfo, _ *schema.Column) string {
	name := intFamilyRe.FindString(t.raw)
	val := "DataTypes." + strings.ToUpper(name)
	if name == "int" {
		val = "DataTypes.INTEGER"
	}
	val += t.length
	if t.unsigned {
		val += ".UNSIGNED"
	}
	if t.zerofill {
		val += ".ZEROFILL"
	}
	return val
}

func spatialType(base string) producer {
	return func(_ typeInfo, c *schema.Column) string {
		if c != nil && c.ElementType != "" {
			return base + "(" + c.ElementType + ")"
		}
		return base
	}
}

func arrayType(_ typeInfo, c *schema.Column) string {
	if c == nil || c.ElementType == "" {
		return "DataTypes.ARRAY"
	}
	elem, ok := mapType(c.ElementType, &schema.Column{Special: c.Special})
	if !ok {
		return "DataTypes.ARRAY"
	}
	return "DataTypes.ARRAY(" + elem + ")"
}

func enumType(t typeInfo, c *schema.Column) string {
	return "DataTypes.ENUM(" + strings.Join(enumValueList(c, t.orig), ",") + ")"
}

// enumValueList returns the double-quoted enum values, preferring the
// descriptor's special list over the raw enum(...) spelling.
func enumValueList(c *schema.Column, orig string) []string {
	if c != nil && len(c.Special) > 0 {
		vals := make([]string, len(c.Special))
		for i, v := range c.Special {
			vals[i] = `"` + v + `"`
		}
		return vals
	}
	open := strings.Index(orig, "(")
	end := strings.LastIndex(orig, ")")
	if open < 0 || end <= open {
		return nil
	}
	raw := strings.Split(orig[open+1:end], ",")
	vals := make([]string, len(raw))
	for i, v := range raw {
		vals[i] = `"` + strings.Trim(strings.TrimSpace(v), "'") + `"`
	}
	return vals
}

// MapType maps a column's raw SQL type to the DataTypes expression used
// in the generated model. ok is false when no rule matched and the
// caller must fall back to the raw type.
func MapType(c *schema.Column) (string, bool) {
	return mapType(c.Type, c)
}

func mapType(rawType string, c *schema.Column) (string, bool) {
	t := parseType(rawType)
	for _, r := range ormTypeRules {
		if r.match(t) {
			return r.produce(t, c), true
		}
	}
	return "", false
}

// Static-type predicate families used for the TypeScript annotations.
// Plain date, time and inet-style types deliberately read as strings.
var (
	tsNumberRe  = regexp.MustCompile(`^(smallint|mediumint|tinyint|int|bigint|float|money|smallmoney|double|decimal|numeric|real|oid)`)
	tsBooleanRe = regexp.MustCompile(`^(boolean|bit)`)
	tsDateRe    = regexp.MustCompile(`^(datetime|timestamp)`)
	tsStringRe  = regexp.MustCompile(`^(char|nchar|string|varying|varchar|nvarchar|text|longtext|mediumtext|tinytext|ntext|uuid|uniqueidentifier|date|time|inet|cidr|macaddr)`)
	tsArrayRe   = regexp.MustCompile(`(^array)|(range$)`)
	tsEnumRe    = regexp.MustCompile(`^(enum)`)
	tsJSONRe    = regexp.MustCompile(`^(json|jsonb)`)
)

// MapStaticType maps a column's raw SQL type to the TypeScript
// annotation used by the ts shape. ok is false when the type fell back
// to any.
func MapStaticType(c *schema.Column) (string, bool) {
	return mapStaticType(c.Type, c)
}

func mapStaticType(rawType string, c *schema.Column) (string, bool) {
	orig := strings.TrimSpace(rawType)
	t := strings.ToLower(orig)
	switch {
	case tsArrayRe.MatchString(t):
		elem := ""
		if c != nil {
			elem = c.ElementType
		}
		var inner string
		var ok bool
		if c != nil {
			inner, ok = mapStaticType(elem, &schema.Column{Special: c.Special})
		} else {
			inner, ok = mapStaticType(elem, nil)
		}
		return inner + "[]", ok
	case tsNumberRe.MatchString(t):
		return "number", true
	case tsBooleanRe.MatchString(t):
		return "boolean", true
	case tsDateRe.MatchString(t):
		return "Date", true
	case tsStringRe.MatchString(t):
		return "string", true
	case tsEnumRe.MatchString(t):
		if vals := enumValueList(c, orig); len(vals) > 0 {
			return strings.Join(vals, " | "), true
		}
		return "string", true
	case tsJSONRe.MatchString(t):
		return "object", true
	}
	return "any", false
}
