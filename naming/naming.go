// Package naming converts table and column names between the casing
// styles selectable on the command line.
package naming

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// Case selects a conversion style. The single-letter values match the
// CLI flags.
type Case string

const (
	CaseOriginal Case = "o"
	CaseCamel    Case = "c"
	CaseKebab    Case = "k"
	CaseLower    Case = "l"
	CasePascal   Case = "p"
	CaseUpper    Case = "u"
)

// Valid reports whether c is a known conversion style.
func (c Case) Valid() bool {
	switch c {
	case CaseOriginal, CaseCamel, CaseKebab, CaseLower, CasePascal, CaseUpper:
		return true
	}
	return false
}

var rules = inflect.NewDefaultRuleset()

// Recase converts val to the requested style, optionally singularizing
// it first. Unknown styles and empty values pass through untouched.
func Recase(opt Case, val string, singularize bool) string {
	if val == "" {
		return val
	}
	if singularize {
		val = rules.Singularize(val)
	}
	switch opt {
	case CaseCamel:
		return rules.CamelizeDownFirst(rules.Underscore(val))
	case CaseKebab:
		return rules.Dasherize(rules.Underscore(val))
	case CaseLower:
		return strings.ToLower(val)
	case CasePascal:
		return rules.Camelize(rules.Underscore(val))
	case CaseUpper:
		return strings.ToUpper(val)
	}
	return val
}

// Pluralize returns the plural form of a word.
func Pluralize(val string) string {
	return rules.Pluralize(val)
}

// Singularize returns the singular form of a word.
func Singularize(val string) string {
	return rules.Singularize(val)
}

// UpperFirst upper-cases the first character, leaving the rest alone.
func UpperFirst(val string) string {
	if val == "" {
		return val
	}
	return strings.ToUpper(val[:1]) + val[1:]
}
