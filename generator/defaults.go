package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/IvanStoilov/sequelize-auto/schema"
)

// escapeReplacer escapes the characters that cannot appear bare inside a
// double-quoted default value or comment.
var escapeReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`/`, `\/`,
	"\b", `\b`,
	"\f", `\f`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

var parenStripper = strings.NewReplacer("(", "", ")", "")

var boolDefaultRe = regexp.MustCompile(`(?i)1|true`)

var dateDefaultKeywords = map[string]bool{
	"current_timestamp": true,
	"current_date":      true,
	"current_time":      true,
	"localtime":         true,
	"localtimestamp":    true,
}

// NormalizeDefault converts a column's raw default into the expression
// emitted for defaultValue. ok is false when no default should be
// emitted at all.
func NormalizeDefault(c *schema.Column, dialectName string, isSerial bool) (string, bool) {
	if c.Default == nil || isSerial {
		return "", false
	}
	s, isStr := c.Default.(string)
	if dialectName == "mssql" && isStr {
		// mssql reports generated uuids and explicit NULLs as defaults
		if strings.EqualFold(s, "(newid())") {
			return "", false
		}
		if s == "(NULL)" || s == "NULL" {
			return "", false
		}
	}
	if !isStr {
		return fmt.Sprintf("%v", c.Default), true
	}

	escaped := escapeReplacer.Replace(s)
	fieldType := strings.ToLower(c.Type)
	switch {
	case fieldType == "bit(1)" || fieldType == "bit" || fieldType == "boolean":
		if boolDefaultRe.MatchString(escaped) {
			return "true", true
		}
		return "false", true
	case tsArrayRe.MatchString(fieldType):
		vals := strings.TrimSuffix(strings.TrimPrefix(escaped, "{"), "}")
		if vals != "" && tsStringRe.MatchString(strings.ToLower(c.ElementType)) {
			parts := strings.Split(vals, ",")
			for i, p := range parts {
				parts[i] = `"` + p + `"`
			}
			vals = strings.Join(parts, ",")
		}
		return "[" + vals + "]", true
	case tsNumberRe.MatchString(fieldType) || tsJSONRe.MatchString(fieldType):
		// never quoted; mssql wraps numeric defaults in parens
		return parenStripper.Replace(escaped), true
	case fieldType == "uuid" && (escaped == "gen_random_uuid()" || escaped == "uuid_generate_v4()"):
		return "DataTypes.UUIDV4", true
	case strings.HasSuffix(escaped, "()") || strings.HasSuffix(escaped, "())"):
		return "Sequelize.Sequelize.fn('" + parenStripper.Replace(escaped) + "')", true
	}
	if strings.HasPrefix(fieldType, "date") || strings.HasPrefix(fieldType, "timestamp") {
		if dateDefaultKeywords[strings.ToLower(escaped)] {
			return "Sequelize.Sequelize.literal('" + escaped + "')", true
		}
	}
	return `"` + escaped + `"`, true
}
