// Package generator renders ORM model source files from a loaded schema.
// Each table becomes one self-contained model file in one of four output
// flavors; the core never touches the filesystem or a database.
package generator

import (
	"context"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/IvanStoilov/sequelize-auto/dialect"
	"github.com/IvanStoilov/sequelize-auto/naming"
	"github.com/IvanStoilov/sequelize-auto/schema"
)

// Generator renders every table of a schema into model source text.
type Generator struct {
	data    *schema.TableData
	dialect dialect.Dialect
	opts    Options
	space   []string
}

// New builds a Generator. Zero-value options fall back to the es5 shape
// with original casing and two-space indentation.
func New(data *schema.TableData, d dialect.Dialect, opts Options) *Generator {
	opts = opts.normalized()
	unit := "\t"
	if opts.Spaces {
		unit = strings.Repeat(" ", opts.Indentation)
	}
	space := make([]string, 8)
	for i := range space {
		space[i] = strings.Repeat(unit, i)
	}
	return &Generator{data: data, dialect: d, opts: opts, space: space}
}

// Result holds the rendered model source per qualified table name plus
// every warning collected along the way.
type Result struct {
	Models   map[string]string
	Warnings []Warning
}

// Warning records a per-column generation problem that did not stop the
// run.
type Warning struct {
	Table   string
	Column  string
	Message string
}

// Generate renders all tables. Tables render concurrently but the
// result is assembled in schema order, so model text and warning order
// are stable across runs.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	texts := make([]string, len(g.data.Tables))
	warns := make([][]Warning, len(g.data.Tables))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range g.data.Tables {
		i, t := i, t
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				texts[i], warns[i] = g.BuildTable(t)
				return nil
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Models: make(map[string]string, len(texts))}
	for i, t := range g.data.Tables {
		res.Models[t.QName()] = texts[i]
		res.Warnings = append(res.Warnings, warns[i]...)
	}
	return res, nil
}

// BuildTable renders a single table. Assembly runs header, type
// declarations, attributes, options, associations, indexes and footer
// in that order, then substitutes the model-name placeholders over the
// whole text.
func (g *Generator) BuildTable(t *schema.Table) (string, []Warning) {
	b := &tableBuilder{g: g, table: t}
	text := b.header() + b.addTable() + b.footer()

	model := g.makeModelName(t.Name)
	text = strings.ReplaceAll(text, "#UTABLE#", naming.UpperFirst(model))
	text = strings.ReplaceAll(text, "#TABLE#", model)
	return text, b.warnings
}

// FileName returns the base name, without extension, of the model file
// for a table.
func (g *Generator) FileName(tableName string) string {
	return naming.Recase(g.opts.CaseFile, tableName, g.opts.Singularize)
}

// makeModelName derives the model name for a table, suffixing
// TypeScript reserved words so the emitted class name stays legal.
func (g *Generator) makeModelName(tableName string) string {
	name := naming.Recase(g.opts.CaseModel, tableName, g.opts.Singularize)
	if g.opts.Lang == LangTS && tsReservedWords[name] {
		name += "_"
	}
	return name
}

// tableBuilder accumulates the text and warnings for one table. A fresh
// builder is created per table, which keeps Generate safe to run
// concurrently.
type tableBuilder struct {
	g        *Generator
	table    *schema.Table
	warnings []Warning
}

func (b *tableBuilder) sp(i int) string {
	return b.g.space[i]
}

func (b *tableBuilder) propName(field string) string {
	return naming.Recase(b.g.opts.CaseProp, field, false)
}

func (b *tableBuilder) warn(column, msg string) {
	b.warnings = append(b.warnings, Warning{Table: b.table.QName(), Column: column, Message: msg})
}

func (b *tableBuilder) header() string {
	sp1, sp2 := b.sp(1), b.sp(2)
	switch b.g.opts.Lang {
	case LangES6:
		return "const Sequelize = require('sequelize');\n" +
			"module.exports = class #UTABLE# extends Sequelize.Model {\n" +
			sp1 + "static init(sequelize, DataTypes) {\n" +
			sp2 + "return super.init({\n"
	case LangESM:
		return "import _sequelize from 'sequelize';\n" +
			"const { Model, Sequelize } = _sequelize;\n\n" +
			"export default class #UTABLE# extends Model {\n" +
			sp1 + "static init(sequelize, DataTypes) {\n" +
			sp2 + "return super.init({\n"
	case LangTS:
		return b.tsHeader()
	}
	return "const Sequelize = require('sequelize');\n" +
		"module.exports = function(sequelize, DataTypes) {\n" +
		sp1 + "return sequelize.define('#TABLE#', {\n"
}

func (b *tableBuilder) footer() string {
	if b.g.opts.Lang == LangES5 {
		return "};\n"
	}
	return b.sp(1) + "}\n}\n"
}

// tsHeader emits the imports, the attribute interface, the derived
// helper types and the class opening through the init call.
func (b *tableBuilder) tsHeader() string {
	sp1, sp2 := b.sp(1), b.sp(2)
	var str strings.Builder
	str.WriteString("import * as Sequelize from 'sequelize';\n")
	str.WriteString("import { DataTypes, Model, Optional } from 'sequelize';\n\n")
	str.WriteString("export interface #UTABLE#Attributes {\n")
	str.WriteString(b.addStaticFields(true))
	str.WriteString("}\n\n")
	str.WriteString(b.addStaticTypes())
	str.WriteString("export class #UTABLE# extends Model<#UTABLE#Attributes, #UTABLE#CreationAttributes> implements #UTABLE#Attributes {\n")
	str.WriteString(b.addStaticFields(false))
	str.WriteString("\n" + sp1 + "static initModel(sequelize: Sequelize.Sequelize): typeof #UTABLE# {\n")
	str.WriteString(sp2 + "return #UTABLE#.init({\n")
	return str.String()
}

// addStaticFields renders the typed field list, once for the attribute
// interface and once for the class body.
func (b *tableBuilder) addStaticFields(isInterface bool) string {
	sp1 := b.sp(1)
	var str strings.Builder
	for _, c := range b.table.Columns {
		name := quoteName(b.propName(c.Name))
		typ, _ := MapStaticType(c)
		switch {
		case c.AllowNull:
			str.WriteString(sp1 + name + "?: " + typ + ";\n")
		case isInterface:
			str.WriteString(sp1 + name + ": " + typ + ";\n")
		default:
			str.WriteString(sp1 + name + "!: " + typ + ";\n")
		}
	}
	return str.String()
}

// addStaticTypes renders the Pk, Id, OptionalAttributes and
// CreationAttributes helper types.
func (b *tableBuilder) addStaticTypes() string {
	var str strings.Builder

	var pks []string
	for _, c := range b.table.Columns {
		if c.PrimaryKey {
			pks = append(pks, `"`+b.propName(c.Name)+`"`)
		}
	}
	if len(pks) > 0 {
		str.WriteString("export type #UTABLE#Pk = " + strings.Join(pks, " | ") + ";\n")
		str.WriteString("export type #UTABLE#Id = #UTABLE#[#UTABLE#Pk];\n")
	}

	var optional []string
	for _, c := range b.table.Columns {
		if c.AllowNull || hasCreationDefault(c.Default) || c.AutoIncrement || b.isTimestampField(c.Name) {
			optional = append(optional, `"`+b.propName(c.Name)+`"`)
		}
	}
	if len(optional) > 0 {
		str.WriteString("export type #UTABLE#OptionalAttributes = " + strings.Join(optional, " | ") + ";\n")
		str.WriteString("export type #UTABLE#CreationAttributes = Optional<#UTABLE#Attributes, #UTABLE#OptionalAttributes>;\n\n")
	} else {
		str.WriteString("export type #UTABLE#CreationAttributes = #UTABLE#Attributes;\n\n")
	}
	return str.String()
}

var identRe = regexp.MustCompile(`^[$A-Za-z_][0-9A-Za-z_$]*$`)

// quoteName quotes a property name that is not a bare identifier.
func quoteName(name string) string {
	if identRe.MatchString(name) {
		return name
	}
	return "'" + name + "'"
}

// tsReservedWords cannot be used bare as generated TypeScript class
// names; makeModelName suffixes them with an underscore.
var tsReservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "as": true, "implements": true,
	"interface": true, "let": true, "package": true, "private": true,
	"protected": true, "public": true, "static": true, "yield": true,
	"any": true, "boolean": true, "constructor": true, "declare": true,
	"get": true, "module": true, "require": true, "number": true, "set": true,
	"string": true, "symbol": true, "type": true, "from": true, "of": true,
}
