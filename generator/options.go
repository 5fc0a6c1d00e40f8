package generator

import "github.com/IvanStoilov/sequelize-auto/naming"

// Lang selects the flavor of the generated model source.
type Lang string

const (
	LangES5 Lang = "es5" // CommonJS sequelize.define factory
	LangES6 Lang = "es6" // CommonJS class extending Sequelize.Model
	LangESM Lang = "esm" // ES module class
	LangTS  Lang = "ts"  // TypeScript class with typed attributes
)

// Valid reports whether l is a supported output flavor.
func (l Lang) Valid() bool {
	switch l {
	case LangES5, LangES6, LangESM, LangTS:
		return true
	}
	return false
}

// Ext returns the file extension for generated sources.
func (l Lang) Ext() string {
	if l == LangTS {
		return ".ts"
	}
	return ".js"
}

// isClass reports whether the shape declares a model class instead of a
// define factory.
func (l Lang) isClass() bool {
	return l == LangES6 || l == LangESM || l == LangTS
}

// Options control naming, formatting and dialect-independent behavior of
// the generated models.
type Options struct {
	Lang        Lang
	CaseModel   naming.Case
	CaseProp    naming.Case
	CaseFile    naming.Case
	Singularize bool
	NoAlias     bool // drop as: aliases that only repeat the model name
	Spaces      bool // indent with spaces instead of tabs
	Indentation int  // spaces per indent level when Spaces is set
	// Additional options are copied into every generated model's options
	// block. timestamps, paranoid and the createdAt/updatedAt/deletedAt
	// overrides also steer timestamp-column detection.
	Additional map[string]any
}

func (o Options) normalized() Options {
	if o.Lang == "" {
		o.Lang = LangES5
	}
	if o.CaseModel == "" {
		o.CaseModel = naming.CaseOriginal
	}
	if o.CaseProp == "" {
		o.CaseProp = naming.CaseOriginal
	}
	if o.CaseFile == "" {
		o.CaseFile = naming.CaseOriginal
	}
	if o.Indentation <= 0 {
		o.Indentation = 2
	}
	return o
}
