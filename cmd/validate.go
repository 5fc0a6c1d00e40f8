package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/IvanStoilov/sequelize-auto/loader"
	"github.com/IvanStoilov/sequelize-auto/validator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	validateSchemaFile string
	validateFormat     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "schema.yaml", "Schema file to validate")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "Output format (text, json)")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the schema file before generating models",
	Long: `Validate the schema description without generating anything.

This command performs structural validation including:
- Duplicate or empty table and column names
- Missing column types and types without a DataTypes mapping
- Foreign key references (valid table/column references)
- Index definitions (valid names and column references)
- Relation endpoints and join models

Validation is purely offline; no database is involved. The command
exits non-zero when the schema has errors, so it can gate CI.

Examples:
  sequelize-auto validate                      # Validate schema.yaml
  sequelize-auto validate -s custom.yaml       # Validate a custom schema file
  sequelize-auto validate --format json        # Machine-readable report
`,
	Run: func(cmd *cobra.Command, args []string) {
		result, err := runValidate()
		if err != nil {
			fmt.Printf("❌ Schema validation failed: %v\n", err)
			os.Exit(1)
		}
		if !result.Valid {
			os.Exit(1)
		}
	},
}

func runValidate() (*validator.ValidationResult, error) {
	doc, err := loader.LoadSchemaFromYAML(validateSchemaFile)
	if err != nil {
		return nil, err
	}

	result := validator.ValidateSchema(doc.Data)

	if validateFormat == "json" {
		return result, outputJSON(result)
	}
	return result, outputText(result)
}

func outputJSON(result *validator.ValidationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *validator.ValidationResult) error {
	if result.Valid {
		color.Green("✅ Schema validation passed!")
	} else {
		color.Red("❌ Schema validation failed!")
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\n🔴 Errors (%d):\n", len(result.Errors))
		for i, e := range result.Errors {
			fmt.Printf("  %d. %s\n", i+1, formatIssue(e))
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\n🟡 Warnings (%d):\n", len(result.Warnings))
		for i, w := range result.Warnings {
			fmt.Printf("  %d. %s\n", i+1, formatIssue(w))
		}
	}

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Errors: %d\n", len(result.Errors))
	fmt.Printf("  • Warnings: %d\n", len(result.Warnings))

	if result.Valid {
		fmt.Printf("\n🎉 Your schema is valid and ready for model generation!\n")
	} else {
		fmt.Printf("\n💡 Fix the errors above before generating models.\n")
	}

	return nil
}

// formatIssue renders a finding as [table].column (index: name): message.
func formatIssue(v validator.ValidationError) string {
	var b strings.Builder
	if v.Table != "" {
		fmt.Fprintf(&b, "[%s]", v.Table)
	}
	if v.Column != "" {
		fmt.Fprintf(&b, ".%s", v.Column)
	}
	if v.Index != "" {
		fmt.Fprintf(&b, " (index: %s)", v.Index)
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(v.Message)
	return b.String()
}
