package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanStoilov/sequelize-auto/generator"
	"github.com/IvanStoilov/sequelize-auto/loader"
	"github.com/IvanStoilov/sequelize-auto/naming"
	"github.com/IvanStoilov/sequelize-auto/schema"
	"github.com/spf13/cobra"
)

var (
	docsFormat string
	docsOutput string
	docsFile   string
)

func init() {
	docsCmd.Flags().StringVar(&docsFormat, "format", "mermaid", "Diagram format (mermaid, plantuml)")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Output file (default erd.md or erd.puml)")
	docsCmd.Flags().StringVarP(&docsFile, "file", "f", "schema.yaml", "Schema YAML file to load")
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate an ERD diagram from the schema",
	Long: `Generate an entity-relationship diagram from the schema description.

Supported formats:
  - mermaid: Mermaid ERD inside a markdown file
  - plantuml: PlantUML ERD diagram

Relations come from the schema file when it carries them, otherwise
they are inferred from the foreign keys, so the diagram shows the same
associations the generated models get.

Examples:
  sequelize-auto docs                                # Mermaid ERD in erd.md
  sequelize-auto docs --format plantuml -o erd.puml
  sequelize-auto docs -f custom.yaml
`,
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := loader.LoadSchemaFromYAML(docsFile)
		if err != nil {
			fmt.Println("❌ Loading schema:", err)
			os.Exit(1)
		}
		td := doc.Data
		if len(td.Tables) == 0 {
			fmt.Println("❌ No tables found in schema")
			os.Exit(1)
		}
		if len(td.Relations) == 0 {
			schema.Relate(td, naming.CaseOriginal, naming.CaseOriginal, false)
		}

		var content, output string
		switch docsFormat {
		case "mermaid":
			content, output = mermaidContent(td), docsOutput
			if output == "" {
				output = "erd.md"
			}
		case "plantuml":
			content, output = plantUMLContent(td), docsOutput
			if output == "" {
				output = "erd.puml"
			}
		default:
			fmt.Printf("❌ Unsupported format: %s\n", docsFormat)
			fmt.Println("Supported formats: mermaid, plantuml")
			os.Exit(1)
		}

		if err := os.WriteFile(output, []byte(content), 0644); err != nil {
			fmt.Printf("❌ Error writing %s: %v\n", output, err)
			os.Exit(1)
		}
		fmt.Printf("✅ ERD saved to: %s\n", output)
	},
}

func mermaidContent(td *schema.TableData) string {
	var b strings.Builder

	b.WriteString("# Database Schema ERD\n\n")
	b.WriteString("```mermaid\nerDiagram\n")

	for _, t := range td.Tables {
		fmt.Fprintf(&b, "    %s {\n", t.Name)
		for _, c := range t.Columns {
			line := fmt.Sprintf("        %s %s", typeLabel(c), c.Name)
			if keys := keyMarkers(c); keys != "" {
				line += " " + keys
			}
			if c.Comment != "" {
				line += fmt.Sprintf(" %q", c.Comment)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("    }\n")
	}

	for _, r := range relationEdges(td) {
		_, parent := schema.SplitQName(r.ParentTable)
		_, child := schema.SplitQName(r.ChildTable)
		switch {
		case r.IsM2M:
			fmt.Fprintf(&b, "    %s }o--o{ %s : %s\n", parent, child, edgeLabel(r))
		case r.IsOne:
			fmt.Fprintf(&b, "    %s ||--|| %s : %s\n", parent, child, edgeLabel(r))
		default:
			fmt.Fprintf(&b, "    %s ||--o{ %s : %s\n", parent, child, edgeLabel(r))
		}
	}

	b.WriteString("```\n")
	return b.String()
}

func plantUMLContent(td *schema.TableData) string {
	var b strings.Builder

	b.WriteString("@startuml\n")
	b.WriteString("!theme plain\n")
	b.WriteString("skinparam linetype ortho\n\n")

	for _, t := range td.Tables {
		fmt.Fprintf(&b, "entity \"%s\" {\n", t.QName())
		for _, c := range t.Columns {
			line := fmt.Sprintf("  %s : %s", c.Name, typeLabel(c))
			if c.PrimaryKey {
				line += " <<PK>>"
			}
			if c.ForeignKey != nil && c.ForeignKey.IsForeignKey {
				line += " <<FK>>"
			}
			if c.Unique || c.UniqueKey != "" {
				line += " <<UQ>>"
			}
			if !c.AllowNull && !c.PrimaryKey {
				line += " <<NN>>"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("}\n\n")
	}

	for _, r := range relationEdges(td) {
		arrow := "||--o{"
		switch {
		case r.IsM2M:
			arrow = "}o--o{"
		case r.IsOne:
			arrow = "||--||"
		}
		fmt.Fprintf(&b, "\"%s\" %s \"%s\" : \"%s\"\n", r.ParentTable, arrow, r.ChildTable, edgeLabel(r))
	}

	b.WriteString("@enduml\n")
	return b.String()
}

// relationEdges drops the mirror half of each many-to-many pair so a
// junction table draws one edge instead of two.
func relationEdges(td *schema.TableData) []*schema.Relation {
	var edges []*schema.Relation
	seen := map[string]bool{}
	for _, r := range td.Relations {
		if r.IsM2M {
			a, b := r.ParentTable, r.ChildTable
			if b < a {
				a, b = b, a
			}
			key := r.JoinModel + ":" + a + ":" + b
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		edges = append(edges, r)
	}
	return edges
}

func edgeLabel(r *schema.Relation) string {
	if r.IsM2M && r.JoinModel != "" {
		return r.JoinModel
	}
	if r.ParentID != "" {
		return r.ParentID
	}
	return "references"
}

// typeLabel is the single-word type shown in a diagram cell, taken from
// the DataTypes mapping so raw spellings like "character varying(45)"
// come out as STRING.
func typeLabel(c *schema.Column) string {
	if t, ok := generator.MapType(c); ok {
		t = strings.TrimPrefix(t, "DataTypes.")
		if i := strings.IndexByte(t, '('); i >= 0 {
			t = t[:i]
		}
		return t
	}
	fields := strings.Fields(c.Type)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	return strings.ToUpper(fields[0])
}

// keyMarkers lists the mermaid key designators that apply to a column.
func keyMarkers(c *schema.Column) string {
	var keys []string
	if c.PrimaryKey {
		keys = append(keys, "PK")
	}
	if c.ForeignKey != nil && c.ForeignKey.IsForeignKey {
		keys = append(keys, "FK")
	}
	if c.Unique || c.UniqueKey != "" {
		keys = append(keys, "UK")
	}
	return strings.Join(keys, ", ")
}
