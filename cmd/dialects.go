package cmd

import (
	"fmt"
	"strings"

	"github.com/IvanStoilov/sequelize-auto/dialect"
	"github.com/spf13/cobra"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List supported database dialects",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Supported dialects:")
		for _, name := range dialect.Names {
			d := dialect.GetDialect(name)
			var traits []string
			if d.HasSchema() {
				traits = append(traits, "schema-qualified tables")
			}
			if !d.CanAliasPK() {
				traits = append(traits, "primary keys keep their column name")
			}
			line := "  " + name
			if len(traits) > 0 {
				line += " (" + strings.Join(traits, ", ") + ")"
			}
			fmt.Println(line)
		}
	},
}
