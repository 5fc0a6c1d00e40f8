package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter schema.yaml",
	Long: `Create a starter schema.yaml in the current directory.

The example schema covers the common cases: serial primary keys,
unique columns, enum types, timestamp defaults, foreign keys and a
junction table that turns into a belongsToMany pair.

Examples:
  sequelize-auto init                 # Create schema.yaml
  sequelize-auto generate             # Then generate models from it`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat("schema.yaml"); err == nil {
			fmt.Println("❌ schema.yaml already exists!")
			return
		}

		content := `# Schema description consumed by sequelize-auto.
# Column types use their raw SQL spelling; they are mapped to
# Sequelize DataTypes during generation.
dialect: postgres
schema: public

tables:
  - name: users
    columns:
      - name: id
        type: serial
        primary: true
        auto_increment: true
      - name: email
        type: character varying(255)
        not_null: true
        unique: true
      - name: full_name
        type: character varying(120)
      - name: status
        type: "enum('active','blocked')"
        default: active
      - name: created_at
        type: timestamp with time zone
        default: now()
    indexes:
      - name: users_email_key
        unique: true
        fields: [email]

  - name: posts
    columns:
      - name: id
        type: serial
        primary: true
        auto_increment: true
      - name: user_id
        type: integer
        not_null: true
        foreign_key:
          references_table: users
          references_column: id
      - name: title
        type: character varying(200)
        not_null: true
      - name: body
        type: text
      - name: created_at
        type: timestamp with time zone
        default: now()

  - name: tags
    columns:
      - name: id
        type: serial
        primary: true
        auto_increment: true
      - name: name
        type: character varying(80)
        not_null: true
        unique: true

  # A junction table whose primary key is two foreign keys produces a
  # belongsToMany pair between posts and tags.
  - name: post_tags
    columns:
      - name: post_id
        type: integer
        primary: true
        foreign_key:
          references_table: posts
          references_column: id
          primary: true
      - name: tag_id
        type: integer
        primary: true
        foreign_key:
          references_table: tags
          references_column: id
          primary: true

# Other column keys:
# - unique_key: name of a named unique constraint
# - comment: column comment copied into the model
# - special: [a, b]        enum values when the type text carries none
# - element_type: integer  array element type
# - extra: {}              extra attribute options passed through as-is
#
# Default value examples:
# - default: now()                  # rendered as Sequelize.fn('now')
# - default: CURRENT_TIMESTAMP     # rendered as Sequelize.literal(...)
# - default: active                # string literal
# - default: 0                     # numeric literal
# - default: true                  # boolean literal
# - default: uuid_generate_v4()    # rendered as DataTypes.UUIDV4
#
# Relations are inferred from foreign keys. Add an explicit relations:
# list (parent_table, child_table, one, m2m, join_model, ...) to
# override the inference.
`
		if err := os.WriteFile("schema.yaml", []byte(content), 0644); err != nil {
			fmt.Println("❌ Error creating schema.yaml:", err)
			return
		}
		fmt.Println("✅ Created schema.yaml example file.")
		fmt.Println("📝 Edit schema.yaml to describe your database schema")
		fmt.Println("🚀 Run 'sequelize-auto generate' to create Sequelize models from it")
	},
}
