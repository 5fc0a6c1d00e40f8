package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/IvanStoilov/sequelize-auto/dialect"
	"github.com/IvanStoilov/sequelize-auto/generator"
	"github.com/IvanStoilov/sequelize-auto/loader"
	"github.com/IvanStoilov/sequelize-auto/naming"
	"github.com/IvanStoilov/sequelize-auto/schema"
	"github.com/IvanStoilov/sequelize-auto/validator"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	schemaFile     string
	outputDir      string
	outputLang     string
	dialectName    string
	schemaName     string
	caseModel      string
	caseProp       string
	caseFile       string
	singularize    bool
	noAlias        bool
	spaces         bool
	indentation    int
	onlyTables     []string
	skipTables     []string
	additionalFile string
	timestampsFlag bool
	paranoidFlag   bool
	watchGenerate  bool
	dryRunGenerate bool
)

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&schemaFile, "file", "f", "schema.yaml", "Schema YAML file to load")
	f.StringVarP(&outputDir, "output", "o", "./models", "Directory the model files are written to")
	f.StringVarP(&outputLang, "lang", "l", "es5", "Model flavor: es5, es6, esm or ts")
	f.StringVarP(&dialectName, "dialect", "e", "", "Database dialect: postgres, mysql, mssql or sqlite (default: the schema file's dialect)")
	f.StringVarP(&schemaName, "schema", "s", "", "Override the schema qualifier on every table")
	f.StringVar(&caseModel, "case-model", "o", "Case of model names: c|l|o|p|u|k")
	f.StringVar(&caseProp, "case-prop", "o", "Case of property names: c|l|o|p|u|k")
	f.StringVar(&caseFile, "case-file", "o", "Case of file names: c|l|o|p|u|k")
	f.BoolVar(&singularize, "singularize", false, "Singularize model and file names from plural table names")
	f.BoolVar(&noAlias, "no-alias", false, "Drop 'as' aliases that only repeat the model name")
	f.BoolVar(&spaces, "spaces", false, "Indent with spaces instead of tabs")
	f.IntVar(&indentation, "indentation", 2, "Spaces per indent level (with --spaces)")
	f.StringSliceVarP(&onlyTables, "tables", "t", nil, "Generate only these tables")
	f.StringSliceVarP(&skipTables, "skip-tables", "T", nil, "Skip these tables")
	f.StringVarP(&additionalFile, "additional", "a", "", "JSON or YAML file with options merged into every model's options block")
	f.BoolVar(&timestampsFlag, "timestamps", false, "Force the timestamps model option on or off (omit to infer from column names)")
	f.BoolVar(&paranoidFlag, "paranoid", false, "Force the paranoid model option on or off")
	f.BoolVar(&watchGenerate, "watch", false, "Watch the schema file and regenerate on change")
	f.BoolVar(&dryRunGenerate, "dry-run", false, "Preview the models that would be generated without writing files")

	viper.BindPFlag("input.file", f.Lookup("file"))
	viper.BindPFlag("output.directory", f.Lookup("output"))
	viper.BindPFlag("output.lang", f.Lookup("lang"))
	viper.BindPFlag("options.dialect", f.Lookup("dialect"))
	viper.BindPFlag("options.schema", f.Lookup("schema"))
	viper.BindPFlag("options.case_model", f.Lookup("case-model"))
	viper.BindPFlag("options.case_prop", f.Lookup("case-prop"))
	viper.BindPFlag("options.case_file", f.Lookup("case-file"))
	viper.BindPFlag("options.singularize", f.Lookup("singularize"))
	viper.BindPFlag("options.no_alias", f.Lookup("no-alias"))
	viper.BindPFlag("options.spaces", f.Lookup("spaces"))
	viper.BindPFlag("options.indentation", f.Lookup("indentation"))
	viper.BindPFlag("options.additional_file", f.Lookup("additional"))
	viper.BindPFlag("settings.tables", f.Lookup("tables"))
	viper.BindPFlag("settings.skip_tables", f.Lookup("skip-tables"))
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Sequelize model files from the schema",
	Long: `Generate Sequelize model files from the schema description.

Reads tables, columns, foreign keys and indexes from a YAML file and
writes one model file per table in the chosen flavor.

Flavors:
  es5   CommonJS factory calling sequelize.define (default)
  es6   CommonJS class extending Sequelize.Model
  esm   ES module class
  ts    TypeScript class with typed attributes

Examples:
  sequelize-auto generate                          # schema.yaml -> ./models
  sequelize-auto generate -l ts -o ./src/models    # TypeScript classes
  sequelize-auto generate -e mysql --case-model p --case-file k
  sequelize-auto generate -t users -t orders       # only these tables
  sequelize-auto generate --watch                  # regenerate on change
  sequelize-auto generate --dry-run                # print instead of write
`,
	Run: func(cmd *cobra.Command, args []string) {
		if watchGenerate {
			if err := runGenerate(cmd); err != nil {
				fmt.Println("❌", err)
			}
			if err := watchSchema(cmd, viper.GetString("input.file")); err != nil {
				fmt.Println("❌", err)
				os.Exit(1)
			}
			return
		}

		if err := runGenerate(cmd); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
	},
}

func runGenerate(cmd *cobra.Command) error {
	file := viper.GetString("input.file")
	doc, err := loader.LoadSchemaFromYAML(file)
	if err != nil {
		return err
	}
	td := doc.Data

	loader.FilterTables(td, viper.GetStringSlice("settings.tables"), viper.GetStringSlice("settings.skip_tables"))
	if len(td.Tables) == 0 {
		return fmt.Errorf("no tables to generate from %s", file)
	}

	if s := viper.GetString("options.schema"); s != "" {
		for _, t := range td.Tables {
			t.Schema = s
		}
	}

	check := validator.ValidateSchema(td)
	for _, w := range check.Warnings {
		color.Yellow("⚠️  %s", formatIssue(w))
	}
	if !check.Valid {
		for _, e := range check.Errors {
			color.Red("❌ %s", formatIssue(e))
		}
		return fmt.Errorf("schema has %d validation error(s)", len(check.Errors))
	}

	opts, err := generationOptions(cmd)
	if err != nil {
		return err
	}

	// A schema file may ship explicit relations; otherwise infer them
	// from the foreign keys.
	if len(td.Relations) == 0 {
		schema.Relate(td, opts.CaseModel, opts.CaseProp, opts.Singularize)
	}

	name := viper.GetString("options.dialect")
	if name == "" {
		name = doc.Dialect
	}
	g := generator.New(td, dialect.GetDialect(name), opts)

	res, err := g.Generate(context.Background())
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		color.Yellow("⚠️  [%s].%s: %s", w.Table, w.Column, w.Message)
	}

	if dryRunGenerate {
		fmt.Println("\n================ DRY RUN: Model Preview ================")
		for _, t := range td.Tables {
			text, ok := res.Models[t.QName()]
			if !ok {
				continue
			}
			fmt.Printf("--- %s ---\n", g.FileName(t.Name)+opts.Lang.Ext())
			fmt.Println(text)
		}
		fmt.Println("========================================================")
		fmt.Println("(Dry run only. No files were written.)")
		return nil
	}

	dir := viper.GetString("output.directory")
	uiprogress.Start()
	bar := uiprogress.AddBar(len(res.Models)).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return "Writing models: "
	})
	written, err := g.WriteModels(res, dir, func(string) {
		bar.Incr()
	})
	uiprogress.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("✅ Generated %d model file(s) in %s\n", len(written), dir)
	return nil
}

// generationOptions resolves the generator options through viper, so a
// flag beats the config file which beats the default.
func generationOptions(cmd *cobra.Command) (generator.Options, error) {
	var opts generator.Options

	lang := generator.Lang(viper.GetString("output.lang"))
	if !lang.Valid() {
		return opts, fmt.Errorf("unsupported lang %q (expected es5, es6, esm or ts)", lang)
	}

	cm, err := parseCase("case-model", viper.GetString("options.case_model"))
	if err != nil {
		return opts, err
	}
	cp, err := parseCase("case-prop", viper.GetString("options.case_prop"))
	if err != nil {
		return opts, err
	}
	cf, err := parseCase("case-file", viper.GetString("options.case_file"))
	if err != nil {
		return opts, err
	}

	additional, err := loadAdditional(cmd)
	if err != nil {
		return opts, err
	}

	opts = generator.Options{
		Lang:        lang,
		CaseModel:   cm,
		CaseProp:    cp,
		CaseFile:    cf,
		Singularize: viper.GetBool("options.singularize"),
		NoAlias:     viper.GetBool("options.no_alias"),
		Spaces:      viper.GetBool("options.spaces"),
		Indentation: viper.GetInt("options.indentation"),
		Additional:  additional,
	}
	return opts, nil
}

func parseCase(flag, v string) (naming.Case, error) {
	if c := naming.Case(v); c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("invalid --%s %q (expected c, l, o, p, u or k)", flag, v)
}

// loadAdditional assembles the free-form model options. The additional
// options file is read directly instead of through viper because viper
// folds keys to lower case, and Sequelize option keys such as createdAt
// are case sensitive.
func loadAdditional(cmd *cobra.Command) (map[string]any, error) {
	additional := map[string]any{}
	if viper.IsSet("options.timestamps") {
		additional["timestamps"] = viper.GetBool("options.timestamps")
	}
	if viper.IsSet("options.paranoid") {
		additional["paranoid"] = viper.GetBool("options.paranoid")
	}
	if path := viper.GetString("options.additional_file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading additional options file: %w", err)
		}
		if err := yaml.Unmarshal(data, &additional); err != nil {
			return nil, fmt.Errorf("parsing additional options file: %w", err)
		}
	}
	if cmd.Flags().Changed("timestamps") {
		additional["timestamps"] = timestampsFlag
	}
	if cmd.Flags().Changed("paranoid") {
		additional["paranoid"] = paranoidFlag
	}
	if len(additional) == 0 {
		return nil, nil
	}
	return additional, nil
}

// watchSchema blocks, rerunning generation whenever the schema file
// changes. Editors that replace the file on save emit create or rename
// events rather than writes, so the parent directory is watched and
// events are filtered by name.
func watchSchema(cmd *cobra.Command, file string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %v", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %v", dir, err)
	}

	fmt.Printf("👀 Watching %s for changes (Ctrl+C to stop)\n", file)

	target := filepath.Clean(file)
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors fire several events per save; collapse them.
			debounce.Reset(300 * time.Millisecond)
		case <-debounce.C:
			fmt.Printf("🔄 %s changed, regenerating...\n", file)
			if err := runGenerate(cmd); err != nil {
				fmt.Println("❌", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Println("❌ Watch error:", err)
		}
	}
}
