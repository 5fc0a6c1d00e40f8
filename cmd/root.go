package cmd

import (
	"fmt"
	"os"

	"github.com/IvanStoilov/sequelize-auto/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sequelize-auto",
	Short: "Generate Sequelize models from a YAML schema description",
	Long: `sequelize-auto turns a YAML schema description into Sequelize model
files, one per table, without ever connecting to a database.

Examples:

  sequelize-auto init
  sequelize-auto generate
  sequelize-auto generate -l ts -o ./src/models
  sequelize-auto validate
  sequelize-auto docs --format mermaid
`,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sequelize-auto.yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(dialectsCmd)
}

// initConfig layers flag > config file > environment > default.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("sequelize-auto")
		viper.SetConfigType("yaml")
	}

	utils.LoadEnv()
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
