// Package cmd defines the command-line interface for git-coauthor.
package cmd

import (
	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the config subcommands to the parent config command
	configCmd.AddCommand(configAddCmd)
	configCmd.AddCommand(configDeleteCmd)

	// Add the journal subcommands to the parent journal command
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalStatusCmd)
	journalCmd.AddCommand(journalClearCmd)
	journalCmd.AddCommand(journalExportCmd)
	journalCmd.AddCommand(journalMigrateCmd)

	// The root command alone takes -d, like the original git-coauthor.
	rootCmd.Flags().BoolP("delete", "d", false, "Delete the given coauthors, or all of them when none is given")

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("repo", contract.DefaultRepoPath, "Path inside the Git repository to edit")
	rootCmd.PersistentFlags().String("git-backend", string(schema.ExecGit), "Git backend: exec or gogit")
	rootCmd.PersistentFlags().String("alias-precedence", contract.DefaultAliasPrecedence, "Alias scopes from lowest to highest precedence (git, user, repo)")
	rootCmd.PersistentFlags().String("journal-backend", string(schema.SQLiteBackend), "Amend journal backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("journal-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json (journal export also parquet or xlsx)")
	rootCmd.PersistentFlags().String("output-file", "", "Path to write exports to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all persistent flags of configCmd to Viper
	configCmd.PersistentFlags().Bool("global", false, "Edit ~/.git-coauthors instead of the repository alias file")
	if err := viper.BindPFlags(configCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding config flags", err)
	}

	// Bind all flags of journalListCmd to Viper
	journalListCmd.Flags().Int("limit", contract.DefaultJournalLimit, "Number of entries to display (0 = all)")
	if err := viper.BindPFlags(journalListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding journal list flags", err)
	}

	// Bind all flags of journalMigrateCmd to Viper
	journalMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(journalMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding journal migrate flags", err)
	}
}
