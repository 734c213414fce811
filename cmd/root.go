package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/internal/gitclient"
	"github.com/huangsam/coauthor/internal/iocache"
	"github.com/huangsam/coauthor/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// gitClient is the repository backend selected by git-backend.
var gitClient contract.GitClient

// rootCmd lists, adds or deletes coauthors of the current commit, like the
// list, add and delete subcommands.
var rootCmd = &cobra.Command{
	Use:   "git-coauthor [alias...]",
	Short: "Manage Co-authored-by trailers on the current commit.",
	Long: `git-coauthor resolves short aliases to "Name <email>" contacts and
adds them to the current commit as Co-authored-by trailers.

Aliases are looked up in git config (coauthor.<alias>), ~/.git-coauthors and
<repo>/.git-coauthors. Unknown aliases fall back to the repository history:
the most recent author or coauthor whose full name, any word of the name,
full email or email local part equals the alias, ignoring case.

Examples:
  # List coauthors of the current commit
  git coauthor

  # Add coauthors
  git coauthor jd bob

  # Delete one coauthor, or all of them
  git coauthor -d bob
  git coauthor -d`,
	Version:            version,
	Args:               cobra.ArbitraryArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		deleteMode, err := cmd.Flags().GetBool("delete")
		if err != nil {
			return err
		}
		switch {
		case deleteMode:
			return runDelete(cmd, args)
		case len(args) > 0:
			return runAdd(cmd, args)
		default:
			return runList(cmd, args)
		}
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".git-coauthor") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("COAUTHOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("repo", contract.DefaultRepoPath)
	viper.SetDefault("git-backend", schema.ExecGit)
	viper.SetDefault("alias-precedence", contract.DefaultAliasPrecedence)
	viper.SetDefault("journal-backend", schema.SQLiteBackend)
	viper.SetDefault("journal-db-connect", "")
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
}

// loadConfigFile reads the config file. A missing file is fine; defaults,
// env and flags still apply.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	contract.SetVerbose(input.Verbose)
	return nil
}

// newGitClient builds the client for the configured git backend.
func newGitClient() error {
	client, err := gitclient.New(schema.GitBackend(strings.ToLower(input.GitBackend)))
	if err != nil {
		return err
	}
	gitClient = client
	return nil
}

// sharedSetup unmarshals config, resolves the repository and opens the journal.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := newGitClient(); err != nil {
		return err
	}
	if err := contract.ProcessAndValidate(ctx, cfg, gitClient, input); err != nil {
		return err
	}
	// Edits still work without a journal.
	if err := iocache.InitJournal(cfg.JournalBackend, cfg.JournalDBConnect); err != nil {
		contract.LogWarn("amend journal disabled", err)
	}
	contract.Logger().WithField("repo", cfg.RepoPath).WithField("backend", cfg.GitBackend).Debug("setup complete")
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

