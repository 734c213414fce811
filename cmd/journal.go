package cmd

import (
	"fmt"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/internal/iocache"
	"github.com/huangsam/coauthor/internal/outwriter"
	"github.com/huangsam/coauthor/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// journalConfigSetup loads the journal settings only. It needs no repository.
func journalConfigSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	return contract.ProcessJournalOnly(cfg, input)
}

// journalSetup loads the journal settings and opens the store.
func journalSetup() error {
	if err := journalConfigSetup(); err != nil {
		return err
	}
	if err := iocache.InitJournal(cfg.JournalBackend, cfg.JournalDBConnect); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}
	return nil
}

// journalSetupWrapper wraps journalSetup to provide PreRunE for journal commands.
func journalSetupWrapper(_ *cobra.Command, _ []string) error {
	return journalSetup()
}

// journalConfigSetupWrapper is the PreRunE of commands that must not open
// the store themselves (clear, migrate).
func journalConfigSetupWrapper(_ *cobra.Command, _ []string) error {
	return journalConfigSetup()
}

// journalCmd focused on the amend journal.
//
// Note: Journal subcommands use minimal initialization instead of the full
// sharedSetup used by edit commands. They work outside a repository.
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the journal of amended commits",
	Long: `Every add or delete that amends the current commit is recorded in the
amend journal: time, repository, action, old and new commit hash and the
resulting coauthors. The old hash is how an amended commit can be recovered
(git reset --soft <old hash>).

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show the most recent amends
  status  - Show journal statistics
  export  - Export entries to csv, json, parquet or xlsx
  clear   - Remove all entries
  migrate - Run database schema migrations

Examples:
  git coauthor journal list --limit 5
  git coauthor journal export --output parquet --output-file journal.parquet`,
}

// journalListCmd shows the most recent journal entries.
var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent amends",
	Long: `Show the most recent journal entries, newest first.

Examples:
  git coauthor journal list
  git coauthor journal list --limit 50 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: journalSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		entries, err := iocache.Manager.GetJournalStore().List(viper.GetInt("limit"))
		if err != nil {
			return err
		}
		ow := outwriter.NewOutWriter(cmd.OutOrStdout(), outwriter.ColorEnabled(cfg.UseColors))
		return ow.WriteJournal(entries, cfg.Output)
	},
}

// journalStatusCmd shows journal status.
var journalStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display journal statistics and connection details",
	Long: `Show the journal backend, whether it is connected, the number of entries
and the time of the newest and oldest entry.

Examples:
  git coauthor journal status`,
	Args:    cobra.NoArgs,
	PreRunE: journalSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, err := iocache.Manager.GetJournalStore().GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get journal status: %w", err)
		}
		iocache.PrintJournalStatus(cmd.OutOrStdout(), status)
		return nil
	},
}

// journalClearCmd clears the journal.
var journalClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all journal entries",
	Long: `Delete every journal entry from the configured backend.

WARNING: the journal is the record of the commits replaced by amends.
Consider exporting it first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the journal table

Examples:
  git coauthor journal export --output json --output-file journal.json
  git coauthor journal clear`,
	Args:    cobra.NoArgs,
	PreRunE: journalConfigSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := iocache.ClearJournal(cfg.JournalBackend, cfg.JournalDBConnect); err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared successfully.")
		return err
	},
}

// journalExportCmd exports journal entries to a file.
var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journal entries for analytics tools",
	Long: `Export every journal entry to a file.

Requires: --output (csv, json, parquet or xlsx) and --output-file

Examples:
  git coauthor journal export --output csv --output-file journal.csv
  git coauthor journal export --output parquet --output-file journal.parquet
  duckdb -c "SELECT action, count(*) FROM read_parquet('journal.parquet') GROUP BY 1"`,
	Args:    cobra.NoArgs,
	PreRunE: journalSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return iocache.ExecuteJournalExport(iocache.Manager.GetJournalStore(), cfg.Output, cfg.OutputFile, cmd.OutOrStdout())
	},
}

// journalMigrateCmd runs database migrations for the journal store.
var journalMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the journal store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  git coauthor journal migrate

  # Rollback to initial state
  git coauthor journal migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: journalConfigSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		connStr := cfg.JournalDBConnect
		if cfg.JournalBackend == schema.SQLiteBackend && connStr == "" {
			connStr = iocache.GetDBFilePath()
		}
		return iocache.MigrateJournal(cmd.OutOrStdout(), cfg.JournalBackend, connStr, viper.GetInt("target-version"))
	},
}
