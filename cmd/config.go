package cmd

import (
	"errors"
	"slices"
	"strings"

	"github.com/huangsam/coauthor/internal/aliases"
	"github.com/huangsam/coauthor/internal/outwriter"
	"github.com/huangsam/coauthor/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd shows the merged alias table.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit coauthor aliases",
	Long: `Show the merged alias table: every alias, the contact it resolves to and
the scope that defines it.

Scopes, lowest precedence first by default (see --alias-precedence):
  git  - git config entries coauthor.<alias>
  user - ~/.git-coauthors
  repo - <repo>/.git-coauthors

Subcommands:
  add    - Add aliases to an alias file
  delete - Remove aliases from an alias file

Examples:
  git coauthor config
  git coauthor config --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := aliases.Load(cmd.Context(), gitClient, cfg)
		if err != nil {
			return err
		}
		ow := outwriter.NewOutWriter(cmd.OutOrStdout(), outwriter.ColorEnabled(cfg.UseColors))
		return ow.WriteAliases(table.Entries(), cfg.Output)
	},
}

// configAddCmd adds aliases to an alias file.
var configAddCmd = &cobra.Command{
	Use:   `add "alias: Name <email>"...`,
	Short: "Add aliases to the repository (or user) alias file",
	Long: `Add or replace aliases in <repo>/.git-coauthors, or ~/.git-coauthors with
--global. Each argument is "alias: Name <email>". Nothing is written when an
argument is malformed.

Examples:
  git coauthor config add "jd: Jane Doe <jane@example.com>"
  git coauthor config add --global "bob: Bob Roe <bob@example.com>"`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, path, err := aliasFile()
		if err != nil {
			return err
		}
		entries, err := aliases.AddToFile(path, args)
		if err != nil {
			return err
		}
		return writeAliasFile(cmd, scope, entries)
	},
}

// configDeleteCmd removes aliases from an alias file.
var configDeleteCmd = &cobra.Command{
	Use:   "delete [alias...]",
	Short: "Remove aliases from the repository (or user) alias file",
	Long: `Remove the given aliases from <repo>/.git-coauthors, or ~/.git-coauthors
with --global. Without arguments every alias of the file is removed.

Examples:
  git coauthor config delete jd
  git coauthor config delete --global`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, path, err := aliasFile()
		if err != nil {
			return err
		}
		entries, err := aliases.DeleteFromFile(path, args)
		if err != nil {
			return err
		}
		return writeAliasFile(cmd, scope, entries)
	},
}

// aliasFile picks the alias file edited by config add and delete.
func aliasFile() (schema.AliasScope, string, error) {
	if viper.GetBool("global") {
		if cfg.UserAliasFile == "" {
			return "", "", errors.New("cannot locate the home directory for --global")
		}
		return schema.UserScope, cfg.UserAliasFile, nil
	}
	return schema.RepoScope, cfg.RepoAliasFile, nil
}

// writeAliasFile prints the aliases left in one file after an edit.
func writeAliasFile(cmd *cobra.Command, scope schema.AliasScope, entries map[string]string) error {
	list := make([]schema.AliasEntry, 0, len(entries))
	for alias, contact := range entries {
		list = append(list, schema.AliasEntry{Alias: alias, Contact: contact, Scope: scope})
	}
	slices.SortFunc(list, func(a, b schema.AliasEntry) int {
		return strings.Compare(a.Alias, b.Alias)
	})
	ow := outwriter.NewOutWriter(cmd.OutOrStdout(), outwriter.ColorEnabled(cfg.UseColors))
	return ow.WriteAliases(list, cfg.Output)
}
