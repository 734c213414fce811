package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// gitAlias is the git alias that makes "git coauthor" run this binary.
const (
	gitAliasKey   = "alias.coauthor"
	gitAliasValue = "!git-coauthor"
)

// installCmd registers the git alias.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the 'git coauthor' alias in the global git config",
	Long: `Set alias.coauthor to !git-coauthor in the global git configuration so
that "git coauthor" works from any repository.

Examples:
  git-coauthor install`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := loadConfigFile(); err != nil {
			return err
		}
		return newGitClient()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := gitClient.SetGlobalConfig(cmd.Context(), gitAliasKey, gitAliasValue); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Installed: git config --global %s '%s'\n", gitAliasKey, gitAliasValue)
		return err
	},
}
