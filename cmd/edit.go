package cmd

import (
	"github.com/huangsam/coauthor/core"
	"github.com/huangsam/coauthor/internal/aliases"
	"github.com/huangsam/coauthor/internal/iocache"
	"github.com/huangsam/coauthor/internal/outwriter"
	"github.com/huangsam/coauthor/schema"
	"github.com/spf13/cobra"
)

// listCmd prints the coauthors of the current commit.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the coauthors of the current commit.",
	Long: `Print each Co-authored-by trailer of the current commit on its own line,
or "no coauthors" when there is none.

Examples:
  git coauthor list
  git coauthor list --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE:    runList,
}

// addCmd adds coauthors to the current commit.
var addCmd = &cobra.Command{
	Use:   "add alias...",
	Short: "Add coauthors to the current commit.",
	Long: `Resolve each alias to a contact and add it as a Co-authored-by trailer,
amending the current commit. Trailers already present are not duplicated and
an unchanged message leaves the commit untouched.

An alias resolves through the alias table first, then through history: the
most recent author or coauthor whose full name, any word of the name,
full email or email local part equals the alias, ignoring case.

Examples:
  git coauthor add jd bob`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE:    runAdd,
}

// deleteCmd removes coauthors from the current commit.
var deleteCmd = &cobra.Command{
	Use:   "delete [alias...]",
	Short: "Delete coauthors from the current commit.",
	Long: `Remove the Co-authored-by trailers of the given aliases from the current
commit, or every trailer when no alias is given.

Examples:
  git coauthor delete bob
  git coauthor delete`,
	PreRunE: sharedSetupWrapper,
	RunE:    runDelete,
}

// newEditor builds an editor for the configured repository. List passes
// withAliases=false since it never resolves anything.
func newEditor(cmd *cobra.Command, withAliases bool) (*core.Editor, error) {
	var table *aliases.Table
	if withAliases {
		t, err := aliases.Load(cmd.Context(), gitClient, cfg)
		if err != nil {
			return nil, err
		}
		table = t
	}
	if table == nil {
		return core.NewEditor(gitClient, nil, iocache.Manager.GetJournalStore(), cfg.RepoPath), nil
	}
	return core.NewEditor(gitClient, table, iocache.Manager.GetJournalStore(), cfg.RepoPath), nil
}

func writeResult(cmd *cobra.Command, result schema.EditResult) error {
	ow := outwriter.NewOutWriter(cmd.OutOrStdout(), outwriter.ColorEnabled(cfg.UseColors))
	return ow.WriteResult(result, cfg.Output)
}

func runList(cmd *cobra.Command, _ []string) error {
	editor, err := newEditor(cmd, false)
	if err != nil {
		return err
	}
	result, err := editor.List(cmd.Context())
	if err != nil {
		return err
	}
	return writeResult(cmd, result)
}

func runAdd(cmd *cobra.Command, args []string) error {
	editor, err := newEditor(cmd, true)
	if err != nil {
		return err
	}
	result, err := editor.Add(cmd.Context(), args)
	if err != nil {
		return err
	}
	return writeResult(cmd, result)
}

func runDelete(cmd *cobra.Command, args []string) error {
	editor, err := newEditor(cmd, len(args) > 0)
	if err != nil {
		return err
	}
	result, err := editor.Delete(cmd.Context(), args)
	if err != nil {
		return err
	}
	return writeResult(cmd, result)
}
