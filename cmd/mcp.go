package cmd

import (
	"github.com/huangsam/coauthor/internal/iocache"
	"github.com/huangsam/coauthor/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the coauthor MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents list, add and delete
coauthors of the current commit via the list_coauthors, add_coauthors and
delete_coauthors tools.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, gitClient, iocache.Manager.GetJournalStore())
	},
}
