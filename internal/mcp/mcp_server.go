// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the coauthor MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, journal contract.JournalStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Coauthor Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		journal: journal,
	}

	// --- 1. Tool: list_coauthors ---
	s.AddTool(mcp.NewTool("list_coauthors",
		mcp.WithDescription("List the Co-authored-by trailers of the current commit."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
	), h.handleListCoauthors)

	// --- 2. Tool: add_coauthors ---
	s.AddTool(mcp.NewTool("add_coauthors",
		mcp.WithDescription("Resolve aliases to contacts and add them as Co-authored-by trailers, amending the current commit."),
		mcp.WithArray("aliases", mcp.Description("Aliases, first names or email prefixes to add."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleAddCoauthors)

	// --- 3. Tool: delete_coauthors ---
	s.AddTool(mcp.NewTool("delete_coauthors",
		mcp.WithDescription("Remove Co-authored-by trailers from the current commit, amending it."),
		mcp.WithArray("aliases", mcp.Description("Aliases of the coauthors to remove."), mcp.WithStringItems()),
		mcp.WithBoolean("all", mcp.Description("Remove every coauthor trailer. Required when no aliases are given.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleDeleteCoauthors)

	return s
}

// StartMCPServer starts the coauthor MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient, journal contract.JournalStore) error {
	s := NewMCPServer(baseCfg, client, journal)
	return server.ServeStdio(s)
}
