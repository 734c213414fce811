package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/huangsam/coauthor/core"
	"github.com/huangsam/coauthor/internal/aliases"
	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	journal contract.JournalStore
}

// newEditor builds an editor for the repository named in the request, or the
// configured one when the request names none.
func (h *toolHandler) newEditor(ctx context.Context, request mcp.CallToolRequest) (*core.Editor, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		root, err := h.client.RepoRoot(ctx, p)
		if err != nil {
			return nil, err
		}
		cfg.RepoPath = root
		cfg.RepoAliasFile = filepath.Join(root, schema.AliasFileName)
	}
	table, err := aliases.Load(ctx, h.client, cfg)
	if err != nil {
		return nil, err
	}
	return core.NewEditor(h.client, table, h.journal, cfg.RepoPath), nil
}

func (h *toolHandler) handleListCoauthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	editor, err := h.newEditor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("setup failed: %v", err)), nil
	}
	result, err := editor.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	return resultText(result), nil
}

func (h *toolHandler) handleAddCoauthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := request.GetStringSlice("aliases", nil)
	if len(names) == 0 {
		return mcp.NewToolResultError("aliases is required"), nil
	}
	editor, err := h.newEditor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("setup failed: %v", err)), nil
	}
	result, err := editor.Add(ctx, names)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("add failed: %v", err)), nil
	}
	return resultText(result), nil
}

func (h *toolHandler) handleDeleteCoauthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := request.GetStringSlice("aliases", nil)
	all := request.GetBool("all", false)
	switch {
	case len(names) == 0 && !all:
		return mcp.NewToolResultError("aliases is required unless all is true"), nil
	case len(names) > 0 && all:
		return mcp.NewToolResultError("aliases and all are mutually exclusive"), nil
	}
	editor, err := h.newEditor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("setup failed: %v", err)), nil
	}
	result, err := editor.Delete(ctx, names)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}
	return resultText(result), nil
}

func resultText(result schema.EditResult) *mcp.CallToolResult {
	if result.Trailers == nil {
		result.Trailers = []string{}
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}
