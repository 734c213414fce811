package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/coauthor/internal/contract"
	mcp_internal "github.com/huangsam/coauthor/internal/mcp"
	"github.com/huangsam/coauthor/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const janeTrailer = "Co-authored-by: Jane Doe <jane@example.com>"

func newTestServerClient(message string) *contract.MockGitClient {
	client := &contract.MockGitClient{}
	client.On("ConfigEntries", mock.Anything, "/repo", schema.AliasSection).
		Return(map[string]string{"jd": "Jane Doe <jane@example.com>"}, nil)
	client.On("HeadCommit", mock.Anything, "/repo").Return(schema.Commit{
		Hash:    "1111",
		Tree:    "tree",
		Message: message,
	}, nil)
	return client
}

func baseConfig() *contract.Config {
	return &contract.Config{
		RepoPath:        "/repo",
		AliasPrecedence: []schema.AliasScope{schema.GitScope},
	}
}

func callTool(t *testing.T, client contract.GitClient, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), client, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultOf(t *testing.T, res *mcp.CallToolResult) schema.EditResult {
	t.Helper()
	require.False(t, res.IsError, "unexpected tool error: %v", res.Content)
	var result schema.EditResult
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
	return result
}

func TestMCPServer_ListCoauthors(t *testing.T) {
	client := newTestServerClient("Fix bug\n\n" + janeTrailer + "\n")

	result := resultOf(t, callTool(t, client, "list_coauthors", nil))
	assert.Equal(t, []string{janeTrailer}, result.Trailers)
	assert.Equal(t, "1111", result.NewHash)
}

func TestMCPServer_AddCoauthors(t *testing.T) {
	client := newTestServerClient("Fix bug\n")
	client.On("AmendHead", mock.Anything, "/repo", mock.Anything, "Fix bug\n\n"+janeTrailer+"\n").Return("2222", nil)

	result := resultOf(t, callTool(t, client, "add_coauthors", map[string]any{
		"aliases": []any{"JD"},
	}))
	assert.Equal(t, []string{janeTrailer}, result.Trailers)
	assert.Equal(t, "1111", result.OldHash)
	assert.Equal(t, "2222", result.NewHash)
	client.AssertExpectations(t)
}

func TestMCPServer_DeleteCoauthors(t *testing.T) {
	client := newTestServerClient("Fix bug\n\n" + janeTrailer + "\n")
	client.On("AmendHead", mock.Anything, "/repo", mock.Anything, "Fix bug\n\n").Return("3333", nil)

	result := resultOf(t, callTool(t, client, "delete_coauthors", map[string]any{"all": true}))
	assert.Empty(t, result.Trailers)
	assert.Equal(t, "3333", result.NewHash)
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"add without aliases", "add_coauthors", map[string]any{}, "aliases is required"},
		{"delete without target", "delete_coauthors", map[string]any{}, "aliases is required unless all is true"},
		{"delete with both", "delete_coauthors", map[string]any{"aliases": []any{"jd"}, "all": true}, "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &contract.MockGitClient{}
			res := callTool(t, client, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, res.Content[0].(mcp.TextContent).Text, tt.want)
			client.AssertNotCalled(t, "HeadCommit", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown alias", func(t *testing.T) {
		client := newTestServerClient("Fix bug\n")
		client.On("WalkHistory", mock.Anything, "/repo").Return([]schema.Commit{}, nil)
		res := callTool(t, client, "add_coauthors", map[string]any{"aliases": []any{"nobody"}})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "coauthor not found: nobody")
		client.AssertNotCalled(t, "AmendHead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
