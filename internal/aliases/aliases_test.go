package aliases

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockSource(scope schema.AliasScope, entries map[string]string) *contract.MockAliasSource {
	src := &contract.MockAliasSource{}
	src.On("Scope").Return(scope)
	src.On("Entries", mock.Anything).Return(entries, nil)
	return src
}

func TestNewTablePrecedence(t *testing.T) {
	git := mockSource(schema.GitScope, map[string]string{"jd": "Jane Git <jd@git.example>", "bob": "Bob Roe <bob@example.com>"})
	repo := mockSource(schema.RepoScope, map[string]string{"jd": "Jane Repo <jd@repo.example>"})

	table, err := NewTable(context.Background(), []contract.AliasSource{git, repo})
	require.NoError(t, err)
	contact, ok := table.Lookup("jd")
	require.True(t, ok)
	assert.Equal(t, "Jane Repo <jd@repo.example>", contact)

	// Reversing the order reverses the winner
	table, err = NewTable(context.Background(), []contract.AliasSource{repo, git})
	require.NoError(t, err)
	contact, _ = table.Lookup("jd")
	assert.Equal(t, "Jane Git <jd@git.example>", contact)

	_, ok = table.Lookup("nobody")
	assert.False(t, ok)
}

func TestTableEntries(t *testing.T) {
	table, err := NewTable(context.Background(), []contract.AliasSource{
		mockSource(schema.UserScope, map[string]string{"zed": "Zed <z@example.com>", "Amy": "Amy <a@example.com>"}),
	})
	require.NoError(t, err)
	assert.Equal(t, []schema.AliasEntry{
		{Alias: "amy", Contact: "Amy <a@example.com>", Scope: schema.UserScope},
		{Alias: "zed", Contact: "Zed <z@example.com>", Scope: schema.UserScope},
	}, table.Entries())
}

func TestNewTableSourceError(t *testing.T) {
	src := &contract.MockAliasSource{}
	src.On("Entries", mock.Anything).Return(nil, contract.ErrAliasTableUnreadable)

	_, err := NewTable(context.Background(), []contract.AliasSource{src})
	assert.ErrorIs(t, err, contract.ErrAliasTableUnreadable)
}

func TestGitConfigSource(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("ConfigEntries", mock.Anything, "/repo", "coauthor").Return(map[string]string{"jd": "Jane <jd@example.com>"}, nil)

	src := NewGitConfigSource(client, "/repo")
	assert.Equal(t, schema.GitScope, src.Scope())
	entries, err := src.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane <jd@example.com>", entries["jd"])

	failing := &contract.MockGitClient{}
	failing.On("ConfigEntries", mock.Anything, "/repo", "coauthor").Return(nil, errors.New("bad config"))
	_, err = NewGitConfigSource(failing, "/repo").Entries(context.Background())
	assert.ErrorIs(t, err, contract.ErrAliasTableUnreadable)
}

func TestSources(t *testing.T) {
	cfg := &contract.Config{
		RepoPath:        "/repo",
		AliasPrecedence: []schema.AliasScope{schema.RepoScope, schema.GitScope, schema.UserScope},
		UserAliasFile:   "/home/me/.git-coauthors",
		RepoAliasFile:   "/repo/.git-coauthors",
	}
	sources := Sources(&contract.MockGitClient{}, cfg)
	require.Len(t, sources, 3)
	assert.Equal(t, schema.RepoScope, sources[0].Scope())
	assert.Equal(t, schema.GitScope, sources[1].Scope())
	assert.Equal(t, schema.UserScope, sources[2].Scope())

	cfg.UserAliasFile = ""
	assert.Len(t, Sources(&contract.MockGitClient{}, cfg), 2)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	userFile := filepath.Join(dir, "user-aliases")
	repoFile := filepath.Join(dir, "repo-aliases")
	require.NoError(t, WriteFile(userFile, map[string]string{"jd": "Jane User <jd@user.example>", "amy": "Amy <a@example.com>"}))
	require.NoError(t, WriteFile(repoFile, map[string]string{"jd": "Jane Repo <jd@repo.example>"}))

	client := &contract.MockGitClient{}
	client.On("ConfigEntries", mock.Anything, dir, "coauthor").Return(map[string]string{"amy": "Amy Git <amy@git.example>"}, nil)

	cfg := &contract.Config{
		RepoPath:        dir,
		AliasPrecedence: schema.DefaultAliasPrecedence,
		UserAliasFile:   userFile,
		RepoAliasFile:   repoFile,
	}
	table, err := Load(context.Background(), client, cfg)
	require.NoError(t, err)

	contact, _ := table.Lookup("jd")
	assert.Equal(t, "Jane Repo <jd@repo.example>", contact)
	contact, _ = table.Lookup("amy")
	assert.Equal(t, "Amy <a@example.com>", contact)
}
