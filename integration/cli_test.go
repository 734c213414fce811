//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/coauthor/internal/testutil"
	"github.com/huangsam/coauthor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRepo creates a repository with some history: an older commit by Carol
// and a current commit by the test user.
func newRepo(t *testing.T) *testutil.Repo {
	t.Helper()
	repo := testutil.InitRepo(t)
	repo.Commit(t, "Carol King", "carol@example.com", "Initial import")
	repo.Commit(t, "Test User", "test@example.com", "Fix bug")
	return repo
}

func TestListWithoutCoauthors(t *testing.T) {
	repo := newRepo(t)

	res := runCoauthor(t, repo.Dir)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{schema.NoCoauthors}, lines(res.Stdout))

	res = runCoauthor(t, repo.Dir, "list", "--output", "json")
	require.NoError(t, res.Err)
	var result schema.EditResult
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &result))
	assert.Empty(t, result.Trailers)
	assert.Equal(t, repo.Head(t), result.NewHash)
}

func TestAddAndDeleteFlow(t *testing.T) {
	repo := newRepo(t)
	original := repo.Head(t)

	res := runCoauthor(t, repo.Dir, "config", "add", "jd: Jane Doe <jane@example.com>")
	require.NoError(t, res.Err)
	assert.FileExists(t, filepath.Join(repo.Dir, schema.AliasFileName))

	// jd comes from the alias file, carol from history.
	res = runCoauthor(t, repo.Dir, "JD", "carol")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{janeTrailer, carolTrailer}, lines(res.Stdout))
	assert.Equal(t, "Fix bug\n\n"+janeTrailer+"\n"+carolTrailer+"\n", repo.Message(t))
	assert.NotEqual(t, original, repo.Head(t))

	// Adding again is a no-op and keeps the hash.
	amended := repo.Head(t)
	res = runCoauthor(t, repo.Dir, "add", "jd")
	require.NoError(t, res.Err)
	assert.Equal(t, amended, repo.Head(t))

	res = runCoauthor(t, repo.Dir, "-d", "carol")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{janeTrailer}, lines(res.Stdout))

	res = runCoauthor(t, repo.Dir, "-d")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{schema.NoCoauthors}, lines(res.Stdout))
	assert.Equal(t, "Fix bug\n\n", repo.Message(t))

	// Three amends were journaled, newest first.
	res = runCoauthor(t, repo.Dir, "journal", "list", "--output", "json")
	require.NoError(t, res.Err)
	var entries []schema.JournalEntry
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, schema.DeleteAction, entries[0].Action)
	assert.Empty(t, entries[0].Trailers)
	assert.Equal(t, schema.AddAction, entries[2].Action)
	assert.Equal(t, original, entries[2].OldHash)
	assert.Equal(t, []string{janeTrailer, carolTrailer}, entries[2].Trailers)
}

func TestUnknownAliasLeavesCommit(t *testing.T) {
	repo := newRepo(t)
	head := repo.Head(t)

	res := runCoauthor(t, repo.Dir, "carol", "nobody", "ghost")
	require.Error(t, res.Err)
	assert.Contains(t, res.Stderr, "error: coauthors not found: nobody, ghost")
	assert.Equal(t, head, repo.Head(t))
}

func TestGitConfigAliasAndPrecedence(t *testing.T) {
	repo := newRepo(t)
	repo.Git(t, "config", "coauthor.jd", "Jane Git <jane@git.example.com>")
	res := runCoauthor(t, repo.Dir, "config", "add", "jd: Jane Doe <jane@example.com>")
	require.NoError(t, res.Err)

	res = runCoauthor(t, repo.Dir, "config", "--output", "csv")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "jd,Jane Doe <jane@example.com>,repo")

	res = runCoauthor(t, repo.Dir, "config", "--output", "csv", "--alias-precedence", "repo,git")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "jd,Jane Git <jane@git.example.com>,git")
}

func TestGoGitBackend(t *testing.T) {
	repo := newRepo(t)
	repo.Git(t, "config", "coauthor.jd", "Jane Doe <jane@example.com>")

	res := runCoauthor(t, repo.Dir, "--git-backend", "gogit", "add", "jd", "carol")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{janeTrailer, carolTrailer}, lines(res.Stdout))
	assert.Equal(t, "Fix bug\n\n"+janeTrailer+"\n"+carolTrailer+"\n", repo.Message(t))
	assert.Equal(t, "Test User", repo.Git(t, "log", "-1", "--format=%an"))
}

func TestTrailersRecognizedByGit(t *testing.T) {
	repo := newRepo(t)
	repo.Git(t, "config", "coauthor.jd", "Jane Doe <jane@example.com>")

	res := runCoauthor(t, repo.Dir, "jd", "carol")
	require.NoError(t, res.Err)

	parsed := repo.Git(t, "log", "-1", "--format=%(trailers:key=Co-authored-by)")
	assert.Equal(t, []string{janeTrailer, carolTrailer}, lines(parsed))
}

func TestConfigDeleteGlobal(t *testing.T) {
	repo := newRepo(t)

	res := runCoauthor(t, repo.Dir, "config", "add", "--global", "bob: Bob Roe <bob@example.com>", "jd: Jane Doe <jane@example.com>")
	require.NoError(t, res.Err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, schema.AliasFileName))

	res = runCoauthor(t, repo.Dir, "config", "delete", "--global", "bob", "--output", "csv")
	require.NoError(t, res.Err)
	assert.NotContains(t, res.Stdout, "bob")
	assert.Contains(t, res.Stdout, "jd,Jane Doe <jane@example.com>,user")

	res = runCoauthor(t, repo.Dir, "config", "add", "not-a-contact")
	require.Error(t, res.Err)
	assert.Contains(t, res.Stderr, "invalid config")
}

func TestInstall(t *testing.T) {
	repo := newRepo(t)

	res := runCoauthor(t, repo.Dir, "install")
	require.NoError(t, res.Err)
	assert.Equal(t, "!git-coauthor", repo.Git(t, "config", "--global", "alias.coauthor"))
}

func TestJournalExportAndClear(t *testing.T) {
	repo := newRepo(t)
	res := runCoauthor(t, repo.Dir, "carol")
	require.NoError(t, res.Err)

	out := filepath.Join(t.TempDir(), "journal.csv")
	res = runCoauthor(t, repo.Dir, "journal", "export", "--output", "csv", "--output-file", out)
	require.NoError(t, res.Err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,time,repo_path,action,old_hash,new_hash,trailers\n"))
	assert.Contains(t, string(data), carolTrailer)

	res = runCoauthor(t, repo.Dir, "journal", "status")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Total Entries: 1")

	res = runCoauthor(t, repo.Dir, "journal", "clear")
	require.NoError(t, res.Err)
	res = runCoauthor(t, repo.Dir, "journal", "status")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Total Entries: 0")
}

func TestVersion(t *testing.T) {
	res := runCoauthor(t, t.TempDir(), "version")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout+res.Stderr, "git-coauthor CLI")
}
