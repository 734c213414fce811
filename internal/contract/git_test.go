package contract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/internal/testutil"
	"github.com/huangsam/coauthor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalGitClient(t *testing.T) {
	client := contract.NewLocalGitClient()
	assert.NotNil(t, client, "NewLocalGitClient should return a non-nil client")
	assert.IsType(t, &contract.LocalGitClient{}, client)
}

func TestLocalGitClient_RepoRoot(t *testing.T) {
	repo := testutil.InitRepo(t)
	client := contract.NewLocalGitClient()
	ctx := context.Background()

	root, err := client.RepoRoot(ctx, repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, repo.Git(t, "rev-parse", "--show-toplevel"), root)

	_, err = client.RepoRoot(ctx, t.TempDir())
	assert.ErrorIs(t, err, contract.ErrRepoNotFound)
}

func TestLocalGitClient_HeadCommit(t *testing.T) {
	repo := testutil.InitRepo(t)
	client := contract.NewLocalGitClient()
	ctx := context.Background()

	_, err := client.HeadCommit(ctx, repo.Dir)
	assert.ErrorIs(t, err, contract.ErrHeadNotFound, "an unborn branch has no head commit")

	first := repo.Commit(t, "Jo Blow", "jo@x.com", "first")
	hash := repo.Commit(t, "Ann Lee", "ann@x.com", "subject\n\nbody")

	head, err := client.HeadCommit(ctx, repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, hash, head.Hash)
	assert.Equal(t, []string{first}, head.Parents)
	assert.NotEmpty(t, head.Tree)
	assert.Equal(t, "Ann Lee", head.Author.Name)
	assert.Equal(t, "ann@x.com", head.Author.Email)
	assert.Equal(t, "1700000120 +0000", head.Author.Date)
	assert.Equal(t, "Test User", head.Committer.Name)
	assert.Equal(t, "subject\n\nbody\n", head.Message)
}

func TestLocalGitClient_WalkHistory(t *testing.T) {
	repo := testutil.InitRepo(t)
	client := contract.NewLocalGitClient()
	ctx := context.Background()

	repo.Commit(t, "One", "one@x.com", "first")
	repo.Commit(t, "Two", "two@x.com", "second\n\nCo-authored-by: Three <three@x.com>")
	repo.Commit(t, "Four", "four@x.com", "third")

	t.Run("newest first", func(t *testing.T) {
		var authors []string
		err := client.WalkHistory(ctx, repo.Dir, func(c schema.Commit) (bool, error) {
			authors = append(authors, c.Author.Name)
			return true, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Four", "Two", "One"}, authors)
	})

	t.Run("stops early", func(t *testing.T) {
		var visited []schema.Commit
		err := client.WalkHistory(ctx, repo.Dir, func(c schema.Commit) (bool, error) {
			visited = append(visited, c)
			return len(visited) < 2, nil
		})
		require.NoError(t, err)
		require.Len(t, visited, 2)
		assert.Equal(t, "two@x.com", visited[1].Author.Email)
		assert.Equal(t, "second\n\nCo-authored-by: Three <three@x.com>\n", visited[1].Message)
	})

	t.Run("callback error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		err := client.WalkHistory(ctx, repo.Dir, func(schema.Commit) (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestLocalGitClient_AmendHead(t *testing.T) {
	repo := testutil.InitRepo(t)
	client := contract.NewLocalGitClient()
	ctx := context.Background()

	repo.Commit(t, "One", "one@x.com", "first")
	repo.Commit(t, "Jo Blow", "jo@x.com", "subject")

	head, err := client.HeadCommit(ctx, repo.Dir)
	require.NoError(t, err)

	newHash, err := client.AmendHead(ctx, repo.Dir, head, "subject\n\nCo-authored-by: Ann <ann@x.com>\n")
	require.NoError(t, err)
	assert.NotEqual(t, head.Hash, newHash)
	assert.Equal(t, newHash, repo.Head(t))
	assert.Equal(t, "subject\n\nCo-authored-by: Ann <ann@x.com>\n", repo.Message(t))

	amended, err := client.HeadCommit(ctx, repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, head.Tree, amended.Tree)
	assert.Equal(t, head.Parents, amended.Parents)
	assert.Equal(t, head.Author, amended.Author)
	assert.Equal(t, head.Committer, amended.Committer)

	// The branch moved, so amending the stale head must fail.
	_, err = client.AmendHead(ctx, repo.Dir, head, "stale\n")
	assert.ErrorIs(t, err, contract.ErrRewriteFailed)
}

func TestLocalGitClient_ConfigEntries(t *testing.T) {
	repo := testutil.InitRepo(t)
	client := contract.NewLocalGitClient()
	ctx := context.Background()

	entries, err := client.ConfigEntries(ctx, repo.Dir, schema.AliasSection)
	require.NoError(t, err)
	assert.Empty(t, entries, "no coauthor section yields an empty map")

	repo.Git(t, "config", "coauthor.jo", "Jo Blow <jo@x.com>")
	repo.Git(t, "config", "coauthor.ann", "Ann Lee <ann@x.com>")
	repo.Git(t, "config", "coauthorx.nope", "Nope <nope@x.com>")
	// Entries without a usable value are left to the history scan.
	repo.AppendConfig(t, "[coauthor]\n\tghost\n\tblank =\n")

	entries, err = client.ConfigEntries(ctx, repo.Dir, schema.AliasSection)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"jo":  "Jo Blow <jo@x.com>",
		"ann": "Ann Lee <ann@x.com>",
	}, entries)
}

func TestLocalGitClient_SetGlobalConfig(t *testing.T) {
	repo := testutil.InitRepo(t)
	client := contract.NewLocalGitClient()

	require.NoError(t, client.SetGlobalConfig(context.Background(), "alias.coauthor", "!git-coauthor"))
	assert.Equal(t, "!git-coauthor", repo.Git(t, "config", "--global", "alias.coauthor"))
}

func TestParseRawCommit(t *testing.T) {
	raw := "tree abc\n" +
		"parent p1\n" +
		"parent p2\n" +
		"author Jo Blow <jo@x.com> 1700000000 +0100\n" +
		"committer Ann <ann@x.com> 1700000060 -0500\n" +
		"gpgsig -----BEGIN PGP SIGNATURE-----\n" +
		" line\n" +
		" -----END PGP SIGNATURE-----\n" +
		"\n" +
		"subject\n\nbody\n"

	commit, err := contract.ParseRawCommit("h1", raw)
	require.NoError(t, err)
	assert.Equal(t, "h1", commit.Hash)
	assert.Equal(t, "abc", commit.Tree)
	assert.Equal(t, []string{"p1", "p2"}, commit.Parents)
	assert.Equal(t, schema.Signature{Name: "Jo Blow", Email: "jo@x.com", Date: "1700000000 +0100"}, commit.Author)
	assert.Equal(t, schema.Signature{Name: "Ann", Email: "ann@x.com", Date: "1700000060 -0500"}, commit.Committer)
	assert.Equal(t, "subject\n\nbody\n", commit.Message)

	_, err = contract.ParseRawCommit("h2", "tree abc\nauthor x")
	assert.ErrorIs(t, err, contract.ErrMessageUnreadable)

	_, err = contract.ParseRawCommit("h3", "author x <x@y> 1 +0000\n\nmsg\n")
	assert.ErrorIs(t, err, contract.ErrHeadNotFound)
}
