package gitclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	gitformat "github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
)

// GoGitClient implements the GitClient interface in pure Go on top of go-git.
// It does not need a git binary, but it does not write reflog entries.
type GoGitClient struct{}

var _ contract.GitClient = &GoGitClient{} // Compile-time check

// NewGoGitClient creates a new instance of the go-git client.
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{}
}

func openRepo(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// RepoRoot implements the GitClient interface.
func (c *GoGitClient) RepoRoot(_ context.Context, contextPath string) (string, error) {
	repo, err := openRepo(contextPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", contract.ErrRepoNotFound, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %w", contract.ErrRepoNotFound, err)
	}
	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return "", err
	}
	return root, nil
}

// HeadCommit implements the GitClient interface.
func (c *GoGitClient) HeadCommit(_ context.Context, repoPath string) (schema.Commit, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return schema.Commit{}, fmt.Errorf("%w: %w", contract.ErrRepoNotFound, err)
	}
	head, err := repo.Head()
	if err != nil {
		return schema.Commit{}, fmt.Errorf("%w: %w", contract.ErrHeadNotFound, err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return schema.Commit{}, fmt.Errorf("%w: %w", contract.ErrHeadNotFound, err)
	}
	return toSchemaCommit(commit), nil
}

// WalkHistory implements the GitClient interface. Commits come in committer
// time order, matching "git log --date-order".
func (c *GoGitClient) WalkHistory(ctx context.Context, repoPath string, fn func(schema.Commit) (bool, error)) error {
	repo, err := openRepo(repoPath)
	if err != nil {
		return fmt.Errorf("%w: %w", contract.ErrRepoNotFound, err)
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("%w: %w", contract.ErrHeadNotFound, err)
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return err
	}
	defer iter.Close()

	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := fn(toSchemaCommit(commit))
		if err != nil {
			return err
		}
		if !more {
			return storer.ErrStop
		}
		return nil
	})
	if errors.Is(err, storer.ErrStop) {
		return nil
	}
	return err
}

// AmendHead implements the GitClient interface. The branch is moved with a
// check-and-set on the old hash, so a concurrent move of the branch fails.
func (c *GoGitClient) AmendHead(_ context.Context, repoPath string, head schema.Commit, message string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", contract.ErrRewriteFailed, err)
	}
	author, err := toObjectSignature(head.Author)
	if err != nil {
		return "", fmt.Errorf("%w: author: %w", contract.ErrRewriteFailed, err)
	}
	committer, err := toObjectSignature(head.Committer)
	if err != nil {
		return "", fmt.Errorf("%w: committer: %w", contract.ErrRewriteFailed, err)
	}

	amended := &object.Commit{
		Author:    author,
		Committer: committer,
		Message:   message,
		TreeHash:  plumbing.NewHash(head.Tree),
	}
	for _, parent := range head.Parents {
		amended.ParentHashes = append(amended.ParentHashes, plumbing.NewHash(parent))
	}

	obj := repo.Storer.NewEncodedObject()
	if err := amended.Encode(obj); err != nil {
		return "", fmt.Errorf("%w: %w", contract.ErrRewriteFailed, err)
	}
	newHash, err := repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return "", fmt.Errorf("%w: %w", contract.ErrRewriteFailed, err)
	}

	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: %w", contract.ErrRewriteFailed, err)
	}
	if ref.Hash().String() != head.Hash {
		return "", fmt.Errorf("%w: HEAD moved from %s to %s", contract.ErrRewriteFailed, head.Hash, ref.Hash())
	}
	next := plumbing.NewHashReference(ref.Name(), newHash)
	if err := repo.Storer.CheckAndSetReference(next, ref); err != nil {
		return "", fmt.Errorf("%w: %w", contract.ErrRewriteFailed, err)
	}
	return newHash.String(), nil
}

// ConfigEntries implements the GitClient interface. Global entries are read
// first so that repository entries override them, like git does.
func (c *GoGitClient) ConfigEntries(_ context.Context, repoPath string, section string) (map[string]string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrAliasTableUnreadable, err)
	}
	global, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrAliasTableUnreadable, err)
	}
	local, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrAliasTableUnreadable, err)
	}

	entries := make(map[string]string)
	for _, cfg := range []*config.Config{global, local} {
		if cfg.Raw == nil || !cfg.Raw.HasSection(section) {
			continue
		}
		s := cfg.Raw.Section(section)
		for _, opt := range s.Options {
			setEntry(entries, strings.ToLower(opt.Key), opt.Value)
		}
		for _, sub := range s.Subsections {
			for _, opt := range sub.Options {
				setEntry(entries, sub.Name+"."+strings.ToLower(opt.Key), opt.Value)
			}
		}
	}
	return entries, nil
}

// setEntry records a config value. Valueless entries are skipped so the
// alias falls through to the history scan.
func setEntry(entries map[string]string, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	entries[key] = value
}

// SetGlobalConfig implements the GitClient interface. The first existing
// global config file is updated; ~/.gitconfig is created when none exists.
func (c *GoGitClient) SetGlobalConfig(_ context.Context, key, value string) error {
	section, subsection, name, err := splitConfigKey(key)
	if err != nil {
		return err
	}
	path, err := globalConfigPath()
	if err != nil {
		return err
	}

	raw := gitformat.New()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := gitformat.NewDecoder(bytes.NewReader(data)).Decode(raw); err != nil {
			return fmt.Errorf("%w: %s: %w", contract.ErrInvalidConfiguration, path, err)
		}
	case !os.IsNotExist(err):
		return err
	}
	raw.SetOption(section, subsection, name, value)

	var buf bytes.Buffer
	if err := gitformat.NewEncoder(&buf).Encode(raw); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// globalConfigPath returns the global config file git would write to.
func globalConfigPath() (string, error) {
	paths, err := config.Paths(config.GlobalScope)
	if err != nil {
		return "", err
	}
	fallback := ""
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		if fallback == "" && filepath.Base(path) == ".gitconfig" {
			fallback = path
		}
	}
	if fallback == "" {
		return "", fmt.Errorf("%w: no global git config location", contract.ErrInvalidConfiguration)
	}
	return fallback, nil
}

// splitConfigKey splits "section.key" or "section.sub.section.key".
func splitConfigKey(key string) (section, subsection, name string, err error) {
	first := strings.Index(key, ".")
	last := strings.LastIndex(key, ".")
	if first <= 0 || last == len(key)-1 {
		return "", "", "", fmt.Errorf("%w: invalid config key '%s'", contract.ErrInvalidConfiguration, key)
	}
	section = key[:first]
	name = key[last+1:]
	if first != last {
		subsection = key[first+1 : last]
	}
	return section, subsection, name, nil
}

func toSchemaCommit(c *object.Commit) schema.Commit {
	commit := schema.Commit{
		Hash:      c.Hash.String(),
		Tree:      c.TreeHash.String(),
		Author:    toSchemaSignature(c.Author),
		Committer: toSchemaSignature(c.Committer),
		Message:   c.Message,
	}
	for _, parent := range c.ParentHashes {
		commit.Parents = append(commit.Parents, parent.String())
	}
	return commit
}

func toSchemaSignature(s object.Signature) schema.Signature {
	return schema.Signature{
		Name:  s.Name,
		Email: s.Email,
		Date:  fmt.Sprintf("%d %s", s.When.Unix(), s.When.Format("-0700")),
	}
}

// toObjectSignature parses the raw "<unix seconds> <+hhmm>" date back into a time.
func toObjectSignature(s schema.Signature) (object.Signature, error) {
	when, err := parseRawDate(s.Date)
	if err != nil {
		return object.Signature{}, err
	}
	return object.Signature{Name: s.Name, Email: s.Email, When: when}, nil
}

func parseRawDate(raw string) (time.Time, error) {
	secs, tz, found := strings.Cut(strings.TrimSpace(raw), " ")
	unix, err := strconv.ParseInt(secs, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s': %w", raw, err)
	}
	if !found {
		return time.Unix(unix, 0).UTC(), nil
	}
	zone, err := time.Parse("-0700", tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone '%s': %w", tz, err)
	}
	_, offset := zone.Zone()
	return time.Unix(unix, 0).In(time.FixedZone("", offset)), nil
}
