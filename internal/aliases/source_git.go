package aliases

import (
	"context"
	"fmt"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
)

// GitConfigSource reads aliases from the coauthor.<alias> git config entries
// visible from a repository.
type GitConfigSource struct {
	client   contract.GitClient
	repoPath string
}

var _ contract.AliasSource = &GitConfigSource{} // Compile-time check

// NewGitConfigSource creates a source over the git configuration of repoPath.
func NewGitConfigSource(client contract.GitClient, repoPath string) *GitConfigSource {
	return &GitConfigSource{client: client, repoPath: repoPath}
}

// Scope implements contract.AliasSource.
func (s *GitConfigSource) Scope() schema.AliasScope {
	return schema.GitScope
}

// Entries implements contract.AliasSource.
func (s *GitConfigSource) Entries(ctx context.Context) (map[string]string, error) {
	entries, err := s.client.ConfigEntries(ctx, s.repoPath, schema.AliasSection)
	if err != nil {
		return nil, fmt.Errorf("%w: git config: %w", contract.ErrAliasTableUnreadable, err)
	}
	return entries, nil
}
