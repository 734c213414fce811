// Package gitclient selects the git backend coauthor talks to.
package gitclient

import (
	"fmt"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
)

// GitClient is the repository interface every backend implements.
type GitClient = contract.GitClient

// New returns the client for a backend. An empty backend means exec.
func New(backend schema.GitBackend) (GitClient, error) {
	switch backend {
	case schema.ExecGit, "":
		return contract.NewLocalGitClient(), nil
	case schema.GoGitGit:
		return NewGoGitClient(), nil
	default:
		return nil, fmt.Errorf("%w: unknown git backend '%s'", contract.ErrInvalidConfiguration, backend)
	}
}
