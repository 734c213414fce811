// Package contract provides interfaces and shared utilities for coauthor's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/coauthor/schema"
)

// GitClient defines the repository operations coauthor needs.
// This allows the resolution and editing logic to be tested without a real repository.
type GitClient interface {
	// --- Repository / Reference Resolution ---

	// RepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	RepoRoot(ctx context.Context, contextPath string) (string, error)

	// HeadCommit returns the commit the current branch points at.
	HeadCommit(ctx context.Context, repoPath string) (schema.Commit, error)

	// --- History ---

	// WalkHistory visits commits reachable from HEAD, newest first. The walk
	// stops as soon as fn returns false or an error.
	WalkHistory(ctx context.Context, repoPath string, fn func(schema.Commit) (bool, error)) error

	// --- Mutation ---

	// AmendHead writes a copy of head with a new message, keeping tree, parents
	// and identities, and moves the current branch to it. It returns the new hash.
	AmendHead(ctx context.Context, repoPath string, head schema.Commit, message string) (string, error)

	// --- Configuration ---

	// ConfigEntries returns the merged git config entries of a section, keyed by
	// the part after "<section>.".
	ConfigEntries(ctx context.Context, repoPath string, section string) (map[string]string, error)

	// SetGlobalConfig sets a key in the user-level git configuration.
	SetGlobalConfig(ctx context.Context, key, value string) error
}

// AliasSource is one backing store of alias -> contact entries.
type AliasSource interface {
	// Scope names the source for precedence and display.
	Scope() schema.AliasScope

	// Entries returns every alias defined by this source. A missing backing
	// file or section is an empty map, not an error.
	Entries(ctx context.Context) (map[string]string, error)
}

// AliasTable resolves an alias to a contact string ("Name <email>").
// Keys are matched exactly; callers normalize case before lookup.
type AliasTable interface {
	Lookup(alias string) (string, bool)
}

// JournalStore defines the interface for recording commit rewrites.
type JournalStore interface {
	// Record stores one rewrite.
	Record(entry schema.JournalEntry) error

	// List returns the most recent entries first, at most limit (0 = all).
	List(limit int) ([]schema.JournalEntry, error)

	// GetStatus returns status information about the journal store.
	GetStatus() (schema.JournalStatus, error)

	// Close closes the underlying connection.
	Close() error
}
