package contract

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors that can be used with errors.Is() for error type checking.
var (
	// ErrRepoNotFound indicates the path is not inside a git repository.
	ErrRepoNotFound = errors.New("failed to find repository")

	// ErrHeadNotFound indicates HEAD does not resolve to a commit.
	ErrHeadNotFound = errors.New("failed to find commit")

	// ErrMessageUnreadable indicates the commit message is absent or not text.
	ErrMessageUnreadable = errors.New("failed to read commit message")

	// ErrAliasTableUnreadable indicates an alias source could not be read.
	ErrAliasTableUnreadable = errors.New("failed to read coauthor configuration")

	// ErrAliasNotFound indicates one or more aliases could not be resolved.
	ErrAliasNotFound = errors.New("coauthor not found")

	// ErrRewriteFailed indicates the amended commit could not be written.
	ErrRewriteFailed = errors.New("failed to amend commit")

	// ErrInvalidConfiguration indicates an invalid or conflicting user configuration.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// AliasNotFoundError names every alias that neither the alias table nor
// history could resolve.
type AliasNotFoundError struct {
	Aliases []string
}

// Error implements the error interface.
func (e *AliasNotFoundError) Error() string {
	if len(e.Aliases) == 1 {
		return "coauthor not found: " + e.Aliases[0]
	}
	return "coauthors not found: " + strings.Join(e.Aliases, ", ")
}

// Unwrap lets errors.Is match ErrAliasNotFound.
func (e *AliasNotFoundError) Unwrap() error {
	return ErrAliasNotFound
}

// GitError represents an error that occurred during a git invocation.
// It captures the command details, underlying error, and command output.
type GitError struct {
	Operation string
	Args      []string
	Output    string
	Err       error
}

// Error implements the error interface with a detailed, user-friendly error message.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *GitError) Unwrap() error {
	return e.Err
}
