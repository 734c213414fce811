package contract

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/huangsam/coauthor/schema"
)

// historyFormat is one log record: hash, author name, author email, raw body,
// separated by the ASCII unit separator. Records are NUL terminated via -z.
const historyFormat = "%H%x1f%an%x1f%ae%x1f%B"

// historyMaxRecordSize bounds a single log record; it prevents bufio.Scanner
// from failing on unusually long commit messages.
const historyMaxRecordSize = 10 * 1024 * 1024 // 10MB

// amendReflogMessage is written to the reflog when the branch is moved.
const amendReflogMessage = "coauthor: amend"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command inside repoPath and returns its stdout.
// An empty repoPath runs git in the current working directory.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	return c.run(ctx, repoPath, nil, nil, args...)
}

func (c *LocalGitClient) run(ctx context.Context, repoPath string, stdin io.Reader, env []string, args ...string) ([]byte, error) {
	fullArgs := args
	if repoPath != "" {
		fullArgs = append([]string{"-C", repoPath}, args...)
	}
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	cmd.Stdin = stdin
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.Output()
	if err != nil {
		gitErr := &GitError{Operation: args[0], Args: args, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			gitErr.Output = strings.TrimSpace(string(exitErr.Stderr))
		}
		return out, gitErr
	}
	return out, nil
}

// RepoRoot implements the GitClient interface.
func (c *LocalGitClient) RepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRepoNotFound, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HeadCommit implements the GitClient interface.
func (c *LocalGitClient) HeadCommit(ctx context.Context, repoPath string) (schema.Commit, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", "HEAD^{commit}")
	if err != nil {
		return schema.Commit{}, fmt.Errorf("%w: %w", ErrHeadNotFound, err)
	}
	hash := strings.TrimSpace(string(out))
	raw, err := c.Run(ctx, repoPath, "cat-file", "commit", hash)
	if err != nil {
		return schema.Commit{}, fmt.Errorf("%w: %w", ErrHeadNotFound, err)
	}
	return ParseRawCommit(hash, string(raw))
}

// WalkHistory implements the GitClient interface. The log is streamed so
// that an early stop never reads more history than needed.
func (c *LocalGitClient) WalkHistory(ctx context.Context, repoPath string, fn func(schema.Commit) (bool, error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	args := []string{"log", "-z", "--date-order", "--format=" + historyFormat, "HEAD"}
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoPath}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return &GitError{Operation: "log", Args: args, Err: err}
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), historyMaxRecordSize)
	scanner.Split(scanNUL)

	stopped := false
	var walkErr error
	for scanner.Scan() {
		commit, ok := parseHistoryRecord(scanner.Text())
		if !ok {
			continue
		}
		more, err := fn(commit)
		if err != nil {
			walkErr = err
		}
		if err != nil || !more {
			stopped = true
			break
		}
	}
	if !stopped {
		if err := scanner.Err(); err != nil {
			walkErr = err
			stopped = true
		}
	}
	if stopped {
		// The remaining output is not needed; stop git instead of draining it.
		cancel()
	}
	waitErr := cmd.Wait()
	if walkErr != nil {
		return walkErr
	}
	if !stopped && waitErr != nil {
		return &GitError{Operation: "log", Args: args, Output: strings.TrimSpace(stderr.String()), Err: waitErr}
	}
	return nil
}

// AmendHead implements the GitClient interface using commit-tree and a
// compare-and-swap update-ref, so a concurrent move of the branch fails
// instead of being overwritten.
func (c *LocalGitClient) AmendHead(ctx context.Context, repoPath string, head schema.Commit, message string) (string, error) {
	args := []string{"commit-tree", head.Tree}
	for _, parent := range head.Parents {
		args = append(args, "-p", parent)
	}
	env := []string{
		"GIT_AUTHOR_NAME=" + head.Author.Name,
		"GIT_AUTHOR_EMAIL=" + head.Author.Email,
		"GIT_AUTHOR_DATE=" + head.Author.Date,
		"GIT_COMMITTER_NAME=" + head.Committer.Name,
		"GIT_COMMITTER_EMAIL=" + head.Committer.Email,
		"GIT_COMMITTER_DATE=" + head.Committer.Date,
	}
	out, err := c.run(ctx, repoPath, strings.NewReader(message), env, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRewriteFailed, err)
	}
	newHash := strings.TrimSpace(string(out))

	if _, err := c.Run(ctx, repoPath, "update-ref", "-m", amendReflogMessage, "HEAD", newHash, head.Hash); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRewriteFailed, err)
	}
	return newHash, nil
}

// ConfigEntries implements the GitClient interface.
func (c *LocalGitClient) ConfigEntries(ctx context.Context, repoPath string, section string) (map[string]string, error) {
	prefix := section + "."
	out, err := c.Run(ctx, repoPath, "config", "--null", "--get-regexp", "^"+strings.ReplaceAll(prefix, ".", `\.`))
	entries := make(map[string]string)
	if err != nil {
		// git config exits with 1 when nothing matches.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return entries, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrAliasTableUnreadable, err)
	}
	for _, record := range strings.Split(string(out), "\x00") {
		if record == "" {
			continue
		}
		// Valueless entries ("[coauthor] foo") carry no newline.
		key, value, found := strings.Cut(record, "\n")
		if !found || strings.TrimSpace(value) == "" {
			continue
		}
		key, ok := strings.CutPrefix(key, prefix)
		if !ok || key == "" {
			continue
		}
		entries[key] = value
	}
	return entries, nil
}

// SetGlobalConfig implements the GitClient interface.
func (c *LocalGitClient) SetGlobalConfig(ctx context.Context, key, value string) error {
	_, err := c.Run(ctx, "", "config", "--global", key, value)
	return err
}

// ParseRawCommit parses the output of "git cat-file commit". Header lines
// other than tree, parent, author and committer (gpgsig, mergetag, encoding)
// are not carried over.
func ParseRawCommit(hash, raw string) (schema.Commit, error) {
	commit := schema.Commit{Hash: hash}
	header, message, found := strings.Cut(raw, "\n\n")
	if !found {
		return commit, ErrMessageUnreadable
	}
	commit.Message = message
	for _, line := range strings.Split(header, "\n") {
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "tree":
			commit.Tree = value
		case "parent":
			commit.Parents = append(commit.Parents, value)
		case "author":
			commit.Author = parseRawSignature(value)
		case "committer":
			commit.Committer = parseRawSignature(value)
		}
	}
	if commit.Tree == "" {
		return commit, fmt.Errorf("%w: commit %s has no tree", ErrHeadNotFound, hash)
	}
	return commit, nil
}

// parseRawSignature parses "Name <email> <unix seconds> <tz>".
func parseRawSignature(value string) schema.Signature {
	lt := strings.Index(value, "<")
	if lt < 0 {
		return schema.Signature{Name: strings.TrimSpace(value)}
	}
	gt := strings.Index(value[lt:], ">")
	if gt < 0 {
		return schema.Signature{Name: strings.TrimSpace(value[:lt])}
	}
	return schema.Signature{
		Name:  strings.TrimSpace(value[:lt]),
		Email: value[lt+1 : lt+gt],
		Date:  strings.TrimSpace(value[lt+gt+1:]),
	}
}

// parseHistoryRecord parses one historyFormat record.
func parseHistoryRecord(record string) (schema.Commit, bool) {
	record = strings.TrimLeft(record, "\n")
	fields := strings.SplitN(record, "\x1f", 4)
	if len(fields) != 4 {
		return schema.Commit{}, false
	}
	return schema.Commit{
		Hash:    fields[0],
		Author:  schema.Signature{Name: fields[1], Email: fields[2]},
		Message: fields[3],
	}, true
}

// scanNUL is a bufio.SplitFunc for NUL terminated records.
func scanNUL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
