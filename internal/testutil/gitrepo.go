// Package testutil has helpers for tests that need a real git repository.
package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// baseCommitTime keeps commit dates deterministic and strictly increasing.
const baseCommitTime = 1700000000

// Repo is a throwaway git repository rooted in a test temp dir.
type Repo struct {
	Dir     string
	commits int
}

// SkipIfGitNotAvailable skips the test if git binary is not found in PATH.
func SkipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// InitRepo creates an empty repository and isolates the test from the
// user's global and system git configuration.
func InitRepo(t *testing.T) *Repo {
	t.Helper()
	SkipIfGitNotAvailable(t)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	r := &Repo{Dir: t.TempDir()}
	r.Git(t, "init", "--quiet", "--initial-branch=main")
	r.Git(t, "config", "user.name", "Test User")
	r.Git(t, "config", "user.email", "test@example.com")
	return r
}

// Git runs a git command in the repository and returns its trimmed output.
func (r *Repo) Git(t *testing.T, args ...string) string {
	t.Helper()
	return r.gitEnv(t, nil, args...)
}

func (r *Repo) gitEnv(t *testing.T, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", r.Dir}, args...)...)
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// Commit creates an empty commit with the given author and verbatim message
// and returns its hash. Each commit is one minute newer than the previous.
func (r *Repo) Commit(t *testing.T, name, email, message string) string {
	t.Helper()
	r.commits++
	date := fmt.Sprintf("%d +0000", baseCommitTime+60*r.commits)
	env := []string{
		"GIT_AUTHOR_NAME=" + name,
		"GIT_AUTHOR_EMAIL=" + email,
		"GIT_AUTHOR_DATE=" + date,
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_COMMITTER_DATE=" + date,
	}
	r.gitEnv(t, env, "commit", "--quiet", "--allow-empty", "--no-verify", "--cleanup=verbatim", "-m", message)
	return r.Head(t)
}

// Head returns the current HEAD hash.
func (r *Repo) Head(t *testing.T) string {
	t.Helper()
	return r.Git(t, "rev-parse", "HEAD")
}

// Message returns the raw message of HEAD.
func (r *Repo) Message(t *testing.T) string {
	t.Helper()
	cmd := exec.Command("git", "-C", r.Dir, "cat-file", "commit", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git cat-file failed: %v", err)
	}
	_, message, _ := strings.Cut(string(out), "\n\n")
	return message
}

// AppendConfig appends raw text to the repository's .git/config, for entries
// the git config command cannot write, such as keys without a value.
func (r *Repo) AppendConfig(t *testing.T, text string) {
	t.Helper()
	f, err := os.OpenFile(filepath.Join(r.Dir, ".git", "config"), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open git config failed: %v", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(text); err != nil {
		t.Fatalf("append git config failed: %v", err)
	}
}
