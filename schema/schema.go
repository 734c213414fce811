// Package schema has the plain data types shared across coauthor packages.
package schema

import (
	"strings"
	"time"
)

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	// Date is kept in git's raw form ("<unix seconds> <tz offset>") so an
	// amended commit reproduces it byte for byte.
	Date string
}

// Commit is the subset of a commit object that coauthor reads and rewrites.
type Commit struct {
	Hash      string
	Tree      string
	Parents   []string
	Author    Signature
	Committer Signature
	Message   string
}

// MessageLines splits a commit message into lines. A single trailing newline
// does not produce an empty final line and carriage returns are dropped.
func MessageLines(message string) []string {
	if message == "" {
		return []string{}
	}
	message = strings.TrimSuffix(message, "\n")
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// JoinMessage joins lines back into a message ending with one newline.
func JoinMessage(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// IsTrailer reports whether a message line is a coauthor trailer.
func IsTrailer(line string) bool {
	return strings.HasPrefix(line, TrailerPrefix)
}

// FormatTrailer builds a trailer line from a contact of the form "Name <email>".
func FormatTrailer(contact string) string {
	return TrailerPrefix + contact
}

// FormatContact builds a "Name <email>" contact string.
func FormatContact(name, email string) string {
	return name + " <" + email + ">"
}

// AliasEntry is one alias and the contact it resolves to.
type AliasEntry struct {
	Alias   string     `json:"alias"`
	Contact string     `json:"contact"`
	Scope   AliasScope `json:"scope"`
}

// JournalEntry records one rewrite of the current commit.
type JournalEntry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	RepoPath string    `json:"repo_path"`
	Action   Action    `json:"action"`
	OldHash  string    `json:"old_hash"`
	NewHash  string    `json:"new_hash"`
	Trailers []string  `json:"trailers"`
}

// JournalStatus represents the status of the journal store.
type JournalStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
}

// EditResult is what a list, add or delete reports back to the caller.
type EditResult struct {
	// Trailers is the resulting trailer set of the current commit.
	Trailers []string `json:"trailers"`
	// OldHash and NewHash are equal when the commit was left untouched.
	OldHash string `json:"old_hash"`
	NewHash string `json:"new_hash"`
}

// Amended reports whether the edit rewrote the commit.
func (r EditResult) Amended() bool {
	return r.OldHash != r.NewHash
}
