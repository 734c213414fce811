package core

import (
	"context"
	"slices"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/sirupsen/logrus"
)

// HistoryScanner resolves aliases by walking commit history newest first and
// matching each commit's author and existing trailer lines.
type HistoryScanner struct {
	client   contract.GitClient
	repoPath string
}

// NewHistoryScanner creates a scanner over the repository at repoPath.
func NewHistoryScanner(client contract.GitClient, repoPath string) *HistoryScanner {
	return &HistoryScanner{client: client, repoPath: repoPath}
}

// Scan resolves as many of the remaining aliases as history allows. Resolved
// aliases are removed from remaining and their trailer lines added to
// resolved. The walk ends as soon as nothing remains.
func (s *HistoryScanner) Scan(ctx context.Context, remaining []string, resolved map[string]string) ([]string, error) {
	if len(remaining) == 0 {
		return remaining, nil
	}
	log := contract.Logger()
	visited := 0
	err := s.client.WalkHistory(ctx, s.repoPath, func(commit schema.Commit) (bool, error) {
		visited++
		remaining = resolveFromCommit(commit, remaining, resolved)
		return len(remaining) > 0, nil
	})
	log.WithFields(logrus.Fields{"visited": visited, "unresolved": len(remaining)}).Debug("history scan finished")
	return remaining, err
}

// resolveFromCommit applies one commit to the remaining aliases: first its
// author, then each trailer line in message order.
func resolveFromCommit(commit schema.Commit, remaining []string, resolved map[string]string) []string {
	if profile, ok := NewContactProfile(commit.Author.Name, commit.Author.Email); ok {
		line := schema.FormatTrailer(schema.FormatContact(commit.Author.Name, commit.Author.Email))
		remaining = claim(profile, line, commit.Hash, remaining, resolved)
	}
	for _, line := range schema.MessageLines(commit.Message) {
		if len(remaining) == 0 {
			break
		}
		if !schema.IsTrailer(line) {
			continue
		}
		name, email, ok := ParseTrailerContact(line)
		if !ok {
			continue
		}
		profile, ok := NewContactProfile(name, email)
		if !ok {
			continue
		}
		remaining = claim(profile, line, commit.Hash, remaining, resolved)
	}
	return remaining
}

// claim resolves every remaining alias the profile matches to line.
func claim(profile ContactProfile, line, hash string, remaining []string, resolved map[string]string) []string {
	return slices.DeleteFunc(remaining, func(alias string) bool {
		if !profile.Matches(alias) {
			return false
		}
		resolved[alias] = line
		contract.Logger().WithFields(logrus.Fields{"alias": alias, "commit": hash}).Debug("alias resolved from history")
		return true
	})
}
