// Package core has the alias resolution and trailer editing logic of coauthor.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/sirupsen/logrus"
)

// ErrNoAliases is returned when add is called without aliases.
var ErrNoAliases = errors.New("no coauthors given")

// Editor lists, adds and deletes coauthor trailers on the current commit.
type Editor struct {
	client   contract.GitClient
	resolver *Resolver
	journal  contract.JournalStore
	repoPath string
}

// NewEditor wires an editor for one repository. journal may be nil.
func NewEditor(client contract.GitClient, table contract.AliasTable, journal contract.JournalStore, repoPath string) *Editor {
	return &Editor{
		client:   client,
		resolver: NewResolver(table, NewHistoryScanner(client, repoPath)),
		journal:  journal,
		repoPath: repoPath,
	}
}

// List returns the trailers of the current commit.
func (e *Editor) List(ctx context.Context) (schema.EditResult, error) {
	head, err := e.readHead(ctx)
	if err != nil {
		return schema.EditResult{}, err
	}
	return schema.EditResult{
		Trailers: ListTrailers(head.Message),
		OldHash:  head.Hash,
		NewHash:  head.Hash,
	}, nil
}

// Add resolves aliases and appends the missing trailers to the current commit.
func (e *Editor) Add(ctx context.Context, aliases []string) (schema.EditResult, error) {
	if len(aliases) == 0 {
		return schema.EditResult{}, ErrNoAliases
	}
	head, err := e.readHead(ctx)
	if err != nil {
		return schema.EditResult{}, err
	}
	lines, err := e.resolver.Resolve(ctx, aliases)
	if err != nil {
		return schema.EditResult{}, err
	}
	return e.apply(ctx, head, schema.AddAction, AddTrailers(head.Message, lines))
}

// Delete removes the trailers of the given aliases from the current commit,
// or every trailer when no alias is given.
func (e *Editor) Delete(ctx context.Context, aliases []string) (schema.EditResult, error) {
	head, err := e.readHead(ctx)
	if err != nil {
		return schema.EditResult{}, err
	}
	if len(aliases) == 0 {
		return e.apply(ctx, head, schema.DeleteAction, DeleteAllTrailers(head.Message))
	}
	lines, err := e.resolver.Resolve(ctx, aliases)
	if err != nil {
		return schema.EditResult{}, err
	}
	return e.apply(ctx, head, schema.DeleteAction, DeleteTrailers(head.Message, lines))
}

// readHead loads the current commit and rejects messages that are not text.
func (e *Editor) readHead(ctx context.Context) (schema.Commit, error) {
	head, err := e.client.HeadCommit(ctx, e.repoPath)
	if err != nil {
		return schema.Commit{}, err
	}
	if !utf8.ValidString(head.Message) {
		return schema.Commit{}, fmt.Errorf("%w: commit %s is not valid UTF-8", contract.ErrMessageUnreadable, head.Hash)
	}
	return head, nil
}

// apply rewrites the commit when the edit changed the message and records
// the rewrite in the journal.
func (e *Editor) apply(ctx context.Context, head schema.Commit, action schema.Action, edit TrailerEdit) (schema.EditResult, error) {
	result := schema.EditResult{Trailers: edit.Trailers, OldHash: head.Hash, NewHash: head.Hash}
	if !edit.Changed {
		return result, nil
	}

	newHash, err := e.client.AmendHead(ctx, e.repoPath, head, edit.Message)
	if err != nil {
		return schema.EditResult{}, err
	}
	result.NewHash = newHash
	contract.Logger().WithFields(logrus.Fields{
		"action": action,
		"old":    head.Hash,
		"new":    newHash,
	}).Debug("commit amended")

	if e.journal != nil {
		entry := schema.JournalEntry{
			ID:       uuid.NewString(),
			Time:     time.Now().UTC(),
			RepoPath: e.repoPath,
			Action:   action,
			OldHash:  head.Hash,
			NewHash:  newHash,
			Trailers: edit.Trailers,
		}
		if err := e.journal.Record(entry); err != nil {
			contract.LogWarn("failed to record amend in journal", err)
		}
	}
	return result, nil
}
