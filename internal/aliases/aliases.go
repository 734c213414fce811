// Package aliases builds the alias table from git config and YAML alias files.
package aliases

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/sirupsen/logrus"
)

// Table is the merged alias -> contact view over several sources.
type Table struct {
	entries map[string]schema.AliasEntry
}

var _ contract.AliasTable = &Table{} // Compile-time check

// NewTable merges sources ordered from lowest to highest precedence: an alias
// defined by a later source replaces the same alias from an earlier one.
func NewTable(ctx context.Context, sources []contract.AliasSource) (*Table, error) {
	log := contract.Logger()
	t := &Table{entries: make(map[string]schema.AliasEntry)}
	for _, src := range sources {
		entries, err := src.Entries(ctx)
		if err != nil {
			return nil, err
		}
		for alias, contact := range entries {
			alias = strings.ToLower(alias)
			if prev, ok := t.entries[alias]; ok {
				log.WithFields(logrus.Fields{"alias": alias, "from": prev.Scope, "to": src.Scope()}).Debug("alias overridden")
			}
			t.entries[alias] = schema.AliasEntry{Alias: alias, Contact: contact, Scope: src.Scope()}
		}
	}
	return t, nil
}

// Lookup implements contract.AliasTable.
func (t *Table) Lookup(alias string) (string, bool) {
	entry, ok := t.entries[alias]
	return entry.Contact, ok
}

// Entries returns every alias sorted by name.
func (t *Table) Entries() []schema.AliasEntry {
	keys := slices.Sorted(maps.Keys(t.entries))
	out := make([]schema.AliasEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.entries[k])
	}
	return out
}

// Sources returns the alias sources for cfg in its configured precedence.
func Sources(client contract.GitClient, cfg *contract.Config) []contract.AliasSource {
	sources := make([]contract.AliasSource, 0, len(cfg.AliasPrecedence))
	for _, scope := range cfg.AliasPrecedence {
		switch scope {
		case schema.GitScope:
			sources = append(sources, NewGitConfigSource(client, cfg.RepoPath))
		case schema.UserScope:
			if cfg.UserAliasFile != "" {
				sources = append(sources, NewFileSource(schema.UserScope, cfg.UserAliasFile))
			}
		case schema.RepoScope:
			if cfg.RepoAliasFile != "" {
				sources = append(sources, NewFileSource(schema.RepoScope, cfg.RepoAliasFile))
			}
		}
	}
	return sources
}

// Load builds the alias table for cfg.
func Load(ctx context.Context, client contract.GitClient, cfg *contract.Config) (*Table, error) {
	return NewTable(ctx, Sources(client, cfg))
}
