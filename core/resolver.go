package core

import (
	"context"
	"slices"
	"strings"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/sirupsen/logrus"
)

// Resolver turns user supplied aliases into trailer lines, consulting the
// alias table first and commit history for whatever is left.
type Resolver struct {
	table   contract.AliasTable
	scanner *HistoryScanner
}

// NewResolver creates a resolver. A nil scanner disables the history fallback.
func NewResolver(table contract.AliasTable, scanner *HistoryScanner) *Resolver {
	return &Resolver{table: table, scanner: scanner}
}

// NormalizeAliases lowercases aliases and drops duplicates, keeping the
// first occurrence order.
func NormalizeAliases(aliases []string) []string {
	seen := make(map[string]struct{}, len(aliases))
	normalized := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		alias = strings.ToLower(alias)
		if _, ok := seen[alias]; ok {
			continue
		}
		seen[alias] = struct{}{}
		normalized = append(normalized, alias)
	}
	return normalized
}

// Resolve returns one trailer line per distinct alias, in alias order. It
// either resolves every alias or fails with an *contract.AliasNotFoundError
// naming all of the unresolved ones.
func (r *Resolver) Resolve(ctx context.Context, aliases []string) ([]string, error) {
	log := contract.Logger()
	ordered := NormalizeAliases(aliases)
	resolved := make(map[string]string, len(ordered))

	var remaining []string
	for _, alias := range ordered {
		if contact, ok := r.table.Lookup(alias); ok {
			resolved[alias] = schema.FormatTrailer(contact)
			log.WithField("alias", alias).Debug("alias resolved from alias table")
			continue
		}
		remaining = append(remaining, alias)
	}

	if len(remaining) > 0 && r.scanner != nil {
		var err error
		remaining, err = r.scanner.Scan(ctx, slices.Clone(remaining), resolved)
		if err != nil {
			return nil, err
		}
	}

	if len(remaining) > 0 {
		log.WithFields(logrus.Fields{"aliases": remaining}).Debug("aliases unresolved")
		return nil, &contract.AliasNotFoundError{Aliases: remaining}
	}

	lines := make([]string, 0, len(ordered))
	for _, alias := range ordered {
		lines = append(lines, resolved[alias])
	}
	return lines, nil
}
