package outwriter

import (
	"strings"
	"time"

	"github.com/huangsam/coauthor/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// JournalCSVHeader is the column order of CSV journal output.
var JournalCSVHeader = []string{"id", "time", "repo_path", "action", "old_hash", "new_hash", "trailers"}

// shortHashLen is how many hash characters the journal table shows.
const shortHashLen = 10

// WriteJournal prints journal entries in the requested format.
func (ow *OutWriter) WriteJournal(entries []schema.JournalEntry, mode schema.OutputMode) error {
	switch mode {
	case schema.JSONOut:
		if entries == nil {
			entries = []schema.JournalEntry{}
		}
		return writeJSON(ow.w, entries)
	case schema.CSVOut:
		return writeCSVWithHeader(ow.w, JournalCSVHeader, func(w csvRowWriter) error {
			for _, e := range entries {
				if err := w.Write(JournalRecord(e)); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return ow.writeJournalTable(entries)
	}
}

// JournalRecord flattens an entry into the JournalCSVHeader column order.
// Trailers are joined with newlines.
func JournalRecord(e schema.JournalEntry) []string {
	return []string{
		e.ID,
		e.Time.UTC().Format(time.RFC3339),
		e.RepoPath,
		string(e.Action),
		e.OldHash,
		e.NewHash,
		strings.Join(e.Trailers, "\n"),
	}
}

// writeJournalTable renders entries as a human-readable table.
func (ow *OutWriter) writeJournalTable(entries []schema.JournalEntry) error {
	table := tablewriter.NewWriter(ow.w)
	table.Header([]string{"Time", "Action", "Old", "New", "Coauthors", "Repository"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	add := ow.sprint(AddColor)
	del := ow.sprint(DeleteColor)
	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		action := string(e.Action)
		switch e.Action {
		case schema.AddAction:
			action = add(action)
		case schema.DeleteAction:
			action = del(action)
		}
		data = append(data, []string{
			e.Time.Local().Format("2006-01-02 15:04:05"),
			action,
			shortHash(e.OldHash),
			shortHash(e.NewHash),
			formatCoauthors(e.Trailers),
			e.RepoPath,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// formatCoauthors shows the contacts of a trailer set on one line.
func formatCoauthors(trailers []string) string {
	if len(trailers) == 0 {
		return schema.NoCoauthors
	}
	contacts := make([]string, len(trailers))
	for i, line := range trailers {
		contacts[i] = strings.TrimPrefix(line, schema.TrailerPrefix)
	}
	return strings.Join(contacts, ", ")
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
