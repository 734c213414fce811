package outwriter

import (
	"github.com/huangsam/coauthor/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteAliases prints the merged alias table in the requested format.
func (ow *OutWriter) WriteAliases(entries []schema.AliasEntry, mode schema.OutputMode) error {
	switch mode {
	case schema.JSONOut:
		if entries == nil {
			entries = []schema.AliasEntry{}
		}
		return writeJSON(ow.w, entries)
	case schema.CSVOut:
		return writeCSVWithHeader(ow.w, []string{"alias", "contact", "scope"}, func(w csvRowWriter) error {
			for _, e := range entries {
				if err := w.Write([]string{e.Alias, e.Contact, string(e.Scope)}); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return ow.writeAliasTable(entries)
	}
}

// writeAliasTable renders aliases as a human-readable table.
func (ow *OutWriter) writeAliasTable(entries []schema.AliasEntry) error {
	table := tablewriter.NewWriter(ow.w)
	table.Header([]string{"Alias", "Contact", "Scope"})

	alias := ow.sprint(AliasColor)
	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		data = append(data, []string{alias(e.Alias), e.Contact, string(e.Scope)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
