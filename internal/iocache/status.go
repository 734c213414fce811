package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/coauthor/schema"
)

// PrintJournalStatus prints journal status information.
func PrintJournalStatus(w io.Writer, status schema.JournalStatus) {
	_, _ = fmt.Fprintf(w, "Journal Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Local().Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Local().Format("2006-01-02 15:04:05"))
	}
}
