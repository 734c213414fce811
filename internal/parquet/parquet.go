// Package parquet provides data structures and functions for exporting the
// coauthor amend journal to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/coauthor/schema"
	"github.com/parquet-go/parquet-go"
)

// JournalRow represents one recorded rewrite of a commit.
// This struct maps to the coauthor_journal database table.
type JournalRow struct {
	// EntryID is the UUID of the journal entry
	EntryID string `parquet:"entry_id,snappy"`

	// RecordedAt is when the rewrite happened (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// RepoPath is the repository root the rewrite happened in
	RepoPath string `parquet:"repo_path,snappy"`

	// Action is add or delete
	Action string `parquet:"action,snappy"`

	// OldHash is the commit that was replaced
	OldHash string `parquet:"old_hash,snappy"`

	// NewHash is the commit that replaced it
	NewHash string `parquet:"new_hash,snappy"`

	// Trailers is the trailer set after the rewrite
	Trailers []string `parquet:"trailers"`
}

// ConvertJournalEntries converts schema.JournalEntry values to JournalRow for Parquet export.
func ConvertJournalEntries(entries []schema.JournalEntry) []JournalRow {
	result := make([]JournalRow, len(entries))
	for i, entry := range entries {
		result[i] = JournalRow{
			EntryID:    entry.ID,
			RecordedAt: entry.Time,
			RepoPath:   entry.RepoPath,
			Action:     string(entry.Action),
			OldHash:    entry.OldHash,
			NewHash:    entry.NewHash,
			Trailers:   entry.Trailers,
		}
	}
	return result
}

// WriteJournal writes journal rows to w as a single Parquet file.
func WriteJournal(w io.Writer, data []JournalRow) error {
	// The schema is derived from the JournalRow struct tags
	writer := parquet.NewGenericWriter[JournalRow](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteJournalParquet writes journal rows to a Parquet file at outputPath.
func WriteJournalParquet(data []JournalRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteJournal(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
