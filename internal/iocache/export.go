package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/internal/outwriter"
	"github.com/huangsam/coauthor/internal/parquet"
	"github.com/huangsam/coauthor/schema"
	"github.com/xuri/excelize/v2"
)

// journalSheet is the worksheet name used for xlsx exports.
const journalSheet = "Journal"

// ExecuteJournalExport writes every journal entry to outputFile in the given
// format and reports a summary to log.
func ExecuteJournalExport(store contract.JournalStore, mode schema.OutputMode, outputFile string, log io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if mode == schema.TextOut {
		return fmt.Errorf("%w: export format must be csv, json, parquet or xlsx", contract.ErrInvalidConfiguration)
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get journal status: %w", err)
	}
	if status.TotalEntries == 0 {
		return errors.New("no journal entries found to export")
	}

	entries, err := store.List(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteJournalExport(file, entries, mode); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(log, "Exported %d journal entries from %s backend to: %s\n", len(entries), status.Backend, outputFile)
	return nil
}

// WriteJournalExport encodes entries to w in one of the export formats.
func WriteJournalExport(w io.Writer, entries []schema.JournalEntry, mode schema.OutputMode) error {
	switch mode {
	case schema.CSVOut, schema.JSONOut:
		return outwriter.NewOutWriter(w, false).WriteJournal(entries, mode)
	case schema.ParquetOut:
		return parquet.WriteJournal(w, parquet.ConvertJournalEntries(entries))
	case schema.XLSXOut:
		return writeJournalXLSX(w, entries)
	default:
		return fmt.Errorf("%w: unsupported export format: %s", contract.ErrInvalidConfiguration, mode)
	}
}

// writeJournalXLSX writes entries as a single worksheet workbook.
func writeJournalXLSX(w io.Writer, entries []schema.JournalEntry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", journalSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]any, len(outwriter.JournalCSVHeader))
	for i, h := range outwriter.JournalCSVHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(journalSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, entry := range entries {
		record := outwriter.JournalRecord(entry)
		row := make([]any, len(record))
		for j, v := range record {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(journalSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx workbook: %w", err)
	}
	return nil
}
