package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// csvRowWriter is the subset of *csv.Writer used by row callbacks.
type csvRowWriter interface {
	Write(record []string) error
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(csvRowWriter) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
