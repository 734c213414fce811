// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/coauthor/schema"
	"golang.org/x/term"
)

// Color variables for console output.
var (
	ContactColor = color.New(color.FgCyan)             // ContactColor highlights the person on a trailer line.
	AliasColor   = color.New(color.FgGreen, color.Bold) // AliasColor highlights alias names in tables.
	AddColor     = color.New(color.FgGreen)             // AddColor marks add actions in the journal.
	DeleteColor  = color.New(color.FgRed)               // DeleteColor marks delete actions in the journal.
)

// ColorEnabled reports whether colored output should be used: the user asked
// for it and stdout is a terminal.
func ColorEnabled(useColors bool) bool {
	return useColors && term.IsTerminal(int(os.Stdout.Fd()))
}

// OutWriter renders coauthor results for humans and machines.
type OutWriter struct {
	w         io.Writer
	useColors bool
}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter(w io.Writer, useColors bool) *OutWriter {
	return &OutWriter{w: w, useColors: useColors}
}

// sprint returns a color aware formatter, or fmt.Sprint when colors are off.
func (ow *OutWriter) sprint(c *color.Color) func(...any) string {
	if !ow.useColors {
		return fmt.Sprint
	}
	return c.SprintFunc()
}

// WriteTrailers prints each trailer on its own line, or NoCoauthors when
// there are none.
func (ow *OutWriter) WriteTrailers(trailers []string) error {
	if len(trailers) == 0 {
		_, err := fmt.Fprintln(ow.w, schema.NoCoauthors)
		return err
	}
	contact := ow.sprint(ContactColor)
	for _, line := range trailers {
		rest, ok := strings.CutPrefix(line, schema.TrailerPrefix)
		if ok {
			line = schema.TrailerPrefix + contact(rest)
		}
		if _, err := fmt.Fprintln(ow.w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult prints the trailer set of an edit in the requested format.
func (ow *OutWriter) WriteResult(result schema.EditResult, mode schema.OutputMode) error {
	switch mode {
	case schema.JSONOut:
		if result.Trailers == nil {
			result.Trailers = []string{}
		}
		return writeJSON(ow.w, result)
	case schema.CSVOut:
		return writeCSVWithHeader(ow.w, []string{"trailer"}, func(w csvRowWriter) error {
			for _, line := range result.Trailers {
				if err := w.Write([]string{line}); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return ow.WriteTrailers(result.Trailers)
	}
}
