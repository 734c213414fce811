package core

import (
	"slices"

	"github.com/huangsam/coauthor/schema"
)

// TrailerEdit is the outcome of a trailer operation on a commit message.
type TrailerEdit struct {
	// Message is the rewritten message, always ending with one newline.
	Message string
	// Trailers is the trailer set reported back to the user.
	Trailers []string
	// Changed is false when no line was added or removed.
	Changed bool
}

// lineCount buckets a message by the number of lines it has.
type lineCount int

const (
	noLines lineCount = iota
	oneLine
	twoLines
	manyLines
)

// layoutKey is the input of the separator decision table.
type layoutKey struct {
	lines         lineCount
	lastIsTrailer bool
}

// addSeparator says whether a blank line goes between the existing message
// and newly appended trailers. Missing keys mean no separator.
var addSeparator = map[layoutKey]bool{
	{oneLine, false}:   true,
	{oneLine, true}:    true,
	{manyLines, false}: true,
}

func classify(lines []string) layoutKey {
	key := layoutKey{}
	switch n := len(lines); {
	case n == 0:
		key.lines = noLines
	case n == 1:
		key.lines = oneLine
	case n == 2:
		key.lines = twoLines
	default:
		key.lines = manyLines
	}
	if len(lines) > 0 {
		key.lastIsTrailer = schema.IsTrailer(lines[len(lines)-1])
	}
	return key
}

// ListTrailers returns every trailer line of a message in order.
func ListTrailers(message string) []string {
	return trailersOf(schema.MessageLines(message))
}

func trailersOf(lines []string) []string {
	trailers := []string{}
	for _, line := range lines {
		if schema.IsTrailer(line) {
			trailers = append(trailers, line)
		}
	}
	return trailers
}

// AddTrailers appends the lines that are not already present verbatim. Two
// aliases resolving to the same contact add it once. The reported trailers are
// the existing ones followed by the newly added ones.
func AddTrailers(message string, lines []string) TrailerEdit {
	msgLines := schema.MessageLines(message)
	existing := trailersOf(msgLines)

	var added []string
	for _, line := range lines {
		if slices.Contains(existing, line) || slices.Contains(added, line) {
			continue
		}
		added = append(added, line)
	}

	out := slices.Clone(msgLines)
	if len(added) > 0 && addSeparator[classify(msgLines)] {
		out = append(out, "")
	}
	out = append(out, added...)

	return TrailerEdit{
		Message:  schema.JoinMessage(out),
		Trailers: append(existing, added...),
		Changed:  len(added) > 0,
	}
}

// DeleteTrailers removes lines exactly matching one of the given trailers.
// Lines that are not present are ignored.
func DeleteTrailers(message string, lines []string) TrailerEdit {
	return deleteWhere(message, func(line string) bool {
		return slices.Contains(lines, line)
	})
}

// DeleteAllTrailers removes every trailer line.
func DeleteAllTrailers(message string) TrailerEdit {
	return deleteWhere(message, schema.IsTrailer)
}

func deleteWhere(message string, drop func(string) bool) TrailerEdit {
	lines := schema.MessageLines(message)
	before := len(lines)
	kept := slices.DeleteFunc(lines, drop)
	return TrailerEdit{
		Message:  schema.JoinMessage(kept),
		Trailers: trailersOf(kept),
		Changed:  len(kept) != before,
	}
}
