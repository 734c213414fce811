package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LogFatal prints a one-line diagnostic to stderr and exits the program.
func LogFatal(msg string, err error) {
	if msg == "" {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	}
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "warning: %s: %v\n", msg, err)
}

// GetJournalDBFilePath returns the path to the SQLite DB file for the amend journal.
func GetJournalDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".git-coauthor.db"
	}
	return filepath.Join(homeDir, ".git-coauthor.db")
}

// SelectOutputFile returns the file handle for output. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
