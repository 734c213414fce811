package aliases

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned for a malformed "alias: Name <email>" argument.
var ErrInvalidConfig = errors.New("invalid config")

// contactPattern accepts "Name <local@domain>".
var contactPattern = regexp.MustCompile(`^[^<>]+ <[^<>\s@]+@[^<>\s@]+>$`)

// FileSource reads aliases from a flat YAML map of alias to contact.
type FileSource struct {
	scope schema.AliasScope
	path  string
}

var _ contract.AliasSource = &FileSource{} // Compile-time check

// NewFileSource creates a source over the YAML file at path.
func NewFileSource(scope schema.AliasScope, path string) *FileSource {
	return &FileSource{scope: scope, path: path}
}

// Scope implements contract.AliasSource.
func (s *FileSource) Scope() schema.AliasScope {
	return s.scope
}

// Path returns the file backing this source.
func (s *FileSource) Path() string {
	return s.path
}

// Entries implements contract.AliasSource. A missing file has no entries.
func (s *FileSource) Entries(_ context.Context) (map[string]string, error) {
	entries, err := ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrAliasTableUnreadable, err)
	}
	return entries, nil
}

// newFileViper returns a viper instance for alias files. Aliases may contain
// dots, so the key delimiter is changed to keep them flat.
func newFileViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigType("yaml")
	return v
}

// ReadFile loads an alias file. A missing file yields an empty map.
func ReadFile(path string) (map[string]string, error) {
	entries := make(map[string]string)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}

	v := newFileViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for alias, value := range v.AllSettings() {
		contact, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%s: alias %q must map to a \"Name <email>\" string", path, alias)
		}
		entries[strings.ToLower(alias)] = contact
	}
	return entries, nil
}

// WriteFile replaces the alias file with entries.
func WriteFile(path string, entries map[string]string) error {
	v := newFileViper()
	for alias, contact := range entries {
		v.Set(alias, contact)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ParseConfigArg splits "alias: Name <email>" into its alias and contact.
func ParseConfigArg(arg string) (alias, contact string, err error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidConfig, arg)
	}
	alias = strings.ToLower(strings.TrimSpace(parts[0]))
	contact = strings.TrimSpace(parts[1])
	if alias == "" || strings.ContainsAny(alias, " \t") || !contactPattern.MatchString(contact) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidConfig, arg)
	}
	return alias, contact, nil
}

// AddToFile parses every argument and merges them into the alias file. Nothing
// is written when any argument is malformed.
func AddToFile(path string, args []string) (map[string]string, error) {
	entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, arg := range args {
		alias, contact, err := ParseConfigArg(arg)
		if err != nil {
			return nil, err
		}
		entries[alias] = contact
	}
	if err := WriteFile(path, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteFromFile removes the given aliases from the alias file, or every alias
// when none is given.
func DeleteFromFile(path string, aliases []string) (map[string]string, error) {
	entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(aliases) == 0 {
		clear(entries)
	}
	for _, alias := range aliases {
		delete(entries, strings.ToLower(alias))
	}
	if err := WriteFile(path, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
