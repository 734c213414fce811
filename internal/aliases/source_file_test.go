package aliases

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigArg(t *testing.T) {
	tests := []struct {
		arg     string
		alias   string
		contact string
		wantErr bool
	}{
		{"jd: Jane Doe <jd@example.com>", "jd", "Jane Doe <jd@example.com>", false},
		{"  JD :Jane Doe <jd@example.com>  ", "jd", "Jane Doe <jd@example.com>", false},
		{"j.doe: Jane <jane@example.com>", "j.doe", "Jane <jane@example.com>", false},
		{"jd Jane Doe <jd@example.com>", "", "", true},
		{"jd: Jane: Doe <jd@example.com>", "", "", true},
		{": Jane Doe <jd@example.com>", "", "", true},
		{"jd: Jane Doe", "", "", true},
		{"jd: <jd@example.com>", "", "", true},
		{"jd: Jane <not-an-email>", "", "", true},
		{"j d: Jane <jd@example.com>", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			alias, contact, err := ParseConfigArg(tt.arg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.alias, alias)
			assert.Equal(t, tt.contact, contact)
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	entries, err := ReadFile(filepath.Join(t.TempDir(), ".git-coauthors"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadFileHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".git-coauthors")
	require.NoError(t, os.WriteFile(path, []byte("bob: Bob Roe <bob@example.com>\nJD: Jane Doe <jd@example.com>\n"), 0o644))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"bob": "Bob Roe <bob@example.com>",
		"jd":  "Jane Doe <jd@example.com>",
	}, entries)
}

func TestReadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".git-coauthors")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadFileRejectsNested(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".git-coauthors")
	require.NoError(t, os.WriteFile(path, []byte("jd:\n  name: Jane\n"), 0o644))

	_, err := ReadFile(path)
	assert.Error(t, err)

	_, err = NewFileSource(schema.RepoScope, path).Entries(context.Background())
	assert.ErrorIs(t, err, contract.ErrAliasTableUnreadable)
}

func TestAddToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".git-coauthors")

	entries, err := AddToFile(path, []string{"jd: Jane Doe <jd@example.com>", "j.roe: Jim Roe <jim@example.com>"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = AddToFile(path, []string{"jd: Jane Smith <jane@example.com>"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith <jane@example.com>", entries["jd"])

	reread, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, entries, reread)
}

func TestAddToFileInvalidWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".git-coauthors")

	_, err := AddToFile(path, []string{"jd: Jane Doe <jd@example.com>", "broken"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".git-coauthors")
	_, err := AddToFile(path, []string{"jd: Jane Doe <jd@example.com>", "bob: Bob Roe <bob@example.com>", "amy: Amy <amy@example.com>"})
	require.NoError(t, err)

	entries, err := DeleteFromFile(path, []string{"JD", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"bob": "Bob Roe <bob@example.com>",
		"amy": "Amy <amy@example.com>",
	}, entries)

	entries, err = DeleteFromFile(path, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	reread, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, reread)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".git-coauthors")
	require.NoError(t, WriteFile(path, map[string]string{"jd": "Jane Doe <jd@example.com>"}))

	src := NewFileSource(schema.UserScope, path)
	assert.Equal(t, schema.UserScope, src.Scope())
	assert.Equal(t, path, src.Path())
	entries, err := src.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"jd": "Jane Doe <jd@example.com>"}, entries)
}
