package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasNotFoundError(t *testing.T) {
	one := &AliasNotFoundError{Aliases: []string{"foo"}}
	assert.Equal(t, "coauthor not found: foo", one.Error())
	assert.ErrorIs(t, one, ErrAliasNotFound)

	many := &AliasNotFoundError{Aliases: []string{"foo", "bar"}}
	assert.Equal(t, "coauthors not found: foo, bar", many.Error())
}

func TestGitError(t *testing.T) {
	inner := errors.New("exit status 128")
	err := &GitError{Operation: "log", Args: []string{"log"}, Output: "fatal: bad revision", Err: inner}
	assert.Equal(t, "git log failed: fatal: bad revision: exit status 128", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := &GitError{Operation: "config"}
	assert.Equal(t, "git config failed", bare.Error())
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
