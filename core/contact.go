package core

import (
	"slices"
	"strings"

	"github.com/huangsam/coauthor/schema"
)

// ContactProfile is the normalized form of a name and email used to test
// whether an alias refers to a person.
type ContactProfile struct {
	Name       string
	NameTokens []string
	Email      string
	LocalPart  string
}

// NewContactProfile builds a profile from a raw name and email. It returns
// false when the email does not contain exactly one "@"; such candidates are
// skipped rather than treated as errors.
func NewContactProfile(name, email string) (ContactProfile, bool) {
	email = strings.ToLower(email)
	if strings.Count(email, "@") != 1 {
		return ContactProfile{}, false
	}
	name = strings.ToLower(name)
	local, _, _ := strings.Cut(email, "@")
	return ContactProfile{
		Name:       name,
		NameTokens: strings.Fields(name),
		Email:      email,
		LocalPart:  local,
	}, true
}

// Matches reports whether a lowercased alias equals the full name, the full
// email, the email local part, or one of the name tokens.
func (p ContactProfile) Matches(alias string) bool {
	if alias == "" {
		return false
	}
	return alias == p.Name ||
		alias == p.Email ||
		alias == p.LocalPart ||
		slices.Contains(p.NameTokens, alias)
}

// ParseTrailerContact extracts the name (text before the first "<") and the
// bracketed email from a trailer line.
func ParseTrailerContact(line string) (name, email string, ok bool) {
	contact, found := strings.CutPrefix(line, schema.TrailerPrefix)
	if !found {
		return "", "", false
	}
	lt := strings.Index(contact, "<")
	if lt < 0 {
		return "", "", false
	}
	gt := strings.Index(contact[lt:], ">")
	if gt < 0 {
		return "", "", false
	}
	return strings.TrimSpace(contact[:lt]), contact[lt+1 : lt+gt], true
}
