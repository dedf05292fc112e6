package contacts

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Group is one lettered section of the contact list.
type Group struct {
	Label    string
	Contacts []Contact
}

// BuildView filters contacts by searchTerm and buckets the result by the
// first letter of each name.
//
// Buckets are ordered by byte-wise label comparison, so config.GroupOther
// ("#", 0x23) precedes "A". Inside a bucket the input order is kept.
// The whole projection is recomputed on every call; collections are small
// enough that no incremental index is kept.
func BuildView(contacts []Contact, searchTerm string) []Group {
	buckets := make(map[string][]Contact)
	for _, c := range contacts {
		if !Matches(c, searchTerm) {
			continue
		}
		label := GroupLabel(c.Name)
		buckets[label] = append(buckets[label], c)
	}

	labels := make([]string, 0, len(buckets))
	for l := range buckets {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	groups := make([]Group, 0, len(labels))
	for _, l := range labels {
		groups = append(groups, Group{Label: l, Contacts: buckets[l]})
	}
	return groups
}

// Matches reports whether term occurs in the contact's name or email
// (case-insensitively) or literally in its phone.
func Matches(c Contact, term string) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), lower) ||
		strings.Contains(strings.ToLower(c.Email), lower) ||
		strings.Contains(c.Phone, term)
}

// GroupLabel returns the bucket label for name: an uppercase ASCII letter or
// config.GroupOther.
func GroupLabel(name string) string {
	trimmed := strings.TrimLeftFunc(name, isBlankRune)
	r, _ := utf8.DecodeRuneInString(trimmed)
	// Fold by hand: unicode.ToUpper maps 'ſ' to 'S' and 'ı' to 'I'.
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r >= 'A' && r <= 'Z' {
		return string(r)
	}
	return config.GroupOther
}

// Count returns the number of contacts across groups.
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Contacts)
	}
	return n
}
