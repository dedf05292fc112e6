package contacts

import (
	"strings"
	"unicode/utf8"
)

// Contact is a single address book entry as persisted under config.KeyContacts.
type Contact struct {
	// ID is assigned once at creation and never changes.
	ID string `json:"id" yaml:"id"`

	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`

	// Phone is stored in the display form "+91 XXXXX XXXXX".
	Phone string `json:"phone" yaml:"phone"`

	IsFavorite bool `json:"isFavorite" yaml:"isFavorite"`
}

// Candidate holds unvalidated form input for a contact.
type Candidate struct {
	Name       string
	Email      string
	Phone      string
	IsFavorite bool
}

// Candidate returns the editable fields of c.
func (c Contact) Candidate() Candidate {
	return Candidate{
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		IsFavorite: c.IsFavorite,
	}
}

// Initials returns up to two uppercase letters used for the avatar badge:
// first letters of the first and last word, or the first two characters of a
// single-word name.
func Initials(name string) string {
	words := strings.FieldsFunc(name, isBlankRune)
	if len(words) >= 2 {
		first, _ := utf8.DecodeRuneInString(words[0])
		last, _ := utf8.DecodeRuneInString(words[len(words)-1])
		return strings.ToUpper(string([]rune{first, last}))
	}

	runes := []rune(strings.TrimFunc(name, isBlankRune))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// AvatarIndex picks a stable palette slot for name among n colours, keyed on
// the first code point.
func AvatarIndex(name string, n int) int {
	if n <= 0 || name == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(name)
	return int(r) % n
}
