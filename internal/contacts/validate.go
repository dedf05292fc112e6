package contacts

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/tartampluch/go-contacts/internal/config"
)

var (
	emailPattern = regexp.MustCompile(config.PatternEmail)
	phonePattern = regexp.MustCompile(config.PatternPhone)
)

// ValidationErrors maps a field name (config.FieldName, ...) to a
// human-readable message. A nil map means the candidate is valid.
type ValidationErrors map[string]string

// ValidationError is returned by store mutations rejected by Validate.
type ValidationError struct {
	Fields ValidationErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return fmt.Sprintf("%s: %s", config.ErrValidation, strings.Join(parts, "; "))
}

// Validate checks every field of c and reports all failures together.
func Validate(c Candidate) ValidationErrors {
	errs := make(ValidationErrors)

	if isBlank(c.Name) {
		errs[config.FieldName] = config.MsgNameRequired
	}

	if isBlank(c.Email) {
		errs[config.FieldEmail] = config.MsgEmailRequired
	} else if !emailPattern.MatchString(c.Email) {
		errs[config.FieldEmail] = config.MsgEmailInvalid
	}

	if isBlank(c.Phone) {
		errs[config.FieldPhone] = config.MsgPhoneRequired
	} else if !phonePattern.MatchString(c.Phone) {
		errs[config.FieldPhone] = config.MsgPhoneInvalid
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// isBlank reports whether s holds nothing but Unicode whitespace or
// byte-order marks.
func isBlank(s string) bool {
	return strings.TrimFunc(s, isBlankRune) == ""
}

func isBlankRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
