package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
)

// EncodeVCards writes one vCard 4.0 per contact to w.
func EncodeVCards(w io.Writer, contacts []Contact) error {
	enc := vcard.NewEncoder(w)
	for _, c := range contacts {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldUID, c.ID)
		card.SetValue(vcard.FieldFormattedName, c.Name)
		card.SetValue(vcard.FieldEmail, c.Email)
		card.SetValue(vcard.FieldTelephone, c.Phone)
		if c.IsFavorite {
			card.SetValue(vcard.FieldCategories, config.VCardFavoriteTag)
		}

		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

// DecodeVCards reads every card from r and converts it to a Candidate.
// Malformed cards are logged and skipped. The result is not validated.
func DecodeVCards(ctx context.Context, r io.Reader) ([]Candidate, error) {
	src := &readErrRecorder{r: r}
	decoder := vcard.NewDecoder(src)
	var out []Candidate

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if src.err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, src.err)
		}
		if err != nil {
			// A broken card should not discard the rest of the file.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			continue
		}

		out = append(out, candidateFromCard(card))
	}
	return out, nil
}

// readErrRecorder remembers the first transport error of the wrapped reader
// so it can be told apart from a malformed card.
type readErrRecorder struct {
	r   io.Reader
	err error
}

func (e *readErrRecorder) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && e.err == nil {
		e.err = err
	}
	return n, err
}

// candidateFromCard maps a vCard onto form fields.
// Name strategy: FN (Formatted) > N (Structured) > Fallback.
func candidateFromCard(card vcard.Card) Candidate {
	name := config.FallbackName
	if fn := strings.TrimSpace(card.PreferredValue(vcard.FieldFormattedName)); fn != "" {
		name = fn
	} else if n := card.Name(); n != nil {
		if joined := strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " ")); joined != "" {
			name = joined
		}
	}

	fav := false
	for _, cat := range card.Values(vcard.FieldCategories) {
		for _, tag := range strings.Split(cat, config.VCardListSep) {
			if strings.EqualFold(strings.TrimSpace(tag), config.VCardFavoriteTag) {
				fav = true
			}
		}
	}

	return Candidate{
		Name:       name,
		Email:      strings.TrimSpace(card.PreferredValue(vcard.FieldEmail)),
		Phone:      NormalizePhone(card.PreferredValue(vcard.FieldTelephone)),
		IsFavorite: fav,
	}
}

// NormalizePhone rewrites Indian numbers into "+91 XXXXX XXXXX".
// A 10-digit national number or a 12-digit number starting with the country
// code is reformatted; anything else is returned trimmed but unchanged.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		if r == '+' || r == ' ' || r == '-' || r == '(' || r == ')' || r == '.' {
			return -1
		}
		// Letters (e.g. "tel:" URIs or extensions) disqualify normalization.
		return 'x'
	}, strings.TrimPrefix(raw, "tel:"))
	if strings.ContainsRune(digits, 'x') {
		return raw
	}

	switch {
	case len(digits) == config.PhoneNationalLen:
	case len(digits) == config.PhoneNationalLen+len(config.PhoneCountryCode) && strings.HasPrefix(digits, config.PhoneCountryCode):
		digits = digits[len(config.PhoneCountryCode):]
	default:
		return raw
	}

	half := config.PhoneNationalLen / 2
	return fmt.Sprintf(config.FormatPhoneDisplay, config.PhoneCountryCode, digits[:half], digits[half:])
}
