package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// PhoneEntry is an Entry that only accepts characters valid in a phone
// number: digits, '+' and space.
type PhoneEntry struct {
	widget.Entry
}

// NewPhoneEntry creates a new instance of PhoneEntry.
func NewPhoneEntry() *PhoneEntry {
	entry := &PhoneEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops any rune that cannot appear in a phone number.
// Pasted text bypasses this filter; the form validator catches it.
func (e *PhoneEntry) TypedRune(r rune) {
	if (r >= '0' && r <= '9') || r == '+' || r == ' ' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *PhoneEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
