package ui

import (
	"strconv"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits.
// It is used for the refresh interval (seconds) and the server port.
type NumericalEntry struct {
	widget.Entry
}

func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not 0-9.
// Pasted text bypasses this filter; Validator and IntValue cover that case.
func (e *NumericalEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// IntValue returns the entry as an integer, or fallback when it is empty or not a number.
func (e *NumericalEntry) IntValue(fallback int) int {
	n, err := strconv.Atoi(e.Text)
	if err != nil {
		return fallback
	}
	return n
}

// SetIntValue replaces the text with n.
func (e *NumericalEntry) SetIntValue(n int) {
	e.SetText(strconv.Itoa(n))
}
