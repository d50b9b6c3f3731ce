package domain

import "strings"

// MaxNotesLength bounds the free-form annotation on a deal.
const MaxNotesLength = 1000

// DealNotes is an immutable text annotation. Blank input normalizes to the
// zero value, which means "no notes" rather than an empty note.
type DealNotes struct {
	value string
}

func NewDealNotes(text string) (DealNotes, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return DealNotes{}, nil
	}
	if len(trimmed) > MaxNotesLength {
		return DealNotes{}, ErrNotesTooLong
	}
	return DealNotes{value: trimmed}, nil
}

func (n DealNotes) IsEmpty() bool { return n.value == "" }

func (n DealNotes) Len() int { return len(n.value) }

func (n DealNotes) String() string { return n.value }

// Append returns a new value joining the existing text and the addition with
// a blank line. Appending to empty notes behaves like creating them.
func (n DealNotes) Append(text string) (DealNotes, error) {
	if n.IsEmpty() {
		return NewDealNotes(text)
	}
	return NewDealNotes(n.value + "\n\n" + strings.TrimSpace(text))
}
