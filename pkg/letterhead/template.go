package letterhead

import (
	"fmt"
	"strings"
)

// Slot names one half of the letterhead.
type Slot string

const (
	SlotHeader Slot = "header"
	SlotFooter Slot = "footer"
)

// ParseSlot maps a raw slot name onto a Slot.
func ParseSlot(raw string) (Slot, error) {
	switch Slot(strings.ToLower(strings.TrimSpace(raw))) {
	case SlotHeader:
		return SlotHeader, nil
	case SlotFooter:
		return SlotFooter, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, raw)
}

// Template is the pair of opaque HTML fragments. An empty slot renders the
// built-in placeholder block.
type Template struct {
	Header string `json:"header" yaml:"header"`
	Footer string `json:"footer" yaml:"footer"`
}

// IsZero reports whether both slots are empty.
func (t Template) IsZero() bool {
	return t.Header == "" && t.Footer == ""
}

// Update names the slots a composer path replaces. A nil slot is left alone.
type Update struct {
	Header *string
	Footer *string
}

// SetSlot returns an Update replacing a single slot.
func SetSlot(slot Slot, html string) Update {
	value := html
	if slot == SlotHeader {
		return Update{Header: &value}
	}
	return Update{Footer: &value}
}

// Replace returns an Update replacing both slots.
func Replace(t Template) Update {
	header, footer := t.Header, t.Footer
	return Update{Header: &header, Footer: &footer}
}

// Slots lists which slots the update touches.
func (u Update) Slots() []Slot {
	var out []Slot
	if u.Header != nil {
		out = append(out, SlotHeader)
	}
	if u.Footer != nil {
		out = append(out, SlotFooter)
	}
	return out
}

// Apply returns t with every slot named by u replaced wholesale.
func (u Update) Apply(t Template) Template {
	if u.Header != nil {
		t.Header = *u.Header
	}
	if u.Footer != nil {
		t.Footer = *u.Footer
	}
	return t
}

// Clear returns the empty template.
func Clear() Template {
	return Template{}
}
