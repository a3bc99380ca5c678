package render

import (
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
)

// Document is everything a renderer needs: the prescription plus the two
// trusted letterhead fragments. Header and Footer are injected verbatim; an
// empty slot renders the built-in placeholder block.
type Document struct {
	Prescription prescription.Data
	Header       string
	Footer       string
}

// NewDocument pairs a prescription with a letterhead.
func NewDocument(data prescription.Data, head letterhead.Template) Document {
	return Document{
		Prescription: data,
		Header:       head.Header,
		Footer:       head.Footer,
	}
}
