package rxpad

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-rxpad/pkg/export"
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/render"
	"github.com/goliatone/go-rxpad/pkg/renderers/document"
	textrenderer "github.com/goliatone/go-rxpad/pkg/renderers/text"
)

// Prescription aliases the prescription model so callers can stay on the
// top-level package.
type Prescription = prescription.Data

// Letterhead is the header and footer HTML pair.
type Letterhead = letterhead.Template

// Document pairs a prescription with its letterhead for rendering.
type Document = render.Document

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// EmbeddedTemplates exposes the built-in document templates so callers can
// copy or extend them.
func EmbeddedTemplates() fs.FS {
	return document.TemplatesFS()
}

// LetterheadTemplates exposes the templates used by the letterhead composer.
func LetterheadTemplates() fs.FS {
	return letterhead.TemplatesFS()
}

// AssetsFS exposes the document stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(rxpad.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return document.AssetsFS()
}

// NewRegistry returns a registry holding the document and text renderers.
func NewRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	doc, err := document.New()
	if err != nil {
		return nil, fmt.Errorf("rxpad: document renderer: %w", err)
	}
	text, err := textrenderer.New()
	if err != nil {
		return nil, fmt.Errorf("rxpad: text renderer: %w", err)
	}
	if err := registry.Register(doc); err != nil {
		return nil, err
	}
	if err := registry.Register(text); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML renders the printable document fragment.
func RenderHTML(ctx context.Context, data Prescription, head Letterhead, opts RenderOptions) ([]byte, error) {
	return renderWith(ctx, document.Name, data, head, opts)
}

// RenderText renders the plain text rendition.
func RenderText(ctx context.Context, data Prescription, head Letterhead, opts RenderOptions) ([]byte, error) {
	return renderWith(ctx, textrenderer.Name, data, head, opts)
}

// Standalone renders the document and wraps it into the downloadable page
// named after the patient.
func Standalone(ctx context.Context, data Prescription, head Letterhead, opts RenderOptions) (export.File, error) {
	markup, err := RenderHTML(ctx, data, head, opts)
	if err != nil {
		return export.File{}, err
	}
	return export.Download(markup, data.Name)
}

func renderWith(ctx context.Context, name string, data Prescription, head Letterhead, opts RenderOptions) ([]byte, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, render.NewDocument(data, head), opts)
}
