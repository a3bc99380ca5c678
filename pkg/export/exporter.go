package export

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-rxpad/pkg/render/template"
	gotemplate "github.com/goliatone/go-rxpad/pkg/render/template/gotemplate"
	"github.com/goliatone/go-rxpad/pkg/renderers/document"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DocumentTitle is the <title> of every standalone page.
const DocumentTitle = "Prescription"

type Option func(*Exporter)

// WithStylesheet replaces the inline stylesheet. The default is the
// document renderer's bundled stylesheet.
func WithStylesheet(css string) Option {
	return func(e *Exporter) {
		e.stylesheet = css
	}
}

// WithTemplateRenderer injects a custom template renderer. It must provide
// "templates/standalone.tpl" and "templates/print.tpl".
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(e *Exporter) {
		if renderer != nil {
			e.templates = renderer
		}
	}
}

// Exporter wraps rendered document fragments into standalone pages.
type Exporter struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

// New constructs an Exporter.
func New(options ...Option) (*Exporter, error) {
	e := &Exporter{stylesheet: document.Stylesheet()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(embeddedTemplates),
			gotemplate.WithSetName("rxpad-export"),
		)
		if err != nil {
			return nil, fmt.Errorf("export: configure template renderer: %w", err)
		}
		e.templates = engine
	}
	return e, nil
}

// Download wraps markup in the standalone shell and names the file after the
// patient.
func (e *Exporter) Download(markup []byte, patientName string) (File, error) {
	body, err := e.page("templates/standalone.tpl", markup)
	if err != nil {
		return File{}, err
	}
	return File{
		Name:        Filename(patientName),
		ContentType: ContentTypeHTML,
		Body:        body,
	}, nil
}

// Page wraps markup in the standalone shell without naming a file. It backs
// the live preview.
func (e *Exporter) Page(markup []byte) ([]byte, error) {
	return e.page("templates/standalone.tpl", markup)
}

// PrintView returns a standalone page holding only the document that opens
// the print dialog once loaded. It is served in its own window so the editor
// keeps its state.
func (e *Exporter) PrintView(markup []byte) ([]byte, error) {
	return e.page("templates/print.tpl", markup)
}

func (e *Exporter) page(name string, markup []byte) ([]byte, error) {
	if strings.TrimSpace(string(markup)) == "" {
		return nil, ErrEmptyDocument
	}
	out, err := e.templates.RenderTemplate(name, map[string]any{
		"title":      DocumentTitle,
		"stylesheet": e.stylesheet,
		"markup":     string(markup),
	})
	if err != nil {
		return nil, fmt.Errorf("export: render %s: %w", name, err)
	}
	return []byte(out), nil
}

var (
	defaultOnce     sync.Once
	defaultExporter *Exporter
	defaultErr      error
)

func defaultInstance() (*Exporter, error) {
	defaultOnce.Do(func() {
		defaultExporter, defaultErr = New()
	})
	return defaultExporter, defaultErr
}

// Download wraps markup using the default Exporter.
func Download(markup []byte, patientName string) (File, error) {
	e, err := defaultInstance()
	if err != nil {
		return File{}, err
	}
	return e.Download(markup, patientName)
}

// PrintView builds the print surface using the default Exporter.
func PrintView(markup []byte) ([]byte, error) {
	e, err := defaultInstance()
	if err != nil {
		return nil, err
	}
	return e.PrintView(markup)
}
