package template

import (
	"io"
)

// TemplateRenderer is the seam the document renderer, the letterhead composer
// and the web pages render through. The pongo2-backed gotemplate.Engine is the
// default implementation; tests substitute stubs.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
