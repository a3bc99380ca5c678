package text

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded plain-text template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
