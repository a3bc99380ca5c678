// Package themes ships the built-in go-theme manifests for printed
// prescriptions and resolves a theme/variant selection into the
// theme.RendererConfig the document renderers consume.
package themes
