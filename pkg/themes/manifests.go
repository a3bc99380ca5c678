package themes

import (
	theme "github.com/goliatone/go-theme"
)

// Built-in theme and variant names.
const (
	DefaultTheme   = "clinic"
	DefaultVariant = "standard"

	VariantPrint   = "print"
	VariantCompact = "compact"
)

// Token keys read by the document stylesheet. Each becomes a CSS custom
// property named "--<key>".
const (
	TokenAccent     = "accent-color"
	TokenText       = "text-color"
	TokenMuted      = "muted-color"
	TokenBorder     = "border-color"
	TokenFontFamily = "font-family"
	TokenFontSize   = "font-size"
	TokenPageWidth  = "page-width"
)

// Builtin returns fresh copies of the bundled manifests.
func Builtin() []*theme.Manifest {
	return []*theme.Manifest{clinicManifest(), classicManifest()}
}

func clinicManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenAccent:     "#2563eb",
			TokenText:       "#111827",
			TokenMuted:      "#4b5563",
			TokenBorder:     "#d1d5db",
			TokenFontFamily: "Arial, sans-serif",
			TokenFontSize:   "14px",
			TokenPageWidth:  "800px",
		},
		Templates: map[string]string{
			"document": "document.tpl",
		},
		Variants: map[string]theme.Variant{
			DefaultVariant: {},
			VariantPrint: {
				Tokens: map[string]string{
					TokenAccent: "#000000",
					TokenMuted:  "#333333",
					TokenBorder: "#000000",
				},
			},
			VariantCompact: {
				Tokens: map[string]string{
					TokenFontSize:  "12px",
					TokenPageWidth: "680px",
				},
			},
		},
	}
}

func classicManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "classic",
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenAccent:     "#1f4e79",
			TokenText:       "#1a1a1a",
			TokenMuted:      "#555555",
			TokenBorder:     "#999999",
			TokenFontFamily: "Georgia, 'Times New Roman', serif",
			TokenFontSize:   "15px",
			TokenPageWidth:  "800px",
		},
		Templates: map[string]string{
			"document": "document.tpl",
		},
		Variants: map[string]theme.Variant{
			DefaultVariant: {},
			VariantPrint: {
				Tokens: map[string]string{
					TokenAccent: "#000000",
					TokenBorder: "#000000",
				},
			},
		},
	}
}
