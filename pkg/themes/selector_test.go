package themes_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rxpad/pkg/themes"
	theme "github.com/goliatone/go-theme"
)

func TestSelector_DefaultsWhenBlank(t *testing.T) {
	selector := themes.NewSelector()

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != themes.DefaultTheme || selection.Variant != themes.DefaultVariant {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}
}

func TestSelector_UnknownThemeAndVariant(t *testing.T) {
	selector := themes.NewSelector()

	if _, err := selector.Select("missing", ""); !errors.Is(err, themes.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := selector.Select(themes.DefaultTheme, "neon"); !errors.Is(err, themes.ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestResolve_MergesVariantTokens(t *testing.T) {
	selector := themes.NewSelector()

	cfg, err := selector.Resolve(themes.DefaultTheme, themes.VariantPrint)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Tokens[themes.TokenAccent] != "#000000" {
		t.Fatalf("variant token not applied: %q", cfg.Tokens[themes.TokenAccent])
	}
	if cfg.Tokens[themes.TokenFontFamily] != "Arial, sans-serif" {
		t.Fatalf("base token lost: %q", cfg.Tokens[themes.TokenFontFamily])
	}
	if cfg.CSSVars["--"+themes.TokenAccent] != "#000000" {
		t.Fatalf("css var not derived: %+v", cfg.CSSVars)
	}
	if cfg.Partials["document"] != "document.tpl" {
		t.Fatalf("partials not propagated: %+v", cfg.Partials)
	}
}

func TestSelector_CustomManifest(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{"logo": "logo.png"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{Files: map[string]string{"logo": "logo-dark.png"}},
			},
		},
	}
	selector := themes.NewSelector(themes.WithManifests(manifest), themes.WithDefaults("acme", "dark"))

	cfg, err := selector.Resolve("", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"--brand": "#654321"}, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("logo"); got != "/assets/themes/acme/logo-dark.png" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset should resolve empty, got %q", got)
	}

	if diff := cmp.Diff([]string{"acme", "classic", themes.DefaultTheme}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererConfig_NilSelection(t *testing.T) {
	if themes.RendererConfig(nil) != nil {
		t.Fatalf("expected nil config")
	}
}
