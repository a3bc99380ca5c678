package themes

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

var (
	// ErrThemeNotFound is returned when a requested theme is not registered.
	ErrThemeNotFound = errors.New("themes: theme not found")
	// ErrVariantNotFound is returned when a theme lacks the requested variant.
	ErrVariantNotFound = errors.New("themes: variant not found")
)

// Option configures a Selector.
type Option func(*Selector)

// WithDefaults sets the theme and variant used when a selection leaves them
// blank.
func WithDefaults(name, variant string) Option {
	return func(s *Selector) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.defaultTheme = trimmed
		}
		if trimmed := strings.TrimSpace(variant); trimmed != "" {
			s.defaultVariant = trimmed
		}
	}
}

// WithManifests registers additional manifests alongside the built-ins.
func WithManifests(manifests ...*theme.Manifest) Option {
	return func(s *Selector) {
		for _, manifest := range manifests {
			_ = s.Register(manifest)
		}
	}
}

// Selector resolves theme/variant pairs against registered manifests and
// satisfies theme.ThemeSelector.
type Selector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector returns a Selector preloaded with the built-in manifests.
func NewSelector(options ...Option) *Selector {
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   DefaultTheme,
		defaultVariant: DefaultVariant,
	}
	for _, manifest := range Builtin() {
		_ = s.Register(manifest)
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register adds or replaces a manifest by name.
func (s *Selector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("themes: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[manifest.Name] = manifest
	return nil
}

// Names lists registered themes in sorted order.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector. Blank arguments fall back to the
// configured defaults.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if _, ok := manifest.Variants[variant]; !ok && variant != s.defaultVariant {
		return nil, fmt.Errorf("%w: %q/%q", ErrVariantNotFound, name, variant)
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Resolve selects a theme and flattens it into a renderer config.
func (s *Selector) Resolve(name, variant string) (*theme.RendererConfig, error) {
	selection, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(selection), nil
}

// RendererConfig merges a selection's base manifest with its variant
// overrides. Tokens become CSS variables named "--<token>".
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: mergeStrings(manifest.Templates, variant.Templates),
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return path.Join(prefix, file)
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
