// Package app wires configuration into the collaborators shared by the
// server and the CLI.
package app

import (
	"fmt"
	"log/slog"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-rxpad/internal/config"
	"github.com/goliatone/go-rxpad/pkg/export"
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/render"
	"github.com/goliatone/go-rxpad/pkg/renderers/document"
	textrenderer "github.com/goliatone/go-rxpad/pkg/renderers/text"
	"github.com/goliatone/go-rxpad/pkg/themes"
)

// Runtime holds everything built from a Config.
type Runtime struct {
	Config    config.Config
	Logger    *slog.Logger
	Renderers *render.Registry
	Exporter  *export.Exporter
	Composer  *letterhead.Composer
	Sanitizer *letterhead.Sanitizer
	Theme     *theme.RendererConfig
	Location  *time.Location
	Printer   export.Printer
}

// Build resolves the theme, renderers, exporter, composer and printer
// described by cfg.
func Build(cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	selector := themes.NewSelector()
	themeCfg, err := selector.Resolve(cfg.Render.Theme, cfg.Render.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("app: theme: %w", err)
	}

	docRenderer, err := document.New(document.WithTemplatesDir(cfg.Render.TemplatesDir))
	if err != nil {
		return nil, fmt.Errorf("app: document renderer: %w", err)
	}
	text, err := textrenderer.New()
	if err != nil {
		return nil, fmt.Errorf("app: text renderer: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(docRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(text); err != nil {
		return nil, err
	}

	exporter, err := export.New()
	if err != nil {
		return nil, fmt.Errorf("app: exporter: %w", err)
	}
	composer, err := letterhead.NewComposer(letterhead.WithAccentColor(cfg.Letterhead.AccentColor))
	if err != nil {
		return nil, fmt.Errorf("app: letterhead composer: %w", err)
	}

	rt := &Runtime{
		Config:    cfg,
		Logger:    logger,
		Renderers: registry,
		Exporter:  exporter,
		Composer:  composer,
		Theme:     themeCfg,
		Location:  loc,
	}
	if cfg.Letterhead.Sanitize {
		rt.Sanitizer = letterhead.NewSanitizer()
	}
	if cfg.Export.PrintCommand != "" {
		printer := export.NewCommandPrinter(cfg.Export.PrintCommand)
		if printer.Available() {
			rt.Printer = printer
		} else {
			logger.Warn("print command not found, printing falls back to files", "command", cfg.Export.PrintCommand)
		}
	}
	return rt, nil
}

// RenderOptions returns the per-render settings derived from the config.
func (rt *Runtime) RenderOptions(now func() time.Time) render.RenderOptions {
	return render.RenderOptions{
		Now:        now,
		DateLayout: rt.Config.Render.DateLayout,
		Location:   rt.Location,
		Theme:      rt.Theme,
	}
}

// Renderer looks up a registered renderer by name.
func (rt *Runtime) Renderer(name string) (render.Renderer, error) {
	return rt.Renderers.Get(name)
}
