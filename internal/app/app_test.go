package app_test

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rxpad/internal/app"
	"github.com/goliatone/go-rxpad/internal/config"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/render"
	"github.com/goliatone/go-rxpad/pkg/themes"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild_Defaults(t *testing.T) {
	rt, err := app.Build(config.Default(), discard())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"document", "text"}, rt.Renderers.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	if rt.Theme == nil || rt.Theme.Theme != themes.DefaultTheme {
		t.Fatalf("unexpected theme %+v", rt.Theme)
	}
	if rt.Sanitizer != nil {
		t.Fatalf("sanitizer must be off by default")
	}
	if rt.Printer != nil {
		t.Fatalf("printer must be unset without a print command")
	}
}

func TestBuild_RendersWithConfiguredLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Render.DateLayout = "02 Jan 2006"
	cfg.Render.TimeZone = "UTC"
	rt, err := app.Build(cfg, discard())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	renderer, err := rt.Renderer("document")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	now := func() time.Time { return time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC) }
	doc := render.Document{Prescription: prescription.Sample()}
	out, err := renderer.Render(context.Background(), doc, rt.RenderOptions(now))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "09 Mar 2024") || !strings.Contains(string(out), "15 Jan 2024") {
		t.Fatalf("configured layout not applied:\n%s", out)
	}
}

func TestBuild_Options(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	cfg := config.Default()
	cfg.Letterhead.Sanitize = true
	cfg.Export.PrintCommand = "cat"
	rt, err := app.Build(cfg, discard())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rt.Sanitizer == nil {
		t.Fatalf("expected sanitizer")
	}
	if rt.Printer == nil {
		t.Fatalf("expected printer")
	}

	cfg.Export.PrintCommand = "rxpad-no-such-printer"
	rt, err = app.Build(cfg, discard())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rt.Printer != nil {
		t.Fatalf("missing command must leave the printer unset")
	}
}

func TestBuild_UnknownTheme(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Theme = "neon"
	if _, err := app.Build(cfg, discard()); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
