package rxpad

import (
	"log/slog"
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-rxpad/pkg/export"
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/render"
	"github.com/goliatone/go-rxpad/pkg/store"
)

const (
	defaultTitle = "Medical Prescription System"
	// multipartMemory is the part of a multipart body kept in memory; the
	// rest spills to temporary files.
	multipartMemory = 32 << 20
)

// GuardFunc rejects requests before routing. Returning an HTTPError selects
// the status; any other error answers 403.
type GuardFunc func(r *http.Request) error

type Options struct {
	Title string

	// Store is the session. A fresh empty store is used when nil.
	Store *store.Store
	// Renderers holds the document renderers by name. The "document" HTML
	// renderer backs preview, print and download; "text" is optional.
	Renderers *render.Registry
	Exporter  *export.Exporter
	Composer  *letterhead.Composer
	// Sanitizer, when set, cleans every letterhead fragment before it is
	// stored.
	Sanitizer *letterhead.Sanitizer

	Theme      *theme.RendererConfig
	DateLayout string
	Location   *time.Location
	Now        func() time.Time

	// Printer backs POST /api/print. Without one the endpoint saves the
	// standalone file under ExportDir and reports the path.
	Printer   export.Printer
	ExportDir string

	// MaxUploadBytes caps request bodies. Zero means no limit.
	MaxUploadBytes int64
	CORSOrigins    []string
	IDs            prescription.IDGenerator
	Logger         *slog.Logger
	Guard          GuardFunc

	// ValidateRequests checks API requests against the embedded OpenAPI
	// document.
	ValidateRequests bool
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Title:            defaultTitle,
		DateLayout:       render.DefaultDateLayout,
		ExportDir:        ".",
		ValidateRequests: true,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.DateLayout == "" {
		opts.DateLayout = render.DefaultDateLayout
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.MaxUploadBytes < 0 {
		opts.MaxUploadBytes = 0
	}
	if opts.CORSOrigins != nil {
		opts.CORSOrigins = append([]string{}, opts.CORSOrigins...)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

func (o Options) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Now:        o.Now,
		DateLayout: o.DateLayout,
		Location:   o.Location,
		Theme:      o.Theme,
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

func WithStore(s *store.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = s
	}
}

func WithRenderers(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderers = registry
	}
}

func WithExporter(e *export.Exporter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Exporter = e
	}
}

func WithComposer(c *letterhead.Composer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Composer = c
	}
}

func WithSanitizer(s *letterhead.Sanitizer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sanitizer = s
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

func WithDateLayout(layout string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DateLayout = layout
	}
}

func WithLocation(loc *time.Location) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Location = loc
	}
}

func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}

func WithPrinter(p export.Printer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Printer = p
	}
}

func WithExportDir(dir string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ExportDir = dir
	}
}

func WithMaxUploadBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxUploadBytes = limit
	}
}

func WithCORSOrigins(origins []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if origins == nil {
			o.CORSOrigins = nil
			return
		}
		o.CORSOrigins = append([]string{}, origins...)
	}
}

func WithIDGenerator(ids prescription.IDGenerator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.IDs = ids
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRequestValidation(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValidateRequests = enabled
	}
}
