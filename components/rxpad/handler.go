package rxpad

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/goliatone/go-rxpad/pkg/export"
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/render"
	rendertemplate "github.com/goliatone/go-rxpad/pkg/render/template"
	"github.com/goliatone/go-rxpad/pkg/render/template/gotemplate"
	"github.com/goliatone/go-rxpad/pkg/renderers/document"
	textrenderer "github.com/goliatone/go-rxpad/pkg/renderers/text"
	"github.com/goliatone/go-rxpad/pkg/store"
)

//go:embed templates/*.tpl
var pageTemplates embed.FS

type server struct {
	opts      Options
	store     *store.Store
	renderers *render.Registry
	exporter  *export.Exporter
	composer  *letterhead.Composer
	pages     rendertemplate.TemplateRenderer
	logger    *slog.Logger
}

// Handler builds a handler with default options plus any overrides.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the routed handler from a pre-constructed Options
// value. Missing collaborators are created with their defaults.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	s, err := newServer(opts)
	if err != nil {
		return nil, err
	}

	var validator *requestValidator
	if opts.ValidateRequests {
		validator, err = newRequestValidator(context.Background())
		if err != nil {
			return nil, err
		}
	}
	return s.routes(validator), nil
}

func newServer(opts Options) (*server, error) {
	s := &server{
		opts:      opts,
		store:     opts.Store,
		renderers: opts.Renderers,
		exporter:  opts.Exporter,
		composer:  opts.Composer,
		logger:    opts.Logger,
	}
	if s.store == nil {
		s.store = store.New()
	}
	if s.renderers == nil {
		registry, err := defaultRenderers()
		if err != nil {
			return nil, err
		}
		s.renderers = registry
	}
	if !s.renderers.Has(document.Name) {
		return nil, fmt.Errorf("rxpad: %w: %q", render.ErrRendererNotFound, document.Name)
	}
	if s.exporter == nil {
		exporter, err := export.New()
		if err != nil {
			return nil, err
		}
		s.exporter = exporter
	}
	if s.composer == nil {
		composer, err := letterhead.NewComposer()
		if err != nil {
			return nil, err
		}
		s.composer = composer
	}
	pages, err := gotemplate.New(
		gotemplate.WithFS(pageTemplates),
		gotemplate.WithSetName("rxpad-pages"),
	)
	if err != nil {
		return nil, fmt.Errorf("rxpad: configure page templates: %w", err)
	}
	s.pages = pages
	return s, nil
}

func defaultRenderers() (*render.Registry, error) {
	registry := render.NewRegistry()
	doc, err := document.New()
	if err != nil {
		return nil, err
	}
	text, err := textrenderer.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(doc); err != nil {
		return nil, err
	}
	if err := registry.Register(text); err != nil {
		return nil, err
	}
	return registry, nil
}

func (s *server) routes(validator *requestValidator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Content-Disposition"},
			MaxAge:         300,
		}))
	}
	if s.opts.Guard != nil {
		r.Use(guardMiddleware(s.opts.Guard))
	}

	r.Get("/", s.handleApp)
	r.Get("/preview", s.handlePreview)
	r.Get("/print", s.handlePrintView)
	r.Get("/download", s.handleDownload)
	r.Get("/assets/"+document.StylesheetName, s.handleStylesheet)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/api", func(r chi.Router) {
		if validator != nil {
			r.Use(validator.middleware)
		}
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, StatusError{Code: http.StatusNotFound})
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, StatusError{Code: http.StatusMethodNotAllowed})
		})

		r.Route("/prescription", func(r chi.Router) {
			r.Get("/", s.getPrescription)
			r.Put("/", s.replacePrescription)
			r.Post("/sample", s.loadSample)
			r.Post("/clear", s.clearPrescription)
			r.Patch("/fields", s.setField)
			r.Put("/diagnosis-type", s.setDiagnosisType)

			r.Post("/medicines", s.appendMedicine)
			r.Patch("/medicines/{id}", s.updateMedicine)
			r.Delete("/medicines/{id}", s.removeMedicine)

			r.Post("/tests", s.appendTest)
			r.Patch("/tests/{id}", s.updateTest)
			r.Delete("/tests/{id}", s.removeTest)

			r.Post("/diagnoses", s.addDiagnosis)
			r.Delete("/diagnoses/{id}", s.removeDiagnosis)
		})

		r.Route("/letterhead", func(r chi.Router) {
			r.Get("/", s.getLetterhead)
			r.Put("/", s.replaceLetterhead)
			r.Delete("/", s.clearLetterhead)
			r.Post("/html", s.uploadLetterheadHTML)
			r.Post("/fields", s.composeLetterhead)
			r.Post("/default", s.loadDefaultLetterhead)
			r.Post("/{slot}/upload", s.uploadLetterheadFile)
		})

		r.Post("/print", s.printDocument)
	})
	return r
}
