package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-rxpad/components/rxpad"
	"github.com/goliatone/go-rxpad/internal/app"
	"github.com/goliatone/go-rxpad/internal/config"
	"github.com/goliatone/go-rxpad/internal/logging"
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/store"
)

func main() {
	configPath := flag.String("config", "rxpad.yaml", "configuration file (optional)")
	addr := flag.String("addr", "", "listen address, overrides the config")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintln(os.Stderr, "rxpad-server:", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Address = addr
	}

	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	rt, err := app.Build(*cfg, logger)
	if err != nil {
		return err
	}

	head := letterhead.Template{}
	if cfg.Letterhead.LoadDefault {
		head = rt.Sanitizer.SanitizeTemplate(letterhead.Default())
	}
	session := store.NewWith(prescription.Empty(), head)
	session.Subscribe(func(change store.Change) {
		logger.Debug("session updated", "kind", change.Kind, "version", change.Snapshot.Version)
	})

	component, err := rxpad.New(
		rxpad.WithStore(session),
		rxpad.WithRenderers(rt.Renderers),
		rxpad.WithExporter(rt.Exporter),
		rxpad.WithComposer(rt.Composer),
		rxpad.WithSanitizer(rt.Sanitizer),
		rxpad.WithTheme(rt.Theme),
		rxpad.WithDateLayout(cfg.Render.DateLayout),
		rxpad.WithLocation(rt.Location),
		rxpad.WithPrinter(rt.Printer),
		rxpad.WithExportDir(cfg.Export.Dir),
		rxpad.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
		rxpad.WithCORSOrigins(cfg.Server.CORSOrigins),
		rxpad.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	pattern, err := component.RegisterRoutes(mux, cfg.Server.BasePath)
	if err != nil {
		return err
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           mux,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Address, "mount", pattern)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
