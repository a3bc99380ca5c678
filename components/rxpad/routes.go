package rxpad

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the pattern the component is registered under for
// basePath. The trailing slash makes it a subtree.
func MountPath(basePath string) string {
	base := normalizeBase(basePath)
	return base + "/"
}

// RegisterRoutes builds a handler from fns and mounts it under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions mounts a handler built from a pre-built Options
// value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("rxpad: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	handler, err := HandlerWithOptions(opts)
	if err != nil {
		return "", err
	}
	return mountHandler(mux, basePath, handler)
}

func mountHandler(mux Mux, basePath string, handler http.Handler) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("rxpad: missing mux")
	}
	if handler == nil {
		return "", fmt.Errorf("rxpad: missing handler")
	}
	base := normalizeBase(basePath)
	pattern := base + "/"
	if base == "" {
		mux.Handle(pattern, handler)
		return pattern, nil
	}
	mux.Handle(pattern, http.StripPrefix(base, handler))
	// Relative links in the shell need the trailing slash.
	mux.Handle(base, http.RedirectHandler(pattern, http.StatusMovedPermanently))
	return pattern, nil
}

func normalizeBase(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}
