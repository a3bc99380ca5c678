package rxpad

import "net/http"

// Component bundles the prescription pad handler, its configuration, and
// routing helpers.
type Component struct {
	opts    Options
	handler http.Handler
}

// New constructs the component with default options plus any overrides.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	handler, err := HandlerWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Component{opts: opts, handler: handler}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the routed net/http handler.
func (c *Component) Handler() http.Handler {
	if c == nil || c.handler == nil {
		return http.NotFoundHandler()
	}
	return c.handler
}

// RegisterRoutes mounts the component under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return mountHandler(mux, basePath, c.handler)
}
