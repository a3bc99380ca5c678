// Package rxpad is the HTTP surface of the prescription pad: the single-page
// editor shell, the document preview, print and download pages, and a JSON
// API over the in-memory session store.
//
// The component is routed with chi and mounts under any base path:
//
//	mux := http.NewServeMux()
//	c, _ := rxpad.New(rxpad.WithStore(store.New()))
//	c.RegisterRoutes(mux, "/rx")
//
// API request bodies are checked against the embedded OpenAPI document before
// they reach a handler. Page links are relative, so the shell works under any
// mount point.
package rxpad
