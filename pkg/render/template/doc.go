// Package template defines the renderer-agnostic template contract. Concrete
// engines live in subpackages.
package template
