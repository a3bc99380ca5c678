package letterhead

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	letterheadPolicyOnce sync.Once
	letterheadPolicy     *bluemonday.Policy
)

// Sanitizer strips scripts, event handlers and other active content from
// letterhead HTML while keeping the layout markup the composer produces
// (inline styles, headings, paragraphs, data URI images).
//
// The single-user tool trusts its own uploads and leaves this off; a shared
// deployment must enable it.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer using the shared letterhead policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: sanitizerPolicy()}
}

// Sanitize cleans a single fragment.
func (s *Sanitizer) Sanitize(html string) string {
	if s == nil || s.policy == nil {
		return html
	}
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return s.policy.Sanitize(html)
}

// SanitizeTemplate cleans both slots.
func (s *Sanitizer) SanitizeTemplate(t Template) Template {
	return Template{Header: s.Sanitize(t.Header), Footer: s.Sanitize(t.Footer)}
}

// SanitizeUpdate cleans every slot the update touches.
func (s *Sanitizer) SanitizeUpdate(u Update) Update {
	var out Update
	if u.Header != nil {
		cleaned := s.Sanitize(*u.Header)
		out.Header = &cleaned
	}
	if u.Footer != nil {
		cleaned := s.Sanitize(*u.Footer)
		out.Footer = &cleaned
	}
	return out
}

func sanitizerPolicy() *bluemonday.Policy {
	letterheadPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("style").Globally()
		policy.AllowDataURIImages()
		policy.AllowElements("div", "span", "h1", "h2", "h3", "p", "br", "strong", "em", "img")
		policy.AllowAttrs("src", "alt", "width", "height").OnElements("img")
		letterheadPolicy = policy
	})
	return letterheadPolicy
}
