package render

import (
	"time"

	theme "github.com/goliatone/go-theme"
)

// DefaultDateLayout mirrors the en-US short date the browser tool printed.
const DefaultDateLayout = "1/2/2006"

// RenderOptions carries per-render settings that are not part of the
// prescription itself.
type RenderOptions struct {
	// Now supplies the current time for the date stamp. Rendering is a pure
	// function of the document except for this value, so re-rendering the
	// same data on a later day changes the date line.
	Now func() time.Time
	// DateLayout formats both the date stamp and the follow-up date.
	DateLayout string
	// Location is the viewer's time zone for the date stamp.
	Location *time.Location
	// Theme carries resolved go-theme tokens; renderers derive CSS variables
	// from them.
	Theme *theme.RendererConfig
}

func (o RenderOptions) now() time.Time {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	t := now()
	if o.Location != nil {
		t = t.In(o.Location)
	}
	return t
}

func (o RenderOptions) dateLayout() string {
	if o.DateLayout == "" {
		return DefaultDateLayout
	}
	return o.DateLayout
}
