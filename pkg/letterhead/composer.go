package letterhead

import (
	"embed"
	"encoding/base64"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	rendertemplate "github.com/goliatone/go-rxpad/pkg/render/template"
	"github.com/goliatone/go-rxpad/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DefaultFooterText is printed when the structured footer text is empty.
const DefaultFooterText = "This prescription is computer generated and does not require signature"

const defaultAccent = "#2563eb"

// TemplatesFS exposes the embedded letterhead templates under "templates/",
// the same layout the document renderer uses.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Fields is the structured letterhead form. Every value is plain text and is
// escaped before it reaches the generated HTML.
type Fields struct {
	DoctorName         string `json:"doctorName" yaml:"doctorName"`
	Qualifications     string `json:"qualifications" yaml:"qualifications"`
	Specialty          string `json:"specialty" yaml:"specialty"`
	ClinicName         string `json:"clinicName" yaml:"clinicName"`
	Address            string `json:"address" yaml:"address"`
	Phone              string `json:"phone" yaml:"phone"`
	Email              string `json:"email" yaml:"email"`
	RegistrationNumber string `json:"registrationNumber" yaml:"registrationNumber"`
	FooterText         string `json:"footerText" yaml:"footerText"`
	EmergencyContact   string `json:"emergencyContact" yaml:"emergencyContact"`
	Website            string `json:"website" yaml:"website"`
}

// Upload is a binary file handed to Embed.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Option configures a Composer.
type Option func(*Composer)

// WithTemplateRenderer swaps the template engine. It must provide
// "templates/header.tpl", "templates/footer.tpl", "templates/image.tpl" and
// "templates/pdf.tpl".
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(c *Composer) {
		if renderer != nil {
			c.templates = renderer
		}
	}
}

// WithAccentColor sets the doctor-name colour used by Compose.
func WithAccentColor(color string) Option {
	return func(c *Composer) {
		if trimmed := strings.TrimSpace(color); trimmed != "" {
			c.accent = trimmed
		}
	}
}

// Composer renders structured fields and binary uploads into letterhead HTML.
type Composer struct {
	templates rendertemplate.TemplateRenderer
	accent    string
}

// NewComposer constructs a Composer backed by the embedded templates.
func NewComposer(options ...Option) (*Composer, error) {
	c := &Composer{accent: defaultAccent}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithSetName("letterhead"),
		)
		if err != nil {
			return nil, fmt.Errorf("letterhead: configure templates: %w", err)
		}
		c.templates = engine
	}
	return c, nil
}

// Compose renders both slots from structured fields. A line only appears when
// its field is non-empty; the phone/email separator only appears when both
// sides are present.
func (c *Composer) Compose(f Fields) (Template, error) {
	data := map[string]any{
		"fields":            trimFields(f),
		"accent":            c.accent,
		"defaultFooterText": DefaultFooterText,
	}

	header, err := c.templates.RenderTemplate("templates/header.tpl", data)
	if err != nil {
		return Template{}, fmt.Errorf("letterhead: render header: %w", err)
	}
	footer, err := c.templates.RenderTemplate("templates/footer.tpl", data)
	if err != nil {
		return Template{}, fmt.Errorf("letterhead: render footer: %w", err)
	}
	return Template{Header: header, Footer: footer}, nil
}

// Embed wraps an image or PDF upload into the HTML for one slot. Images are
// inlined as base64 data URIs; PDFs are only labelled by name.
func (c *Composer) Embed(slot Slot, upload Upload) (Update, error) {
	if slot != SlotHeader && slot != SlotFooter {
		return Update{}, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	if len(upload.Data) == 0 {
		return Update{}, ErrEmptyUpload
	}

	contentType := DetectContentType(upload)
	var (
		html string
		err  error
	)
	switch {
	case strings.HasPrefix(contentType, "image/"):
		html, err = c.templates.RenderTemplate("templates/image.tpl", map[string]any{
			"src": DataURI(contentType, upload.Data),
			"alt": slotTitle(slot) + " Letterhead",
		})
	case contentType == "application/pdf":
		data := map[string]any{"filename": upload.Filename}
		if slot == SlotHeader {
			data["label"] = "PDF Letterhead"
			data["hint"] = "PDF files will be displayed properly when printed"
		} else {
			data["label"] = "PDF Footer"
		}
		html, err = c.templates.RenderTemplate("templates/pdf.tpl", data)
	default:
		return Update{}, fmt.Errorf("%w: %s", ErrUnsupportedUpload, contentType)
	}
	if err != nil {
		return Update{}, fmt.Errorf("letterhead: render %s upload: %w", slot, err)
	}
	return SetSlot(slot, strings.TrimSpace(html)), nil
}

// AcceptsEmbed reports whether an upload's declared or sniffed type is an
// image or a PDF.
func AcceptsEmbed(upload Upload) bool {
	contentType := DetectContentType(upload)
	return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
}

// DetectContentType returns the upload's declared media type, sniffing the
// bytes when the declaration is missing or generic.
func DetectContentType(upload Upload) string {
	declared := mediaType(upload.ContentType)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if len(upload.Data) == 0 {
		return declared
	}
	return mediaType(mimetype.Detect(upload.Data).String())
}

// DataURI encodes data as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func slotTitle(slot Slot) string {
	if slot == SlotHeader {
		return "Header"
	}
	return "Footer"
}

func trimFields(f Fields) Fields {
	return Fields{
		DoctorName:         strings.TrimSpace(f.DoctorName),
		Qualifications:     strings.TrimSpace(f.Qualifications),
		Specialty:          strings.TrimSpace(f.Specialty),
		ClinicName:         strings.TrimSpace(f.ClinicName),
		Address:            strings.TrimSpace(f.Address),
		Phone:              strings.TrimSpace(f.Phone),
		Email:              strings.TrimSpace(f.Email),
		RegistrationNumber: strings.TrimSpace(f.RegistrationNumber),
		FooterText:         strings.TrimSpace(f.FooterText),
		EmergencyContact:   strings.TrimSpace(f.EmergencyContact),
		Website:            strings.TrimSpace(f.Website),
	}
}
