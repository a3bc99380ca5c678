package letterhead_test

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-rxpad/pkg/letterhead"
)

// Smallest valid PNG header; enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestCompose_DoctorNameOnly(t *testing.T) {
	composer := newComposer(t)

	tpl, err := composer.Compose(letterhead.Fields{DoctorName: "Dr. A"})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(tpl.Header, ">Dr. A</h1>") {
		t.Fatalf("header missing doctor line: %q", tpl.Header)
	}
	for _, unwanted := range []string{"Phone:", "Email:", "|", "Reg. No", "<p"} {
		if strings.Contains(tpl.Header, unwanted) {
			t.Fatalf("header contains %q: %q", unwanted, tpl.Header)
		}
	}
	if !strings.Contains(tpl.Footer, letterhead.DefaultFooterText) {
		t.Fatalf("footer should fall back to default text: %q", tpl.Footer)
	}
	if strings.Contains(tpl.Footer, "emergencies") || strings.Contains(tpl.Footer, "Visit us") {
		t.Fatalf("footer contains empty labelled lines: %q", tpl.Footer)
	}
}

func TestCompose_PhoneEmailSeparator(t *testing.T) {
	composer := newComposer(t)

	cases := []struct {
		name    string
		fields  letterhead.Fields
		want    []string
		notWant []string
	}{
		{
			name:    "phone only",
			fields:  letterhead.Fields{Phone: "555-1234"},
			want:    []string{"Phone: 555-1234"},
			notWant: []string{"|", "Email:"},
		},
		{
			name:    "email only",
			fields:  letterhead.Fields{Email: "a@b.c"},
			want:    []string{"Email: a@b.c"},
			notWant: []string{"|", "Phone:"},
		},
		{
			name:   "both",
			fields: letterhead.Fields{Phone: "555-1234", Email: "a@b.c"},
			want:   []string{"Phone: 555-1234 | Email: a@b.c"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tpl, err := composer.Compose(tc.fields)
			if err != nil {
				t.Fatalf("compose: %v", err)
			}
			for _, w := range tc.want {
				if !strings.Contains(tpl.Header, w) {
					t.Fatalf("header missing %q: %q", w, tpl.Header)
				}
			}
			for _, nw := range tc.notWant {
				if strings.Contains(tpl.Header, nw) {
					t.Fatalf("header contains %q: %q", nw, tpl.Header)
				}
			}
		})
	}
}

func TestCompose_FullFormAndEscaping(t *testing.T) {
	composer := newComposer(t)

	tpl, err := composer.Compose(letterhead.Fields{
		DoctorName:         "Dr. John Smith",
		Qualifications:     "MBBS, MD",
		Specialty:          "Internal Medicine",
		ClinicName:         "Smith <Medical> Center",
		Address:            "123 Healthcare Ave",
		RegistrationNumber: "<script>alert(1)</script>",
		FooterText:         "Thanks",
		EmergencyContact:   "+1 (555) 911-HELP",
		Website:            "www.smithmedical.com",
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	for _, want := range []string{
		"MBBS, MD - Internal Medicine",
		"Smith &lt;Medical&gt; Center",
		"123 Healthcare Ave",
		"Reg. No: &lt;script&gt;",
	} {
		if !strings.Contains(tpl.Header, want) {
			t.Fatalf("header missing %q: %q", want, tpl.Header)
		}
	}
	if strings.Contains(tpl.Header, "<script>") {
		t.Fatalf("field markup was not escaped: %q", tpl.Header)
	}
	for _, want := range []string{"Thanks", "For emergencies, call: +1 (555) 911-HELP", "Visit us at: www.smithmedical.com"} {
		if !strings.Contains(tpl.Footer, want) {
			t.Fatalf("footer missing %q: %q", want, tpl.Footer)
		}
	}
	if strings.Contains(tpl.Footer, letterhead.DefaultFooterText) {
		t.Fatalf("custom footer text should replace the default")
	}
}

func TestCompose_SpecialtyNeedsQualifications(t *testing.T) {
	composer := newComposer(t)
	tpl, err := composer.Compose(letterhead.Fields{Specialty: "Cardiology"})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if strings.Contains(tpl.Header, "Cardiology") {
		t.Fatalf("specialty should only print after qualifications: %q", tpl.Header)
	}
}

func TestEmbed_Image(t *testing.T) {
	composer := newComposer(t)

	update, err := composer.Embed(letterhead.SlotHeader, letterhead.Upload{
		Filename:    "logo.png",
		ContentType: "image/png",
		Data:        pngBytes,
	})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if update.Header == nil || update.Footer != nil {
		t.Fatalf("expected header-only update: %+v", update)
	}
	wantSrc := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	if !strings.Contains(*update.Header, wantSrc) {
		t.Fatalf("header missing data uri: %q", *update.Header)
	}
	if !strings.Contains(*update.Header, `alt="Header Letterhead"`) {
		t.Fatalf("header missing alt text: %q", *update.Header)
	}
}

func TestEmbed_SniffsMissingContentType(t *testing.T) {
	composer := newComposer(t)

	update, err := composer.Embed(letterhead.SlotFooter, letterhead.Upload{
		Filename:    "footer",
		ContentType: "application/octet-stream",
		Data:        pngBytes,
	})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if update.Footer == nil || !strings.Contains(*update.Footer, "data:image/png;base64,") {
		t.Fatalf("expected sniffed png footer, got %+v", update)
	}
	if !strings.Contains(*update.Footer, `alt="Footer Letterhead"`) {
		t.Fatalf("footer missing alt text: %q", *update.Footer)
	}
}

func TestEmbed_PDFRendersLabelOnly(t *testing.T) {
	composer := newComposer(t)
	pdf := []byte("%PDF-1.4\n%fake\n")

	header, err := composer.Embed(letterhead.SlotHeader, letterhead.Upload{Filename: "head<1>.pdf", ContentType: "application/pdf", Data: pdf})
	if err != nil {
		t.Fatalf("embed header: %v", err)
	}
	if !strings.Contains(*header.Header, "PDF Letterhead: head&lt;1&gt;.pdf") {
		t.Fatalf("unexpected header pdf block: %q", *header.Header)
	}
	if !strings.Contains(*header.Header, "displayed properly when printed") {
		t.Fatalf("header pdf block missing hint: %q", *header.Header)
	}
	if strings.Contains(*header.Header, "base64") {
		t.Fatalf("pdf block should not inline the file")
	}

	footer, err := composer.Embed(letterhead.SlotFooter, letterhead.Upload{Filename: "foot.pdf", ContentType: "application/pdf", Data: pdf})
	if err != nil {
		t.Fatalf("embed footer: %v", err)
	}
	if !strings.Contains(*footer.Footer, "PDF Footer: foot.pdf") {
		t.Fatalf("unexpected footer pdf block: %q", *footer.Footer)
	}
}

func TestEmbed_Errors(t *testing.T) {
	composer := newComposer(t)

	if _, err := composer.Embed(letterhead.SlotHeader, letterhead.Upload{Filename: "a.txt", ContentType: "text/plain", Data: []byte("hi")}); !errors.Is(err, letterhead.ErrUnsupportedUpload) {
		t.Fatalf("expected ErrUnsupportedUpload, got %v", err)
	}
	if _, err := composer.Embed(letterhead.SlotHeader, letterhead.Upload{Filename: "a.png", ContentType: "image/png"}); !errors.Is(err, letterhead.ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
	if _, err := composer.Embed(letterhead.Slot("side"), letterhead.Upload{Data: pngBytes}); !errors.Is(err, letterhead.ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}

func TestSanitizer(t *testing.T) {
	s := letterhead.NewSanitizer()

	got := s.Sanitize(`<h1 onclick="steal()">Dr. A</h1><script>alert(1)</script>`)
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Fatalf("active content survived: %q", got)
	}
	if !strings.Contains(got, "<h1>Dr. A</h1>") {
		t.Fatalf("layout markup stripped: %q", got)
	}

	header := "<p>ok</p><script>x</script>"
	cleaned := s.SanitizeUpdate(letterhead.Update{Header: &header})
	if cleaned.Footer != nil || cleaned.Header == nil || strings.Contains(*cleaned.Header, "script") {
		t.Fatalf("unexpected sanitized update: %+v", cleaned)
	}
}

func newComposer(t *testing.T) *letterhead.Composer {
	t.Helper()
	composer, err := letterhead.NewComposer()
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	return composer
}

func TestAcceptsEmbed(t *testing.T) {
	cases := []struct {
		name   string
		upload letterhead.Upload
		want   bool
		ctype  string
	}{
		{"declared image", letterhead.Upload{ContentType: "image/jpeg; charset=binary"}, true, "image/jpeg"},
		{"declared pdf", letterhead.Upload{ContentType: "application/pdf"}, true, "application/pdf"},
		{"sniffed png", letterhead.Upload{ContentType: "application/octet-stream", Data: pngBytes}, true, "image/png"},
		{"text", letterhead.Upload{ContentType: "text/plain", Data: []byte("hello")}, false, "text/plain"},
		{"nothing", letterhead.Upload{}, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := letterhead.DetectContentType(tc.upload); got != tc.ctype {
				t.Fatalf("content type: want %q, got %q", tc.ctype, got)
			}
			if got := letterhead.AcceptsEmbed(tc.upload); got != tc.want {
				t.Fatalf("accepts: want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTemplatesFS_UsesTemplatesPrefix(t *testing.T) {
	for _, name := range []string{"header", "footer", "image", "pdf"} {
		if _, err := fs.Stat(letterhead.TemplatesFS(), "templates/"+name+".tpl"); err != nil {
			t.Fatalf("templates/%s.tpl: %v", name, err)
		}
	}
}
