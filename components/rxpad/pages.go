package rxpad

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/goliatone/go-rxpad/pkg/export"
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/render"
	"github.com/goliatone/go-rxpad/pkg/renderers/document"
)

const appTemplate = "templates/app.tpl"

type selectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type formField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

var letterheadFormFields = []formField{
	{Name: "doctorName", Label: "Doctor Name"},
	{Name: "qualifications", Label: "Qualifications"},
	{Name: "specialty", Label: "Specialty"},
	{Name: "clinicName", Label: "Clinic Name"},
	{Name: "address", Label: "Address"},
	{Name: "phone", Label: "Phone"},
	{Name: "email", Label: "Email"},
	{Name: "registrationNumber", Label: "Registration Number"},
	{Name: "website", Label: "Website"},
	{Name: "emergencyContact", Label: "Emergency Contact"},
	{Name: "footerText", Label: "Footer Text"},
}

type appView struct {
	Title            string              `json:"title"`
	Data             prescription.Data   `json:"data"`
	Letterhead       letterhead.Template `json:"letterhead"`
	Stats            prescription.Stats  `json:"stats"`
	Genders          []string            `json:"genders"`
	DiagnosisTypes   []selectOption      `json:"diagnosisTypes"`
	LetterheadFields []formField         `json:"letterheadFields"`
}

func (s *server) handleApp(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	types := make([]selectOption, 0, len(prescription.DiagnosisTypes()))
	for _, t := range prescription.DiagnosisTypes() {
		types = append(types, selectOption{Value: string(t), Label: t.Title()})
	}

	out, err := s.pages.RenderTemplate(appTemplate, appView{
		Title:            s.opts.Title,
		Data:             snap.Prescription,
		Letterhead:       snap.Letterhead,
		Stats:            snap.Prescription.Stats(),
		Genders:          prescription.Genders(),
		DiagnosisTypes:   types,
		LetterheadFields: letterheadFormFields,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, []byte(out))
}

// handlePreview renders the current document. ?format= selects another
// registered renderer, e.g. "text".
func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = document.Name
	}
	renderer, err := s.renderers.Get(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := renderer.Render(r.Context(), s.document(), s.opts.renderOptions())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if renderer.Name() != document.Name {
		w.Header().Set("Content-Type", renderer.ContentType())
		_, _ = w.Write(out)
		return
	}
	page, err := s.exporter.Page(out)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, page)
}

func (s *server) handlePrintView(w http.ResponseWriter, r *http.Request) {
	markup, err := s.renderHTML(r, s.document())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.exporter.PrintView(markup)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, page)
}

func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	file, err := s.standaloneFile(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	if _, err := file.WriteTo(w); err != nil {
		s.logger.WarnContext(r.Context(), "download write failed", "error", err)
	}
}

func (s *server) handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(document.Stylesheet()))
}

func (s *server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapiDocument)
}

func (s *server) document() render.Document {
	snap := s.store.Snapshot()
	return render.NewDocument(snap.Prescription, snap.Letterhead)
}

func (s *server) renderHTML(r *http.Request, doc render.Document) ([]byte, error) {
	renderer, err := s.renderers.Get(document.Name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(r.Context(), doc, s.opts.renderOptions())
}

// standaloneFile names the file from the same snapshot it renders.
func (s *server) standaloneFile(r *http.Request) (export.File, error) {
	doc := s.document()
	markup, err := s.renderHTML(r, doc)
	if err != nil {
		return export.File{}, err
	}
	return s.exporter.Download(markup, doc.Prescription.Name)
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, err)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", export.ContentTypeHTML)
	_, _ = w.Write(body)
}

func contentDisposition(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
