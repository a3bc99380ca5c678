package render

import (
	"sort"
	"strconv"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
)

// Placeholders shown for empty patient fields. They exist only in rendered
// output and are never stored.
const (
	PlaceholderPatientName   = "[Patient Name]"
	PlaceholderAge           = "[Age]"
	PlaceholderGender        = "[Gender]"
	PlaceholderRecordNumber  = "[Medical Record Number]"
	EmptyDiagnosesText       = "No diagnoses added"
	EmptyMedicinesText       = "No medicines prescribed"
	followUpInputDateLayout  = "2006-01-02"
	DocumentTitle            = "Prescription"
	SignatureLabel           = "Doctor's Signature"
	DefaultPlaceholderFooter = "This prescription is computer generated and does not require signature"
)

// View is the template-facing projection of a Document. Every value a
// template prints is already resolved here: placeholders substituted,
// ordinals numbered, dates formatted.
type View struct {
	Date                string         `json:"date"`
	Header              Letterhead     `json:"header"`
	Footer              Letterhead     `json:"footer"`
	Patient             PatientView    `json:"patient"`
	ShowDiagnosis       bool           `json:"showDiagnosis"`
	Diagnosis           DiagnosisView  `json:"diagnosis"`
	Medicines           []MedicineView `json:"medicines"`
	EmptyMedicines      string         `json:"emptyMedicines"`
	Tests               []TestView     `json:"tests"`
	GeneralInstructions string         `json:"generalInstructions"`
	FollowUp            *FollowUpView  `json:"followUp"`
	Signature           string         `json:"signature"`
	Theme               ThemeView      `json:"theme"`
}

// Letterhead is one rendered slot. When Placeholder is set the template
// prints its built-in block instead of HTML.
type Letterhead struct {
	HTML        string `json:"html"`
	Placeholder bool   `json:"placeholder"`
}

// PatientView holds display values with placeholders applied.
type PatientView struct {
	Name                string `json:"name"`
	Age                 string `json:"age"`
	Gender              string `json:"gender"`
	MedicalRecordNumber string `json:"mrNumber"`
}

// DiagnosisView is the diagnosis section.
type DiagnosisView struct {
	Title string         `json:"title"`
	Items []OrdinalEntry `json:"items"`
	Empty string         `json:"empty"`
}

// OrdinalEntry is a numbered line. Ordinal is a string so templates never
// deal with numeric formatting.
type OrdinalEntry struct {
	Ordinal string `json:"ordinal"`
	Text    string `json:"text"`
}

// MedicineView is one numbered medicine. Empty sub-fields stay empty and the
// template omits their lines.
type MedicineView struct {
	Ordinal      string `json:"ordinal"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// TestView is one numbered investigation.
type TestView struct {
	Ordinal      string `json:"ordinal"`
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// FollowUpView is present only when a follow-up date or instructions exist.
type FollowUpView struct {
	Date         string `json:"date"`
	Instructions string `json:"instructions"`
}

// ThemeView exposes resolved theme values to templates.
type ThemeView struct {
	Name        string            `json:"name"`
	Variant     string            `json:"variant"`
	Tokens      map[string]string `json:"tokens"`
	CSSVarsAttr string            `json:"cssVarsAttr"`
}

// BuildView projects doc into its display form.
func BuildView(doc Document, opts RenderOptions) View {
	data := doc.Prescription.Normalize()
	layout := opts.dateLayout()

	view := View{
		Date:   opts.now().Format(layout),
		Header: letterheadView(doc.Header),
		Footer: letterheadView(doc.Footer),
		Patient: PatientView{
			Name:                orPlaceholder(data.Name, PlaceholderPatientName),
			Age:                 orPlaceholder(data.Age, PlaceholderAge),
			Gender:              orPlaceholder(data.Gender, PlaceholderGender),
			MedicalRecordNumber: orPlaceholder(data.MedicalRecordNumber, PlaceholderRecordNumber),
		},
		// The diagnosis type is never empty after Normalize, so the section
		// always renders.
		ShowDiagnosis: len(data.Diagnoses) > 0 || data.DiagnosisType != "",
		Diagnosis: DiagnosisView{
			Title: data.DiagnosisType.Title(),
			Items: make([]OrdinalEntry, 0, len(data.Diagnoses)),
			Empty: EmptyDiagnosesText,
		},
		Medicines:           make([]MedicineView, 0, len(data.Medicines)),
		EmptyMedicines:      EmptyMedicinesText,
		Tests:               make([]TestView, 0, len(data.Tests)),
		GeneralInstructions: data.GeneralInstructions,
		Signature:           SignatureLabel,
		Theme:               themeView(opts.Theme),
	}

	for i, item := range data.Diagnoses {
		view.Diagnosis.Items = append(view.Diagnosis.Items, OrdinalEntry{
			Ordinal: ordinal(i),
			Text:    item.Text,
		})
	}
	for i, m := range data.Medicines {
		view.Medicines = append(view.Medicines, MedicineView{
			Ordinal:      ordinal(i),
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Duration:     m.Duration,
			Instructions: m.Instructions,
		})
	}
	for i, test := range data.Tests {
		view.Tests = append(view.Tests, TestView{
			Ordinal:      ordinal(i),
			Name:         test.Name,
			Instructions: test.Instructions,
		})
	}

	if data.FollowUpDate != "" || data.FollowUpInstructions != "" {
		view.FollowUp = &FollowUpView{
			Date:         FormatDate(data.FollowUpDate, layout),
			Instructions: data.FollowUpInstructions,
		}
	}

	return view
}

// FormatDate reformats an ISO calendar date with layout. The value is a
// calendar date, not an instant, so no time zone conversion applies. Values
// that do not parse are returned unchanged.
func FormatDate(value, layout string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	parsed, err := time.Parse(followUpInputDateLayout, trimmed)
	if err != nil {
		return value
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return parsed.Format(layout)
}

func letterheadView(html string) Letterhead {
	if html == "" {
		return Letterhead{Placeholder: true}
	}
	return Letterhead{HTML: html}
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func ordinal(index int) string {
	return strconv.Itoa(index + 1)
}

func themeView(cfg *theme.RendererConfig) ThemeView {
	if cfg == nil {
		return ThemeView{}
	}
	return ThemeView{
		Name:        cfg.Theme,
		Variant:     cfg.Variant,
		Tokens:      copyStringMap(cfg.Tokens),
		CSSVarsAttr: CSSVarsInline(cfg.CSSVars),
	}
}

// CSSVarsInline renders CSS custom properties as an inline style value, keys
// sorted for stable output.
func CSSVarsInline(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	return b.String()
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
