package render_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/render"
	theme "github.com/goliatone/go-theme"
)

func fixedOptions() render.RenderOptions {
	return render.RenderOptions{
		Now: func() time.Time { return time.Date(2024, time.March, 9, 10, 30, 0, 0, time.UTC) },
	}
}

func TestBuildView_SampleScenario(t *testing.T) {
	view := render.BuildView(render.NewDocument(prescription.Sample(), letterhead.Template{}), fixedOptions())

	if view.Date != "3/9/2024" {
		t.Fatalf("date stamp: got %q", view.Date)
	}
	if view.Patient.Name != "John Smith" {
		t.Fatalf("patient name: got %q", view.Patient.Name)
	}
	if !view.ShowDiagnosis || view.Diagnosis.Title != "Definitive Diagnosis" {
		t.Fatalf("diagnosis section: %+v", view.Diagnosis)
	}

	wantDiagnoses := []render.OrdinalEntry{
		{Ordinal: "1", Text: "Hypertension (Essential)"},
		{Ordinal: "2", Text: "Type 2 Diabetes Mellitus with poor glycemic control"},
		{Ordinal: "3", Text: "Dyslipidemia"},
	}
	if diff := cmp.Diff(wantDiagnoses, view.Diagnosis.Items); diff != "" {
		t.Fatalf("diagnoses mismatch (-want +got):\n%s", diff)
	}

	if len(view.Medicines) != 3 {
		t.Fatalf("expected 3 medicines, got %d", len(view.Medicines))
	}
	for i, med := range view.Medicines {
		if med.Ordinal != []string{"1", "2", "3"}[i] {
			t.Fatalf("medicine %d ordinal: %q", i, med.Ordinal)
		}
		if med.Name == "" || med.Dosage == "" || med.Frequency == "" || med.Duration == "" || med.Instructions == "" {
			t.Fatalf("medicine %d missing sub-field: %+v", i, med)
		}
	}
	if len(view.Tests) != 3 {
		t.Fatalf("expected 3 tests, got %d", len(view.Tests))
	}

	if view.FollowUp == nil {
		t.Fatalf("expected follow-up section")
	}
	want := render.FollowUpView{
		Date:         "1/15/2024",
		Instructions: "Bring all medication bottles and blood pressure log",
	}
	if diff := cmp.Diff(want, *view.FollowUp); diff != "" {
		t.Fatalf("follow-up mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildView_ClearedData(t *testing.T) {
	view := render.BuildView(render.NewDocument(prescription.Empty(), letterhead.Template{}), fixedOptions())

	want := render.PatientView{
		Name:                "[Patient Name]",
		Age:                 "[Age]",
		Gender:              "[Gender]",
		MedicalRecordNumber: "[Medical Record Number]",
	}
	if diff := cmp.Diff(want, view.Patient); diff != "" {
		t.Fatalf("patient placeholders mismatch (-want +got):\n%s", diff)
	}
	if !view.ShowDiagnosis {
		t.Fatalf("diagnosis heading must always render")
	}
	if len(view.Diagnosis.Items) != 0 || view.Diagnosis.Empty != "No diagnoses added" {
		t.Fatalf("unexpected diagnosis view: %+v", view.Diagnosis)
	}
	if len(view.Medicines) != 0 || view.EmptyMedicines != "No medicines prescribed" {
		t.Fatalf("unexpected medicines view: %+v", view.Medicines)
	}
	if view.FollowUp != nil {
		t.Fatalf("follow-up should be omitted, got %+v", view.FollowUp)
	}
	if !view.Header.Placeholder || !view.Footer.Placeholder {
		t.Fatalf("empty letterhead slots should use placeholders")
	}
}

func TestBuildView_ZeroValueData(t *testing.T) {
	view := render.BuildView(render.Document{}, fixedOptions())
	if view.Diagnosis.Title != "Definitive Diagnosis" {
		t.Fatalf("zero data should default to definitive, got %q", view.Diagnosis.Title)
	}
	if view.Medicines == nil || view.Tests == nil {
		t.Fatalf("lists should be non-nil")
	}
}

func TestBuildView_PatientPlaceholdersAreIndependent(t *testing.T) {
	data := prescription.Empty()
	data.Age = "30"

	view := render.BuildView(render.NewDocument(data, letterhead.Template{}), fixedOptions())
	if view.Patient.Age != "30" || view.Patient.Name != "[Patient Name]" {
		t.Fatalf("unexpected patient view: %+v", view.Patient)
	}
}

func TestBuildView_LetterheadSlots(t *testing.T) {
	doc := render.NewDocument(prescription.Empty(), letterhead.Template{Header: "<h1>Clinic</h1>"})
	view := render.BuildView(doc, fixedOptions())

	if view.Header.Placeholder || view.Header.HTML != "<h1>Clinic</h1>" {
		t.Fatalf("header slot: %+v", view.Header)
	}
	if !view.Footer.Placeholder {
		t.Fatalf("footer should fall back to placeholder")
	}
}

func TestBuildView_FollowUpInstructionsOnly(t *testing.T) {
	data := prescription.Empty()
	data.FollowUpInstructions = "Return in two weeks"

	view := render.BuildView(render.NewDocument(data, letterhead.Template{}), fixedOptions())
	if view.FollowUp == nil || view.FollowUp.Date != "" {
		t.Fatalf("unexpected follow-up: %+v", view.FollowUp)
	}
}

func TestBuildView_DiagnosisTitles(t *testing.T) {
	cases := map[prescription.DiagnosisType]string{
		prescription.DiagnosisDefinitive:   "Definitive Diagnosis",
		prescription.DiagnosisProvisional:  "Provisional Diagnosis",
		prescription.DiagnosisDifferential: "Differential Diagnosis",
	}
	for tag, want := range cases {
		data := prescription.Empty()
		data.DiagnosisType = tag
		view := render.BuildView(render.NewDocument(data, letterhead.Template{}), fixedOptions())
		if view.Diagnosis.Title != want {
			t.Fatalf("%s: got %q want %q", tag, view.Diagnosis.Title, want)
		}
	}
}

func TestBuildView_DateLayoutAndLocation(t *testing.T) {
	opts := fixedOptions()
	opts.DateLayout = "02 Jan 2006"
	opts.Location = time.FixedZone("UTC-12", -12*60*60)

	data := prescription.Empty()
	data.FollowUpDate = "2024-01-15"

	view := render.BuildView(render.NewDocument(data, letterhead.Template{}), opts)
	if view.Date != "08 Mar 2024" {
		t.Fatalf("date stamp should use the viewer location, got %q", view.Date)
	}
	if view.FollowUp.Date != "15 Jan 2024" {
		t.Fatalf("follow-up date must not shift across zones, got %q", view.FollowUp.Date)
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, layout, want string
	}{
		{"2024-01-15", "", "1/15/2024"},
		{" 2024-12-01 ", "2006/01/02", "2024/12/01"},
		{"next tuesday", "", "next tuesday"},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := render.FormatDate(tc.in, tc.layout); got != tc.want {
			t.Fatalf("FormatDate(%q, %q) = %q, want %q", tc.in, tc.layout, got, tc.want)
		}
	}
}

func TestBuildView_Theme(t *testing.T) {
	opts := fixedOptions()
	opts.Theme = &theme.RendererConfig{
		Theme:   "clinic",
		Variant: "light",
		Tokens:  map[string]string{"accent": "#2563eb"},
		CSSVars: map[string]string{"--rx-font": "Georgia", "--rx-accent": "#2563eb"},
	}

	view := render.BuildView(render.Document{}, opts)
	want := render.ThemeView{
		Name:        "clinic",
		Variant:     "light",
		Tokens:      map[string]string{"accent": "#2563eb"},
		CSSVarsAttr: "--rx-accent: #2563eb; --rx-font: Georgia;",
	}
	if diff := cmp.Diff(want, view.Theme); diff != "" {
		t.Fatalf("theme mismatch (-want +got):\n%s", diff)
	}
}
