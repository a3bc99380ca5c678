package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-rxpad/pkg/prescription"
)

// Menu actions offered by the list editing loop, in display order.
const (
	ActionAddDiagnosis    = "Add diagnosis"
	ActionAddMedicine     = "Add medicine"
	ActionAddTest         = "Add test"
	ActionRemoveDiagnosis = "Remove diagnosis"
	ActionRemoveMedicine  = "Remove medicine"
	ActionRemoveTest      = "Remove test"
	ActionDone            = "Done"
)

const genderUnset = "(not specified)"

// Option configures an Editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver used by the editor.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithIDGenerator overrides the id source for new list items.
func WithIDGenerator(ids prescription.IDGenerator) Option {
	return func(e *Editor) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// Editor walks a prescription through terminal prompts. Every change goes
// through the prescription editor operations, so the result obeys the same
// rules as edits made over HTTP.
type Editor struct {
	driver PromptDriver
	ids    prescription.IDGenerator
}

// NewEditor constructs an Editor backed by survey unless a driver is given.
func NewEditor(options ...Option) *Editor {
	e := &Editor{
		driver: NewSurveyDriver(nil),
		ids:    prescription.UUIDGenerator{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Edit prompts for every part of the prescription, using the values in data
// as defaults, and returns the edited copy. data itself is not modified.
func (e *Editor) Edit(ctx context.Context, data prescription.Data) (prescription.Data, error) {
	d := data.Normalize()
	var err error

	if d, err = e.editPatient(ctx, d); err != nil {
		return data, err
	}
	if d, err = e.editDiagnosisType(ctx, d); err != nil {
		return data, err
	}
	if d, err = e.editLists(ctx, d); err != nil {
		return data, err
	}
	if d, err = e.editInstructions(ctx, d); err != nil {
		return data, err
	}
	return d, nil
}

func (e *Editor) editPatient(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	inputs := []struct {
		field   prescription.Field
		message string
	}{
		{prescription.FieldPatientName, "Patient name"},
		{prescription.FieldPatientAge, "Age"},
	}
	for _, in := range inputs {
		current, _ := prescription.GetField(d, in.field)
		value, err := e.driver.Input(ctx, InputConfig{Message: in.message, Default: current})
		if err != nil {
			return d, err
		}
		if d, err = prescription.SetField(d, in.field, value); err != nil {
			return d, err
		}
	}

	options := append([]string{genderUnset}, prescription.Genders()...)
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Gender",
		Options:      options,
		DefaultIndex: max(indexOf(options, d.Gender), 0),
	})
	if err != nil {
		return d, err
	}
	gender := ""
	if idx > 0 && idx < len(options) {
		gender = options[idx]
	}
	if d, err = prescription.SetField(d, prescription.FieldPatientGender, gender); err != nil {
		return d, err
	}

	mr, err := e.driver.Input(ctx, InputConfig{Message: "Medical record number", Default: d.MedicalRecordNumber})
	if err != nil {
		return d, err
	}
	return prescription.SetField(d, prescription.FieldMedicalRecordNumber, mr)
}

func (e *Editor) editDiagnosisType(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	types := prescription.DiagnosisTypes()
	options := make([]string, len(types))
	current := 0
	for i, t := range types {
		options[i] = t.Title()
		if t == d.DiagnosisType {
			current = i
		}
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      "Diagnosis type",
		Options:      options,
		DefaultIndex: current,
	})
	if err != nil {
		return d, err
	}
	if idx < 0 || idx >= len(types) {
		return d, nil
	}
	return prescription.SetDiagnosisType(d, types[idx])
}

func (e *Editor) editLists(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	for {
		if err := e.driver.Info(ctx, summary(d)); err != nil {
			return d, err
		}

		options := e.menu(d)
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:      "Diagnoses, medicines and tests",
			Options:      options,
			DefaultIndex: len(options) - 1,
		})
		if err != nil {
			return d, err
		}
		if idx < 0 || idx >= len(options) {
			return d, nil
		}

		switch options[idx] {
		case ActionAddDiagnosis:
			d, err = e.addDiagnosis(ctx, d)
		case ActionAddMedicine:
			d, err = e.addMedicine(ctx, d)
		case ActionAddTest:
			d, err = e.addTest(ctx, d)
		case ActionRemoveDiagnosis:
			d, err = e.removeDiagnosis(ctx, d)
		case ActionRemoveMedicine:
			d, err = e.removeMedicine(ctx, d)
		case ActionRemoveTest:
			d, err = e.removeTest(ctx, d)
		case ActionDone:
			return d, nil
		}
		if err != nil {
			return d, err
		}
	}
}

func (e *Editor) menu(d prescription.Data) []string {
	options := []string{ActionAddDiagnosis, ActionAddMedicine, ActionAddTest}
	if len(d.Diagnoses) > 0 {
		options = append(options, ActionRemoveDiagnosis)
	}
	if len(d.Medicines) > 0 {
		options = append(options, ActionRemoveMedicine)
	}
	if len(d.Tests) > 0 {
		options = append(options, ActionRemoveTest)
	}
	return append(options, ActionDone)
}

func (e *Editor) addDiagnosis(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	text, err := e.driver.Input(ctx, InputConfig{Message: "Diagnosis"})
	if err != nil {
		return d, err
	}
	before := len(d.Diagnoses)
	d = prescription.AddDiagnosis(d, e.ids, text)
	if len(d.Diagnoses) == before {
		return d, e.driver.Info(ctx, "Empty diagnosis ignored.")
	}
	return d, nil
}

func (e *Editor) addMedicine(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	d = prescription.AppendMedicine(d, e.ids)
	id := d.Medicines[len(d.Medicines)-1].ID

	prompts := []struct {
		field   prescription.MedicineField
		message string
		help    string
	}{
		{prescription.MedicineName, "Medicine name", ""},
		{prescription.MedicineDosage, "Dosage", "e.g. 500mg"},
		{prescription.MedicineFrequency, "Frequency", "e.g. Twice daily"},
		{prescription.MedicineDuration, "Duration", "e.g. 7 days"},
		{prescription.MedicineInstructions, "Instructions", "e.g. Take after meals"},
	}
	for _, p := range prompts {
		value, err := e.driver.Input(ctx, InputConfig{Message: p.message, Help: p.help})
		if err != nil {
			return d, err
		}
		if d, err = prescription.UpdateMedicine(d, id, p.field, value); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (e *Editor) addTest(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	d = prescription.AppendTest(d, e.ids)
	id := d.Tests[len(d.Tests)-1].ID

	name, err := e.driver.Input(ctx, InputConfig{Message: "Test name"})
	if err != nil {
		return d, err
	}
	if d, err = prescription.UpdateTest(d, id, prescription.TestName, name); err != nil {
		return d, err
	}
	instructions, err := e.driver.Input(ctx, InputConfig{Message: "Test instructions", Help: "e.g. Fasting required"})
	if err != nil {
		return d, err
	}
	return prescription.UpdateTest(d, id, prescription.TestInstructions, instructions)
}

func (e *Editor) removeDiagnosis(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	labels := make([]string, len(d.Diagnoses))
	for i, item := range d.Diagnoses {
		labels[i] = fmt.Sprintf("%d. %s", i+1, item.Text)
	}
	idx, err := e.pick(ctx, "Remove which diagnosis?", labels)
	if err != nil || idx < 0 {
		return d, err
	}
	return prescription.RemoveDiagnosis(d, d.Diagnoses[idx].ID), nil
}

func (e *Editor) removeMedicine(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	labels := make([]string, len(d.Medicines))
	for i, m := range d.Medicines {
		labels[i] = fmt.Sprintf("%d. %s", i+1, labelOr(m.Name, "Medicine"))
	}
	idx, err := e.pick(ctx, "Remove which medicine?", labels)
	if err != nil || idx < 0 {
		return d, err
	}
	return prescription.RemoveMedicine(d, d.Medicines[idx].ID), nil
}

func (e *Editor) removeTest(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	labels := make([]string, len(d.Tests))
	for i, test := range d.Tests {
		labels[i] = fmt.Sprintf("%d. %s", i+1, labelOr(test.Name, "Test"))
	}
	idx, err := e.pick(ctx, "Remove which test?", labels)
	if err != nil || idx < 0 {
		return d, err
	}
	return prescription.RemoveTest(d, d.Tests[idx].ID), nil
}

func (e *Editor) pick(ctx context.Context, message string, labels []string) (int, error) {
	idx, err := e.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(labels) {
		return -1, nil
	}
	return idx, nil
}

func (e *Editor) editInstructions(ctx context.Context, d prescription.Data) (prescription.Data, error) {
	general, err := e.driver.TextArea(ctx, TextAreaConfig{
		Message: "General instructions",
		Default: d.GeneralInstructions,
	})
	if err != nil {
		return d, err
	}
	if d, err = prescription.SetField(d, prescription.FieldGeneralInstructions, strings.TrimRight(general, "\n")); err != nil {
		return d, err
	}

	date, err := e.driver.Input(ctx, InputConfig{
		Message:   "Follow-up date",
		Help:      "YYYY-MM-DD, leave blank for none",
		Default:   d.FollowUpDate,
		Validator: validateDate,
	})
	if err != nil {
		return d, err
	}
	if d, err = prescription.SetField(d, prescription.FieldFollowUpDate, strings.TrimSpace(date)); err != nil {
		return d, err
	}

	instructions, err := e.driver.Input(ctx, InputConfig{
		Message: "Follow-up instructions",
		Default: d.FollowUpInstructions,
	})
	if err != nil {
		return d, err
	}
	return prescription.SetField(d, prescription.FieldFollowUpInstructions, instructions)
}

func validateDate(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func summary(d prescription.Data) string {
	stats := d.Stats()
	return fmt.Sprintf("Medicines: %d  Tests: %d  Diagnoses: %d", stats.Medicines, stats.Tests, stats.Diagnoses)
}

func labelOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
