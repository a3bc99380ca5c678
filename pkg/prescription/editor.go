package prescription

import (
	"fmt"
	"strings"
)

// Field names a scalar top-level field of Data.
type Field string

const (
	FieldPatientName          Field = "patientName"
	FieldPatientAge           Field = "patientAge"
	FieldPatientGender        Field = "patientGender"
	FieldMedicalRecordNumber  Field = "mrNumber"
	FieldGeneralInstructions  Field = "generalInstructions"
	FieldFollowUpDate         Field = "followUpDate"
	FieldFollowUpInstructions Field = "followUpInstructions"
)

// Fields lists every scalar field in form order.
func Fields() []Field {
	return []Field{
		FieldPatientName,
		FieldPatientAge,
		FieldPatientGender,
		FieldMedicalRecordNumber,
		FieldGeneralInstructions,
		FieldFollowUpDate,
		FieldFollowUpInstructions,
	}
}

// ParseField resolves a wire name onto a Field.
func ParseField(name string) (Field, error) {
	candidate := Field(strings.TrimSpace(name))
	for _, f := range Fields() {
		if f == candidate {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// MedicineField names an editable sub-field of Medicine.
type MedicineField string

const (
	MedicineName         MedicineField = "name"
	MedicineDosage       MedicineField = "dosage"
	MedicineFrequency    MedicineField = "frequency"
	MedicineDuration     MedicineField = "duration"
	MedicineInstructions MedicineField = "instructions"
)

// TestField names an editable sub-field of Test.
type TestField string

const (
	TestName         TestField = "name"
	TestInstructions TestField = "instructions"
)

// SetField returns a copy of d with exactly field replaced by value. Any string
// is accepted, including the empty string.
func SetField(d Data, field Field, value string) (Data, error) {
	out := d.Clone()
	switch field {
	case FieldPatientName:
		out.Name = value
	case FieldPatientAge:
		out.Age = value
	case FieldPatientGender:
		out.Gender = value
	case FieldMedicalRecordNumber:
		out.MedicalRecordNumber = value
	case FieldGeneralInstructions:
		out.GeneralInstructions = value
	case FieldFollowUpDate:
		out.FollowUpDate = value
	case FieldFollowUpInstructions:
		out.FollowUpInstructions = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// GetField reads a scalar field.
func GetField(d Data, field Field) (string, error) {
	switch field {
	case FieldPatientName:
		return d.Name, nil
	case FieldPatientAge:
		return d.Age, nil
	case FieldPatientGender:
		return d.Gender, nil
	case FieldMedicalRecordNumber:
		return d.MedicalRecordNumber, nil
	case FieldGeneralInstructions:
		return d.GeneralInstructions, nil
	case FieldFollowUpDate:
		return d.FollowUpDate, nil
	case FieldFollowUpInstructions:
		return d.FollowUpInstructions, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// SetDiagnosisType replaces the diagnosis type. Only the three known tags are
// accepted.
func SetDiagnosisType(d Data, t DiagnosisType) (Data, error) {
	if !t.Valid() {
		return d, fmt.Errorf("%w: %q", ErrInvalidDiagnosisType, t)
	}
	out := d.Clone()
	out.DiagnosisType = t
	return out, nil
}

// AppendMedicine appends an empty medicine carrying a fresh id.
func AppendMedicine(d Data, ids IDGenerator) Data {
	out := d.Clone()
	out.Medicines = append(out.Medicines, Medicine{ID: idsOrDefault(ids).NewID()})
	return out
}

// UpdateMedicine replaces one sub-field of the medicine with the given id. An
// id that matches nothing leaves the value unchanged.
func UpdateMedicine(d Data, id string, field MedicineField, value string) (Data, error) {
	if !validMedicineField(field) {
		return d, fmt.Errorf("%w: medicine %q", ErrUnknownField, field)
	}
	out := d.Clone()
	for i := range out.Medicines {
		if out.Medicines[i].ID != id {
			continue
		}
		m := &out.Medicines[i]
		switch field {
		case MedicineName:
			m.Name = value
		case MedicineDosage:
			m.Dosage = value
		case MedicineFrequency:
			m.Frequency = value
		case MedicineDuration:
			m.Duration = value
		case MedicineInstructions:
			m.Instructions = value
		}
	}
	return out, nil
}

// RemoveMedicine drops the medicine with the given id.
func RemoveMedicine(d Data, id string) Data {
	out := d.Clone()
	kept := out.Medicines[:0]
	for _, m := range out.Medicines {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	out.Medicines = kept
	return out
}

// HasMedicine reports whether a medicine with id exists.
func HasMedicine(d Data, id string) bool {
	for _, m := range d.Medicines {
		if m.ID == id {
			return true
		}
	}
	return false
}

// AppendTest appends an empty test carrying a fresh id.
func AppendTest(d Data, ids IDGenerator) Data {
	out := d.Clone()
	out.Tests = append(out.Tests, Test{ID: idsOrDefault(ids).NewID()})
	return out
}

// UpdateTest replaces one sub-field of the test with the given id.
func UpdateTest(d Data, id string, field TestField, value string) (Data, error) {
	if field != TestName && field != TestInstructions {
		return d, fmt.Errorf("%w: test %q", ErrUnknownField, field)
	}
	out := d.Clone()
	for i := range out.Tests {
		if out.Tests[i].ID != id {
			continue
		}
		if field == TestName {
			out.Tests[i].Name = value
		} else {
			out.Tests[i].Instructions = value
		}
	}
	return out, nil
}

// RemoveTest drops the test with the given id.
func RemoveTest(d Data, id string) Data {
	out := d.Clone()
	kept := out.Tests[:0]
	for _, t := range out.Tests {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	out.Tests = kept
	return out
}

// HasTest reports whether a test with id exists.
func HasTest(d Data, id string) bool {
	for _, t := range d.Tests {
		if t.ID == id {
			return true
		}
	}
	return false
}

// AddDiagnosis appends the trimmed text as a new diagnosis. Text that is empty
// after trimming is ignored; this is the only validation rule on the form.
func AddDiagnosis(d Data, ids IDGenerator, text string) Data {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return d.Clone()
	}
	out := d.Clone()
	out.Diagnoses = append(out.Diagnoses, DiagnosisItem{
		ID:   idsOrDefault(ids).NewID(),
		Text: trimmed,
	})
	return out
}

// UpdateDiagnosis replaces the text of the diagnosis with the given id.
func UpdateDiagnosis(d Data, id, text string) Data {
	out := d.Clone()
	for i := range out.Diagnoses {
		if out.Diagnoses[i].ID == id {
			out.Diagnoses[i].Text = text
		}
	}
	return out
}

// RemoveDiagnosis drops the diagnosis with the given id.
func RemoveDiagnosis(d Data, id string) Data {
	out := d.Clone()
	kept := out.Diagnoses[:0]
	for _, item := range out.Diagnoses {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	out.Diagnoses = kept
	return out
}

// HasDiagnosis reports whether a diagnosis with id exists.
func HasDiagnosis(d Data, id string) bool {
	for _, item := range d.Diagnoses {
		if item.ID == id {
			return true
		}
	}
	return false
}

// ParseMedicineField resolves a wire name onto a MedicineField.
func ParseMedicineField(name string) (MedicineField, error) {
	field := MedicineField(strings.TrimSpace(name))
	if !validMedicineField(field) {
		return "", fmt.Errorf("%w: medicine %q", ErrUnknownField, name)
	}
	return field, nil
}

// ParseTestField resolves a wire name onto a TestField.
func ParseTestField(name string) (TestField, error) {
	field := TestField(strings.TrimSpace(name))
	if field != TestName && field != TestInstructions {
		return "", fmt.Errorf("%w: test %q", ErrUnknownField, name)
	}
	return field, nil
}

func validMedicineField(field MedicineField) bool {
	switch field {
	case MedicineName, MedicineDosage, MedicineFrequency, MedicineDuration, MedicineInstructions:
		return true
	}
	return false
}
