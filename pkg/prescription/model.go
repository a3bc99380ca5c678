package prescription

import (
	"fmt"
	"strings"
)

// DiagnosisType classifies the clinical certainty of the diagnosis list and
// controls the printed section heading.
type DiagnosisType string

const (
	DiagnosisDefinitive   DiagnosisType = "definitive"
	DiagnosisProvisional  DiagnosisType = "provisional"
	DiagnosisDifferential DiagnosisType = "differential"
)

// DiagnosisTypes lists the valid tags in display order.
func DiagnosisTypes() []DiagnosisType {
	return []DiagnosisType{DiagnosisDefinitive, DiagnosisProvisional, DiagnosisDifferential}
}

// ParseDiagnosisType maps a raw tag onto a DiagnosisType.
func ParseDiagnosisType(raw string) (DiagnosisType, error) {
	candidate := DiagnosisType(strings.ToLower(strings.TrimSpace(raw)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDiagnosisType, raw)
}

// Valid reports whether t is one of the three known tags.
func (t DiagnosisType) Valid() bool {
	switch t {
	case DiagnosisDefinitive, DiagnosisProvisional, DiagnosisDifferential:
		return true
	}
	return false
}

// Title returns the section heading printed for the diagnosis list.
func (t DiagnosisType) Title() string {
	switch t {
	case DiagnosisDefinitive:
		return "Definitive Diagnosis"
	case DiagnosisProvisional:
		return "Provisional Diagnosis"
	case DiagnosisDifferential:
		return "Differential Diagnosis"
	}
	return "Diagnosis"
}

// Patient holds the free-text patient fields. Empty means unset.
type Patient struct {
	Name                string `json:"patientName" yaml:"patientName"`
	Age                 string `json:"patientAge" yaml:"patientAge"`
	Gender              string `json:"patientGender" yaml:"patientGender"`
	MedicalRecordNumber string `json:"mrNumber" yaml:"mrNumber"`
}

// DiagnosisItem is one entry of the ordered diagnosis list.
type DiagnosisItem struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Medicine is one prescribed medicine. Position in Data.Medicines determines
// the printed ordinal.
type Medicine struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Dosage       string `json:"dosage" yaml:"dosage"`
	Frequency    string `json:"frequency" yaml:"frequency"`
	Duration     string `json:"duration" yaml:"duration"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

// Test is one ordered investigation.
type Test struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

// Data is the prescription aggregate root.
type Data struct {
	Patient `yaml:",inline"`

	DiagnosisType        DiagnosisType   `json:"diagnosisType" yaml:"diagnosisType"`
	Diagnoses            []DiagnosisItem `json:"diagnosisList" yaml:"diagnosisList"`
	Medicines            []Medicine      `json:"medicines" yaml:"medicines"`
	Tests                []Test          `json:"tests" yaml:"tests"`
	GeneralInstructions  string          `json:"generalInstructions" yaml:"generalInstructions"`
	FollowUpDate         string          `json:"followUpDate" yaml:"followUpDate"`
	FollowUpInstructions string          `json:"followUpInstructions" yaml:"followUpInstructions"`
}

// Stats summarises the list sizes shown beneath the editor.
type Stats struct {
	Medicines int `json:"medicines"`
	Tests     int `json:"tests"`
	Diagnoses int `json:"diagnoses"`
}

// Empty returns the all-empty prescription with the default diagnosis type.
func Empty() Data {
	return Data{
		DiagnosisType: DiagnosisDefinitive,
		Diagnoses:     []DiagnosisItem{},
		Medicines:     []Medicine{},
		Tests:         []Test{},
	}
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := d
	out.Diagnoses = append(make([]DiagnosisItem, 0, len(d.Diagnoses)), d.Diagnoses...)
	out.Medicines = append(make([]Medicine, 0, len(d.Medicines)), d.Medicines...)
	out.Tests = append(make([]Test, 0, len(d.Tests)), d.Tests...)
	return out
}

// Normalize returns a total copy of d: nil slices become empty and a missing
// diagnosis type becomes the default. Decoded payloads go through here before
// they reach the store.
func (d Data) Normalize() Data {
	out := d.Clone()
	if out.DiagnosisType == "" {
		out.DiagnosisType = DiagnosisDefinitive
	}
	return out
}

// Validate reports structural problems that the typed editor would never
// produce but a decoded payload can: an unknown diagnosis type or duplicate
// element ids.
func (d Data) Validate() error {
	if !d.DiagnosisType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDiagnosisType, d.DiagnosisType)
	}
	seen := make(map[string]struct{})
	check := func(kind, id string) error {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: %s without id", ErrInvalidData, kind)
		}
		key := kind + ":" + id
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidData, kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}
	for _, item := range d.Diagnoses {
		if err := check("diagnosis", item.ID); err != nil {
			return err
		}
	}
	for _, item := range d.Medicines {
		if err := check("medicine", item.ID); err != nil {
			return err
		}
	}
	for _, item := range d.Tests {
		if err := check("test", item.ID); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns the list counts.
func (d Data) Stats() Stats {
	return Stats{
		Medicines: len(d.Medicines),
		Tests:     len(d.Tests),
		Diagnoses: len(d.Diagnoses),
	}
}
