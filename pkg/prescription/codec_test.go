package prescription_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rxpad/pkg/prescription"
)

func TestFormatFromPath(t *testing.T) {
	cases := map[string]prescription.Format{
		"rx.json": prescription.FormatJSON,
		"RX.JSON": prescription.FormatJSON,
		"rx.yaml": prescription.FormatYAML,
		"rx.yml":  prescription.FormatYAML,
		"rx":      prescription.FormatYAML,
	}
	for in, want := range cases {
		if got := prescription.FormatFromPath(in); got != want {
			t.Fatalf("FormatFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecode_NormalisesPartialYAML(t *testing.T) {
	in := "patientName: Jane\nmedicines:\n  - id: m1\n    name: Amoxicillin\n"
	got, err := prescription.Decode(strings.NewReader(in), prescription.FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := prescription.Empty()
	want.Name = "Jane"
	want.Medicines = []prescription.Medicine{{ID: "m1", Name: "Amoxicillin"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_EmptyInputIsEmptyPrescription(t *testing.T) {
	got, err := prescription.Decode(strings.NewReader(""), prescription.FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(prescription.Empty(), got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_RejectsInvalidPayloads(t *testing.T) {
	cases := map[string]struct {
		input  string
		format prescription.Format
		want   error
	}{
		"broken json":        {input: "{", format: prescription.FormatJSON, want: prescription.ErrInvalidData},
		"duplicate ids":      {input: `{"tests":[{"id":"a"},{"id":"a"}]}`, format: prescription.FormatJSON, want: prescription.ErrInvalidData},
		"bad diagnosis type": {input: "diagnosisType: tentative\n", format: prescription.FormatYAML, want: prescription.ErrInvalidDiagnosisType},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := prescription.Decode(strings.NewReader(tc.input), tc.format)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"rx.yaml", "rx.json"} {
		path := filepath.Join(dir, name)
		if err := prescription.SaveFile(path, prescription.Sample()); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		got, err := prescription.LoadFile(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if diff := cmp.Diff(prescription.Sample(), got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestEncode_JSONUsesWireNames(t *testing.T) {
	var buf bytes.Buffer
	if err := prescription.Encode(&buf, prescription.Sample(), prescription.FormatJSON); err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, key := range []string{`"patientName"`, `"mrNumber"`, `"diagnosisList"`, `"followUpInstructions"`} {
		if !strings.Contains(buf.String(), key) {
			t.Fatalf("encoded JSON missing %s", key)
		}
	}
}
