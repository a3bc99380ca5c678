package testsupport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rxpad/pkg/prescription"
)

// LoadPrescription reads a YAML or JSON fixture into prescription.Data.
// Testing helpers fail the test on error to keep call sites concise.
func LoadPrescription(t *testing.T, path string) prescription.Data {
	t.Helper()

	data, err := LoadPrescriptionFromPath(path)
	if err != nil {
		t.Fatalf("load prescription: %v", err)
	}
	return data
}

// LoadPrescriptionFromPath returns prescription data without requiring
// testing.T, so setup functions can reuse it.
func LoadPrescriptionFromPath(path string) (prescription.Data, error) {
	if path == "" {
		return prescription.Data{}, errors.New("testsupport: prescription path is required")
	}
	return prescription.LoadFile(path)
}

// FixedClock returns a Now function pinned to t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ReferenceTime is the instant fixture renders are stamped with.
func ReferenceTime() time.Time {
	return time.Date(2024, time.March, 9, 10, 30, 0, 0, time.UTC)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
