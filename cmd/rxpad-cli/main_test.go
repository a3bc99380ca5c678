package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// writeConfig keeps exported files inside the test directory.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "rxpad.yaml", "export:\n  dir: "+dir+"\nlog:\n  level: error\n")
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sample.yaml")
	if err := prescription.SaveFile(path, prescription.Sample()); err != nil {
		t.Fatalf("save sample: %v", err)
	}
	return path
}

func TestRun_Usage(t *testing.T) {
	_, stderr, err := runCLI(t)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr, "usage: rxpad-cli") {
		t.Fatalf("usage not printed: %q", stderr)
	}

	_, _, err = runCLI(t, "frobnicate")
	if err == nil || !strings.Contains(err.Error(), `unknown command "frobnicate"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_SampleRoundTrip(t *testing.T) {
	stdout, _, err := runCLI(t, "sample")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	got, err := prescription.Decode(strings.NewReader(stdout), prescription.FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(prescription.Sample(), got); diff != "" {
		t.Fatalf("sample mismatch (-want +got):\n%s", diff)
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "sample.json")
	if _, _, err := runCLI(t, "sample", "-output", out); err != nil {
		t.Fatalf("sample -output: %v", err)
	}
	loaded, err := prescription.LoadFile(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "John Smith" {
		t.Fatalf("unexpected patient %q", loaded.Name)
	}
}

func TestRun_RenderFormats(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	input := writeSample(t, dir)

	text, _, err := runCLI(t, "render", "-config", cfg, "-input", input, "-format", "text")
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	if !strings.Contains(text, "John Smith") || strings.Contains(text, "<") {
		t.Fatalf("unexpected text output:\n%s", text)
	}

	page, _, err := runCLI(t, "render", "-config", cfg, "-input", input, "-default-letterhead")
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(page, "<html") || !strings.Contains(page, "John Smith") {
		t.Fatalf("expected standalone page, got:\n%s", page)
	}

	out := filepath.Join(dir, "fragment.html")
	if _, _, err := runCLI(t, "render", "-config", cfg, "-input", input, "-format", "fragment", "-output", out); err != nil {
		t.Fatalf("render fragment: %v", err)
	}
	fragment, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read fragment: %v", err)
	}
	if strings.Contains(string(fragment), "<html") {
		t.Fatalf("fragment should not carry the page shell")
	}

	if _, _, err := runCLI(t, "render", "-config", cfg, "-format", "pdf"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestRun_RenderWithLetterheadFields(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	fields := writeFile(t, dir, "fields.yaml", "doctorName: Dr. Ada Byron\nclinicName: Engine Clinic\n")

	page, _, err := runCLI(t, "render", "-config", cfg, "-letterhead-fields", fields)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(page, "Dr. Ada Byron") {
		t.Fatalf("letterhead not composed into page")
	}
}

func TestRun_Download(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	input := writeSample(t, dir)
	target := filepath.Join(dir, "out")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	stdout, _, err := runCLI(t, "download", "-config", cfg, "-input", input, "-dir", target)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	want := filepath.Join(target, "prescription-John Smith.html")
	if got := strings.TrimSpace(stdout); got != want {
		t.Fatalf("path: want %q, got %q", want, got)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("file not written: %v", err)
	}
}

func TestRun_PrintFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	input := writeSample(t, dir)

	stdout, stderr, err := runCLI(t, "print", "-config", cfg, "-input", input, "-command", "rxpad-missing-print-command")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(stderr, "printing unavailable") {
		t.Fatalf("expected fallback notice, got %q", stderr)
	}
	path := strings.TrimSpace(stdout)
	if filepath.Dir(path) != dir {
		t.Fatalf("fallback saved outside export dir: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("fallback file missing: %v", err)
	}
}

func TestRun_Letterhead(t *testing.T) {
	if _, _, err := runCLI(t, "letterhead"); err == nil {
		t.Fatalf("expected missing -fields error")
	}

	dir := t.TempDir()
	fields := writeFile(t, dir, "fields.yaml", "doctorName: Dr. Ada Byron\nfooterText: Open weekdays\n")
	stdout, _, err := runCLI(t, "letterhead", "-fields", fields)
	if err != nil {
		t.Fatalf("letterhead: %v", err)
	}
	var head letterhead.Template
	if err := yaml.Unmarshal([]byte(stdout), &head); err != nil {
		t.Fatalf("decode letterhead: %v", err)
	}
	if !strings.Contains(head.Header, "Dr. Ada Byron") || !strings.Contains(head.Footer, "Open weekdays") {
		t.Fatalf("unexpected letterhead: %+v", head)
	}
}

func TestRun_Themes(t *testing.T) {
	stdout, _, err := runCLI(t, "themes")
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	if strings.TrimSpace(stdout) == "" {
		t.Fatalf("expected at least one theme")
	}
}
