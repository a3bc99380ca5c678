package prescription

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a prescription file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks JSON for ".json" files and YAML for anything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads one prescription, normalises it, and rejects structurally
// invalid payloads.
func Decode(r io.Reader, format Format) (Data, error) {
	var out Data
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&out)
	case FormatYAML, "":
		err = yaml.NewDecoder(r).Decode(&out)
		if err == io.EOF {
			err = nil
		}
	default:
		return Data{}, fmt.Errorf("prescription: unknown format %q", format)
	}
	if err != nil {
		return Data{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	out = out.Normalize()
	if err := out.Validate(); err != nil {
		return Data{}, err
	}
	return out, nil
}

// Encode writes d in the given format.
func Encode(w io.Writer, d Data, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("prescription: unknown format %q", format)
}

// LoadFile decodes the prescription stored at path.
func LoadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("prescription: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, FormatFromPath(path))
}

// SaveFile writes d to path, choosing the format from the extension.
func SaveFile(path string, d Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("prescription: create %s: %w", path, err)
	}
	if err := Encode(f, d, FormatFromPath(path)); err != nil {
		f.Close()
		return fmt.Errorf("prescription: write %s: %w", path, err)
	}
	return f.Close()
}
