package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ContentTypeHTML is the media type of every exported file.
const ContentTypeHTML = "text/html; charset=utf-8"

// File is a standalone export ready to be served or written.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

var _ io.WriterTo = File{}

// WriteTo writes the file body to w.
func (f File) WriteTo(w io.Writer) (int64, error) {
	return io.Copy(w, bytes.NewReader(f.Body))
}

// Save writes the file into dir and returns its path. Missing directories
// are created. Name stays verbatim for downloads; on disk path separators
// become underscores so the file always lands directly inside dir.
func (f File) Save(dir string) (string, error) {
	name, err := diskName(f.Name)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, f.Body, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}

func diskName(name string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	switch strings.TrimSpace(cleaned) {
	case "", ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return cleaned, nil
}
