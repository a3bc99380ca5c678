package letterhead

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// Classify routes raw HTML to a slot: content mentioning "header" or "doctor"
// (case-insensitive) is a header, anything else a footer. This is a
// best-effort heuristic with no correction step; a misrouted file has to be
// re-uploaded or edited by hand.
func Classify(content string) Slot {
	folded := strings.ToLower(content)
	if strings.Contains(folded, "header") || strings.Contains(folded, "doctor") {
		return SlotHeader
	}
	return SlotFooter
}

// AcceptsHTML reports whether a file is eligible for raw HTML ingestion.
func AcceptsHTML(filename, contentType string) bool {
	if mediaType(contentType) == "text/html" {
		return true
	}
	return strings.EqualFold(path.Ext(filename), ".html")
}

// IngestHTML reads an HTML file and returns the update for the slot chosen by
// Classify.
func IngestHTML(r io.Reader) (Update, Slot, error) {
	if r == nil {
		return Update{}, "", fmt.Errorf("letterhead: read html: nil reader")
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return Update{}, "", fmt.Errorf("letterhead: read html: %w", err)
	}
	content := string(raw)
	slot := Classify(content)
	return SetSlot(slot, content), slot, nil
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
