package rxpad

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-rxpad/pkg/export"
)

type printResponse struct {
	Printed bool   `json:"printed"`
	File    string `json:"file"`
	SavedTo string `json:"savedTo,omitempty"`
	Message string `json:"message,omitempty"`
}

// printDocument sends the standalone file to the configured printer. When
// printing is unavailable or fails the file is written under ExportDir and
// the response names the path instead.
func (s *server) printDocument(w http.ResponseWriter, r *http.Request) {
	file, err := s.standaloneFile(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	err = export.Print(r.Context(), s.opts.Printer, file, s.opts.ExportDir)
	var fallback *export.FallbackError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, printResponse{Printed: true, File: file.Name})
	case errors.As(err, &fallback):
		s.logger.WarnContext(r.Context(), "print fell back to file", "path", fallback.Path, "error", fallback.Err)
		writeJSON(w, http.StatusAccepted, printResponse{
			File:    file.Name,
			SavedTo: fallback.Path,
			Message: fallback.Error(),
		})
	default:
		s.fail(w, r, err)
	}
}
