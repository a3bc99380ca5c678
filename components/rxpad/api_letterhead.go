package rxpad

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/store"
)

type letterheadResponse struct {
	Letterhead letterhead.Template `json:"letterhead"`
	Version    uint64              `json:"version"`
	Slots      []letterhead.Slot   `json:"slots,omitempty"`
}

func newLetterheadResponse(snap store.Snapshot, slots ...letterhead.Slot) letterheadResponse {
	return letterheadResponse{Letterhead: snap.Letterhead, Version: snap.Version, Slots: slots}
}

func (s *server) getLetterhead(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newLetterheadResponse(s.store.Snapshot()))
}

// replaceLetterhead backs the raw HTML editor: both slots are replaced
// wholesale.
func (s *server) replaceLetterhead(w http.ResponseWriter, r *http.Request) {
	var t letterhead.Template
	if err := s.decodeJSON(w, r, &t); err != nil {
		s.fail(w, r, err)
		return
	}
	snap := s.store.SetLetterhead(s.opts.Sanitizer.SanitizeTemplate(t))
	writeJSON(w, http.StatusOK, newLetterheadResponse(snap, letterhead.SlotHeader, letterhead.SlotFooter))
}

func (s *server) clearLetterhead(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newLetterheadResponse(s.store.ClearLetterhead()))
}

func (s *server) loadDefaultLetterhead(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.SetLetterhead(s.opts.Sanitizer.SanitizeTemplate(letterhead.Default()))
	writeJSON(w, http.StatusOK, newLetterheadResponse(snap, letterhead.SlotHeader, letterhead.SlotFooter))
}

func (s *server) composeLetterhead(w http.ResponseWriter, r *http.Request) {
	var fields letterhead.Fields
	if err := s.decodeJSON(w, r, &fields); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.composer.Compose(fields)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap := s.store.SetLetterhead(s.opts.Sanitizer.SanitizeTemplate(t))
	writeJSON(w, http.StatusOK, newLetterheadResponse(snap, letterhead.SlotHeader, letterhead.SlotFooter))
}

// uploadLetterheadHTML classifies each uploaded .html file independently.
// Files landing in the same slot overwrite each other in upload order.
func (s *server) uploadLetterheadHTML(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseMultipart(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var headers []*multipart.FileHeader
	headers = append(headers, form.File["files"]...)
	headers = append(headers, form.File["file"]...)
	if len(headers) == 0 {
		s.fail(w, r, fmt.Errorf("%w: no files uploaded", errInvalidPayload))
		return
	}

	updates := make([]letterhead.Update, 0, len(headers))
	slots := make([]letterhead.Slot, 0, len(headers))
	for _, header := range headers {
		if !letterhead.AcceptsHTML(header.Filename, header.Header.Get("Content-Type")) {
			s.fail(w, r, fmt.Errorf("%w: %s", letterhead.ErrUnsupportedUpload, header.Filename))
			return
		}
		update, slot, err := ingestHTML(header)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		updates = append(updates, s.opts.Sanitizer.SanitizeUpdate(update))
		slots = append(slots, slot)
	}

	var snap store.Snapshot
	for _, update := range updates {
		snap = s.store.ApplyLetterhead(update)
	}
	writeJSON(w, http.StatusOK, newLetterheadResponse(snap, slots...))
}

func (s *server) uploadLetterheadFile(w http.ResponseWriter, r *http.Request) {
	slot, err := letterhead.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		s.fail(w, r, StatusError{Code: http.StatusNotFound, Err: err})
		return
	}
	form, err := s.parseMultipart(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	headers := form.File["file"]
	if len(headers) == 0 {
		s.fail(w, r, fmt.Errorf("%w: no file uploaded", errInvalidPayload))
		return
	}
	upload, err := readUpload(headers[0])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(upload.Data) > 0 && !letterhead.AcceptsEmbed(upload) {
		s.fail(w, r, fmt.Errorf("%w: %s", letterhead.ErrUnsupportedUpload, letterhead.DetectContentType(upload)))
		return
	}
	update, err := s.composer.Embed(slot, upload)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap := s.store.ApplyLetterhead(s.opts.Sanitizer.SanitizeUpdate(update))
	writeJSON(w, http.StatusOK, newLetterheadResponse(snap, slot))
}

func (s *server) parseMultipart(w http.ResponseWriter, r *http.Request) (*multipart.Form, error) {
	r.Body = s.limitBody(w, r.Body)
	memory := int64(multipartMemory)
	if limit := s.opts.MaxUploadBytes; limit > 0 && limit < memory {
		memory = limit
	}
	if err := r.ParseMultipartForm(memory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errPayloadTooLarge
		}
		return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return r.MultipartForm, nil
}

func ingestHTML(header *multipart.FileHeader) (letterhead.Update, letterhead.Slot, error) {
	f, err := header.Open()
	if err != nil {
		return letterhead.Update{}, "", fmt.Errorf("rxpad: open %s: %w", header.Filename, err)
	}
	defer f.Close()
	return letterhead.IngestHTML(f)
}

func readUpload(header *multipart.FileHeader) (letterhead.Upload, error) {
	f, err := header.Open()
	if err != nil {
		return letterhead.Upload{}, fmt.Errorf("rxpad: open %s: %w", header.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return letterhead.Upload{}, fmt.Errorf("rxpad: read %s: %w", header.Filename, err)
	}
	return letterhead.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
