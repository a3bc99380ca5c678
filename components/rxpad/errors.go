package rxpad

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-rxpad/pkg/export"
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/render"
)

var (
	errNotFound        = errors.New("rxpad: not found")
	errInvalidPayload  = errors.New("rxpad: invalid request body")
	errPayloadTooLarge = errors.New("rxpad: upload too large")
)

// HTTPError lets guards and handlers choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, errNotFound), errors.Is(err, render.ErrRendererNotFound):
		return http.StatusNotFound
	case errors.Is(err, errPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, letterhead.ErrUnsupportedUpload):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, prescription.ErrInvalidData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errInvalidPayload),
		errors.Is(err, prescription.ErrUnknownField),
		errors.Is(err, prescription.ErrInvalidDiagnosisType),
		errors.Is(err, letterhead.ErrUnknownSlot),
		errors.Is(err, letterhead.ErrEmptyUpload),
		errors.Is(err, export.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrPrintUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = http.StatusText(code)
	}
	writeJSON(w, code, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
