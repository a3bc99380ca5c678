package rxpad

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/store"
)

type prescriptionResponse struct {
	Prescription prescription.Data  `json:"prescription"`
	Stats        prescription.Stats `json:"stats"`
	Version      uint64             `json:"version"`
	ID           string             `json:"id,omitempty"`
}

type fieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type diagnosisTypeRequest struct {
	DiagnosisType string `json:"diagnosisType"`
}

type diagnosisRequest struct {
	Text string `json:"text"`
}

func newPrescriptionResponse(snap store.Snapshot) prescriptionResponse {
	return prescriptionResponse{
		Prescription: snap.Prescription,
		Stats:        snap.Prescription.Stats(),
		Version:      snap.Version,
	}
}

func (s *server) getPrescription(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newPrescriptionResponse(s.store.Snapshot()))
}

func (s *server) replacePrescription(w http.ResponseWriter, r *http.Request) {
	var data prescription.Data
	if err := s.decodeJSON(w, r, &data); err != nil {
		s.fail(w, r, err)
		return
	}
	data = data.Normalize()
	if err := data.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPrescriptionResponse(s.store.Replace(data)))
}

func (s *server) loadSample(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newPrescriptionResponse(s.store.LoadSample()))
}

func (s *server) clearPrescription(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newPrescriptionResponse(s.store.Reset()))
}

func (s *server) setField(w http.ResponseWriter, r *http.Request) {
	var req fieldUpdate
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	field, err := prescription.ParseField(req.Field)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.update(w, r, http.StatusOK, func(d prescription.Data) (prescription.Data, error) {
		return prescription.SetField(d, field, req.Value)
	})
}

func (s *server) setDiagnosisType(w http.ResponseWriter, r *http.Request) {
	var req diagnosisTypeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := prescription.ParseDiagnosisType(req.DiagnosisType)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.update(w, r, http.StatusOK, func(d prescription.Data) (prescription.Data, error) {
		return prescription.SetDiagnosisType(d, t)
	})
}

func (s *server) appendMedicine(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Update(func(d prescription.Data) (prescription.Data, error) {
		return prescription.AppendMedicine(d, s.opts.IDs), nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := newPrescriptionResponse(snap)
	if n := len(snap.Prescription.Medicines); n > 0 {
		resp.ID = snap.Prescription.Medicines[n-1].ID
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *server) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req fieldUpdate
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	field, err := prescription.ParseMedicineField(req.Field)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.update(w, r, http.StatusOK, func(d prescription.Data) (prescription.Data, error) {
		if !prescription.HasMedicine(d, id) {
			return d, fmt.Errorf("%w: medicine %q", errNotFound, id)
		}
		return prescription.UpdateMedicine(d, id, field, req.Value)
	})
}

func (s *server) removeMedicine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.update(w, r, http.StatusOK, func(d prescription.Data) (prescription.Data, error) {
		if !prescription.HasMedicine(d, id) {
			return d, fmt.Errorf("%w: medicine %q", errNotFound, id)
		}
		return prescription.RemoveMedicine(d, id), nil
	})
}

func (s *server) appendTest(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Update(func(d prescription.Data) (prescription.Data, error) {
		return prescription.AppendTest(d, s.opts.IDs), nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := newPrescriptionResponse(snap)
	if n := len(snap.Prescription.Tests); n > 0 {
		resp.ID = snap.Prescription.Tests[n-1].ID
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *server) updateTest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req fieldUpdate
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	field, err := prescription.ParseTestField(req.Field)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.update(w, r, http.StatusOK, func(d prescription.Data) (prescription.Data, error) {
		if !prescription.HasTest(d, id) {
			return d, fmt.Errorf("%w: test %q", errNotFound, id)
		}
		return prescription.UpdateTest(d, id, field, req.Value)
	})
}

func (s *server) removeTest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.update(w, r, http.StatusOK, func(d prescription.Data) (prescription.Data, error) {
		if !prescription.HasTest(d, id) {
			return d, fmt.Errorf("%w: test %q", errNotFound, id)
		}
		return prescription.RemoveTest(d, id), nil
	})
}

// addDiagnosis ignores blank text and answers with the unchanged state.
func (s *server) addDiagnosis(w http.ResponseWriter, r *http.Request) {
	var req diagnosisRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.update(w, r, http.StatusOK, func(d prescription.Data) (prescription.Data, error) {
		return prescription.AddDiagnosis(d, s.opts.IDs, req.Text), nil
	})
}

func (s *server) removeDiagnosis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.update(w, r, http.StatusOK, func(d prescription.Data) (prescription.Data, error) {
		if !prescription.HasDiagnosis(d, id) {
			return d, fmt.Errorf("%w: diagnosis %q", errNotFound, id)
		}
		return prescription.RemoveDiagnosis(d, id), nil
	})
}

func (s *server) update(w http.ResponseWriter, r *http.Request, code int, fn func(prescription.Data) (prescription.Data, error)) {
	snap, err := s.store.Update(fn)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, code, newPrescriptionResponse(snap))
}

func (s *server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := s.limitBody(w, r.Body)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errPayloadTooLarge
		}
		return fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return nil
}

func (s *server) limitBody(w http.ResponseWriter, body io.ReadCloser) io.ReadCloser {
	if s.opts.MaxUploadBytes <= 0 {
		return body
	}
	return http.MaxBytesReader(w, body, s.opts.MaxUploadBytes)
}
