package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/mfapi"
	"github.com/fundlens/fundlens/store"
)

func (s *Server) respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("encoding response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// respondError maps the engine and store error taxonomy onto HTTP
// statuses. Unknown errors surface as 500 without leaking detail.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fundlens.ErrInvalidRequest),
		errors.Is(err, fundlens.ErrInsufficientHistory),
		errors.Is(err, fundlens.ErrInsufficientBalance),
		errors.Is(err, fundlens.ErrInsufficientUnits):
		status = http.StatusBadRequest
	case errors.Is(err, fundlens.ErrNoData),
		errors.Is(err, fundlens.ErrNoValidNav),
		errors.Is(err, fundlens.ErrNoPeriodsFound),
		errors.Is(err, fundlens.ErrHoldingNotFound),
		errors.Is(err, mfapi.ErrSchemeNotFound),
		errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}

	entry := s.log.WithError(err).WithFields(map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	if status == http.StatusInternalServerError {
		entry.Error("request failed")
		s.respond(w, status, errorBody{Error: "internal error"})
		return
	}
	entry.Warn("request rejected")
	s.respond(w, status, errorBody{Error: err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respond(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return false
	}
	return true
}
