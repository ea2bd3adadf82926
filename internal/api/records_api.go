package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"studyplan/internal/metrics"
	"studyplan/internal/models"
	"studyplan/internal/store"
)

// handleCommitments lists or creates commitments.
// GET|POST /api/commitments
func (s *Server) handleCommitments(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("commitments")

	switch r.Method {
	case http.MethodGet:
		list, err := s.store.ListCommitments(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list commitments")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"commitments": list})

	case http.MethodPost:
		var c models.Commitment
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		id, err := s.store.CreateCommitment(r.Context(), &c)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.cache.Invalidate(r.Context())
		c.ID = id
		writeJSON(w, http.StatusCreated, c)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleCommitmentByID deletes a commitment.
// DELETE /api/commitments/{id}
func (s *Server) handleCommitmentByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("commitments")

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := parseID(w, r.URL.Path, "/api/commitments/")
	if !ok {
		return
	}
	if err := s.store.DeleteCommitment(r.Context(), id); err != nil {
		writeStoreError(w, err, "commitment")
		return
	}
	s.cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleAbsences lists or creates absences.
// GET|POST /api/absences
func (s *Server) handleAbsences(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("absences")

	switch r.Method {
	case http.MethodGet:
		list, err := s.store.ListAbsences(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list absences")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"absences": list})

	case http.MethodPost:
		var a models.Absence
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		id, err := s.store.CreateAbsence(r.Context(), &a)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.cache.Invalidate(r.Context())
		a.ID = id
		writeJSON(w, http.StatusCreated, a)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAbsenceByID deletes an absence.
// DELETE /api/absences/{id}
func (s *Server) handleAbsenceByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("absences")

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, ok := parseID(w, r.URL.Path, "/api/absences/")
	if !ok {
		return
	}
	if err := s.store.DeleteAbsence(r.Context(), id); err != nil {
		writeStoreError(w, err, "absence")
		return
	}
	s.cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handlePreferences reads or replaces the stored preferences.
// GET|PUT /api/preferences
func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("preferences")

	switch r.Method {
	case http.MethodGet:
		prefs, err := s.store.GetPreferences(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load preferences")
			return
		}
		writeJSON(w, http.StatusOK, prefs)

	case http.MethodPut:
		var p models.Preferences
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.store.SetPreferences(r.Context(), &p); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.cache.Invalidate(r.Context())
		writeJSON(w, http.StatusOK, p)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func parseID(w http.ResponseWriter, path, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error, kind string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, kind+" not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "failed to delete "+kind)
}
