package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"studyplan/internal/availability"
	"studyplan/internal/cache"
	"studyplan/internal/export"
	"studyplan/internal/metrics"
	"studyplan/internal/models"
)

// AvailabilityRequest is the request body for POST /api/availability.
type AvailabilityRequest struct {
	StartDate string `json:"start_date"` // Format: YYYY-MM-DD
	EndDate   string `json:"end_date"`   // Format: YYYY-MM-DD
}

// SlotResponse is one free slot in the response.
type SlotResponse struct {
	Date          string  `json:"date"`
	Weekday       string  `json:"weekday"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	DurationHours float64 `json:"duration_hours"`
}

// SkippedResponse describes an input record excluded from the scan.
type SkippedResponse struct {
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// AvailabilityResponse is the response for POST /api/availability.
type AvailabilityResponse struct {
	Slots   []SlotResponse     `json:"slots"`
	Skipped []SkippedResponse  `json:"skipped,omitempty"`
	Stats   export.Statistics  `json:"stats"`
	Period  struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"period"`
}

// handleAvailability computes free study slots for a date range.
// POST /api/availability
func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req AvailabilityRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, status, err := s.computeAvailability(r.Context(), req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAvailabilityExport renders the computed slots in a download
// format. GET /api/availability/export?start_date=...&end_date=...&format=ics|csv|xlsx
func (s *Server) handleAvailabilityExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_export")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	req := AvailabilityRequest{StartDate: q.Get("start_date"), EndDate: q.Get("end_date")}
	format := q.Get("format")

	result, status, err := s.runScan(r.Context(), req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	switch format {
	case "ics":
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="availability.ics"`)
		_, _ = w.Write(export.ICal(result.Slots, "Study Availability"))
	case "csv":
		data, err := export.CSV(result.Slots)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="availability.csv"`)
		_, _ = w.Write(data)
	case "xlsx":
		data, err := export.Excel(result.Slots)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="availability.xlsx"`)
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "format must be one of: ics, csv, xlsx")
	}
}

// computeAvailability runs a scan and assembles the JSON response,
// consulting the cache first.
func (s *Server) computeAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, int, error) {
	key := cache.Key(req)
	var cached AvailabilityResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, http.StatusOK, nil
	}

	result, status, err := s.runScan(ctx, req)
	if err != nil {
		return nil, status, err
	}

	resp := &AvailabilityResponse{
		Slots: make([]SlotResponse, 0, len(result.Slots)),
		Stats: export.Stats(result.Slots, s.cfg.WeekStart),
	}
	resp.Period.Start = req.StartDate
	resp.Period.End = req.EndDate

	for _, slot := range result.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Date:          slot.Date.Format(models.DateFormat),
			Weekday:       slot.Date.Weekday().String(),
			Start:         slot.Window.Start.String(),
			End:           slot.Window.End.String(),
			DurationHours: slot.DurationHours,
		})
	}
	for _, skipped := range result.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedResponse(skipped))
	}

	s.cache.Set(ctx, key, resp)
	return resp, http.StatusOK, nil
}

// runScan loads the stored records and runs the engine over the range.
func (s *Server) runScan(ctx context.Context, req AvailabilityRequest) (*availability.Result, int, error) {
	if req.StartDate == "" || req.EndDate == "" {
		return nil, http.StatusBadRequest, fmt.Errorf("start_date and end_date are required")
	}
	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid start_date; expected YYYY-MM-DD")
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid end_date; expected YYYY-MM-DD")
	}

	stored, err := s.store.ListCommitments(ctx)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("load commitments: %w", err)
	}
	var commitments []availability.Commitment
	for i := range stored {
		fanned, err := stored[i].Engine()
		if err != nil {
			// Malformed stored records become scan diagnostics, not
			// request failures; the engine skips them by interval check,
			// so only conversion failures land here.
			s.logger.Warn().Err(err).Str("label", stored[i].Label).Msg("unreadable commitment skipped")
			continue
		}
		commitments = append(commitments, fanned...)
	}

	storedAbsences, err := s.store.ListAbsences(ctx)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("load absences: %w", err)
	}
	var absences []availability.Absence
	for i := range storedAbsences {
		a, err := storedAbsences[i].Engine()
		if err != nil {
			s.logger.Warn().Err(err).Str("label", storedAbsences[i].Label).Msg("unreadable absence skipped")
			continue
		}
		absences = append(absences, a)
	}

	prefsModel, err := s.store.GetPreferences(ctx)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("load preferences: %w", err)
	}
	prefs, err := prefsModel.Engine()
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("stored preferences unreadable: %w", err)
	}

	began := time.Now()
	result, err := s.scanner.Compute(ctx, start, end, commitments, absences, prefs)
	metrics.ObserveScanDuration(time.Since(began).Seconds())
	if err != nil {
		metrics.IncScan("error")
		if errors.Is(err, availability.ErrInvalidRange) ||
			errors.Is(err, availability.ErrRangeTooLong) ||
			errors.Is(err, availability.ErrInvalidStudyWindow) {
			return nil, http.StatusBadRequest, err
		}
		return nil, http.StatusInternalServerError, err
	}
	metrics.IncScan("ok")

	for _, skipped := range result.Skipped {
		metrics.AddRecordsSkipped(skipped.Kind, 1)
		s.logger.Warn().
			Str("kind", skipped.Kind).
			Str("label", skipped.Label).
			Str("reason", skipped.Reason).
			Msg("record skipped during scan")
	}

	return result, http.StatusOK, nil
}
