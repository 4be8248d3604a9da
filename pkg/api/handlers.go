package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/unowned-ai/moodflow/pkg/journal"
	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/stats"
)

// errorResponse mirrors the auth API's error shape.
type errorResponse struct {
	Msg string `json:"msg"`
}

// CreateEntryRequest is the POST /api/entries body. Activities is the raw
// comma-separated form value.
type CreateEntryRequest struct {
	Mood       string `json:"mood"`
	Activities string `json:"activities"`
	Notes      string `json:"notes"`
}

type MonthlyResponse struct {
	Month    string           `json:"month"`
	Weekdays [7]string        `json:"weekdays"`
	Days     []*stats.DayCell `json:"days"`
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journal.ListNewestFirst(r.Context())
	if err != nil {
		s.internalError(w, r, "Failed to list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	entry, err := s.journal.Add(r.Context(), req.Mood, req.Activities, req.Notes, s.now())
	if errors.Is(err, moods.ErrInvalidMood) {
		writeError(w, http.StatusBadRequest, "Please select a mood")
		return
	}
	if err != nil {
		s.internalError(w, r, "Failed to save entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := s.journal.Get(r.Context(), id)
	if errors.Is(err, journal.ErrEntryNotFound) {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		s.internalError(w, r, "Failed to load entry", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	err := s.journal.Delete(r.Context(), id)
	if errors.Is(err, journal.ErrEntryNotFound) {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		s.internalError(w, r, "Failed to delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.journal.Summary(r.Context(), s.now())
	if err != nil {
		s.internalError(w, r, "Failed to compute statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journal.List(r.Context())
	if err != nil {
		s.internalError(w, r, "Failed to list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, stats.WeeklyWindow(entries, s.now()))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journal.List(r.Context())
	if err != nil {
		s.internalError(w, r, "Failed to list entries", err)
		return
	}
	now := s.now()
	writeJSON(w, http.StatusOK, MonthlyResponse{
		Month:    stats.MonthLabel(now),
		Weekdays: stats.WeekdayHeaders,
		Days:     stats.MonthlyGrid(entries, now),
	})
}

func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry id")
		return 0, false
	}
	return id, true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	log.Error(msg, "err", err, "request_id", GetRequestID(r.Context()))
	writeError(w, http.StatusInternalServerError, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Msg: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "err", err)
	}
}
