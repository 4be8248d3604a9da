package api

import (
	"context"
	"net/http"
	"time"
)

// Health is the /health response body.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Storage   struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	} `json:"storage"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := Health{
		Status:    "ok",
		Timestamp: s.now(),
	}

	if s.pinger == nil {
		health.Storage.Status = "unknown"
		writeJSON(w, http.StatusOK, health)
		return
	}

	if err := s.pinger.Ping(ctx); err != nil {
		health.Status = "degraded"
		health.Storage.Status = "error"
		health.Storage.Message = "Storage ping failed"
		writeJSON(w, http.StatusServiceUnavailable, health)
		return
	}

	health.Storage.Status = "ok"
	writeJSON(w, http.StatusOK, health)
}
