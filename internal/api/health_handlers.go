package api

import (
	"net/http"

	"github.com/vytor/vocaquiz/internal/logger"
)

// handleHealth returns a liveness probe - always returns 200 OK.
// This endpoint indicates the server process is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns a readiness probe - checks if the word store can be read.
// Returns 200 if it can, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := s.VocabService.Ready(r.Context()); err != nil {
		log.Warn("readiness check failed - word store: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Word store unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
