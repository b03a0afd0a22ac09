package handler

import "net/http"

// HealthResponse is the body returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// GetHealth handles GET /api/health.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
