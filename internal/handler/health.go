package handler

import "net/http"

// Health handles GET /health. It reports liveness only; it does not probe
// the database.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
