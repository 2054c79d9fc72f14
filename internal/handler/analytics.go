package handler

import "net/http"

// Dashboard handles GET /analytics/dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.analytics.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// VehicleAnalytics handles GET /analytics/vehicle/{id}.
func (s *Server) VehicleAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid vehicle id")
		return
	}

	stats, err := s.analytics.VehicleAnalytics(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
