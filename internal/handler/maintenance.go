package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// createMaintenanceRequest is the POST /maintenance body. The date is
// required; the service rejects a zero value.
type createMaintenanceRequest struct {
	VehicleID   uuid.UUID `json:"vehicle_id"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	Date        time.Time `json:"date"`
}

// CreateMaintenance handles POST /maintenance.
func (s *Server) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req createMaintenanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	m, err := s.maintenance.Create(r.Context(), domain.MaintenanceLog{
		VehicleID:   req.VehicleID,
		Description: req.Description,
		Cost:        req.Cost,
		Date:        req.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// ListMaintenance handles GET /maintenance.
func (s *Server) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	logs, err := s.maintenance.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// CompleteMaintenance handles PATCH /maintenance/{id}/complete.
func (s *Server) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid maintenance log id")
		return
	}

	m, err := s.maintenance.Complete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
