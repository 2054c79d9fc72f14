package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// createFuelLogRequest is the POST /fuel body. The date is required; the
// service rejects a zero value.
type createFuelLogRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	Liters    float64   `json:"liters"`
	Cost      float64   `json:"cost"`
	Date      time.Time `json:"date"`
}

// CreateFuelLog handles POST /fuel.
func (s *Server) CreateFuelLog(w http.ResponseWriter, r *http.Request) {
	var req createFuelLogRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	f, err := s.fuel.Create(r.Context(), domain.FuelLog{
		VehicleID: req.VehicleID,
		Liters:    req.Liters,
		Cost:      req.Cost,
		Date:      req.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// ListFuelLogs handles GET /fuel.
func (s *Server) ListFuelLogs(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	logs, total, err := s.fuel.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, logs, params, total)
}

// ListFuelLogsByVehicle handles GET /fuel/vehicle/{vehicleId}.
func (s *Server) ListFuelLogsByVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathUUID(r, "vehicleId")
	if err != nil {
		writeBadRequest(w, "invalid vehicle id")
		return
	}

	logs, err := s.fuel.ListByVehicle(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
