package handler

import (
	"net/http"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// createVehicleRequest is the POST /vehicles body.
type createVehicleRequest struct {
	Name            string               `json:"name"`
	LicensePlate    string               `json:"license_plate"`
	MaxCapacity     float64              `json:"max_capacity"`
	Odometer        float64              `json:"odometer"`
	AcquisitionCost float64              `json:"acquisition_cost"`
	Status          domain.VehicleStatus `json:"status"`
}

// updateVehicleRequest is the PATCH /vehicles/{id} body. Pointer fields
// distinguish "absent" from zero values.
type updateVehicleRequest struct {
	Name            *string               `json:"name"`
	LicensePlate    *string               `json:"license_plate"`
	MaxCapacity     *float64              `json:"max_capacity"`
	Odometer        *float64              `json:"odometer"`
	AcquisitionCost *float64              `json:"acquisition_cost"`
	Status          *domain.VehicleStatus `json:"status"`
}

// CreateVehicle handles POST /vehicles.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	v, err := s.vehicles.Create(r.Context(), domain.Vehicle{
		Name:            req.Name,
		LicensePlate:    req.LicensePlate,
		MaxCapacity:     req.MaxCapacity,
		Odometer:        req.Odometer,
		AcquisitionCost: req.AcquisitionCost,
		Status:          req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// GetVehicle handles GET /vehicles/{id}.
func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid vehicle id")
		return
	}

	v, err := s.vehicles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// UpdateVehicle handles PATCH /vehicles/{id}. The current row is loaded
// first so omitted fields keep their stored values.
func (s *Server) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid vehicle id")
		return
	}

	var req updateVehicleRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	v, err := s.vehicles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.LicensePlate != nil {
		v.LicensePlate = *req.LicensePlate
	}
	if req.MaxCapacity != nil {
		v.MaxCapacity = *req.MaxCapacity
	}
	if req.Odometer != nil {
		v.Odometer = *req.Odometer
	}
	if req.AcquisitionCost != nil {
		v.AcquisitionCost = *req.AcquisitionCost
	}
	if req.Status != nil {
		v.Status = *req.Status
	}

	v, err = s.vehicles.Update(r.Context(), v)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVehicle handles DELETE /vehicles/{id}.
func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid vehicle id")
		return
	}

	if err := s.vehicles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
