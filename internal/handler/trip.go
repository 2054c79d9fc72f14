package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/service"
)

// createTripRequest is the POST /trips body.
type createTripRequest struct {
	VehicleID     uuid.UUID `json:"vehicle_id"`
	DriverID      uuid.UUID `json:"driver_id"`
	CargoWeight   float64   `json:"cargo_weight"`
	StartOdometer *float64  `json:"start_odometer"`
	Revenue       *float64  `json:"revenue"`
}

// completeTripRequest is the PATCH /trips/{id}/complete body.
type completeTripRequest struct {
	EndOdometer *float64 `json:"end_odometer"`
	Revenue     *float64 `json:"revenue"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.Create(r.Context(), service.CreateTripInput{
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		CargoWeight:   req.CargoWeight,
		StartOdometer: req.StartOdometer,
		Revenue:       req.Revenue,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, trips, params, total)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DispatchTrip handles PATCH /trips/{id}/dispatch.
func (s *Server) DispatchTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.Dispatch(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// CompleteTrip handles PATCH /trips/{id}/complete. Both fields are
// optional; omitted values retain whatever the trip already holds.
func (s *Server) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}

	var req completeTripRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.Complete(r.Context(), id, service.CompleteTripInput{
		EndOdometer: req.EndOdometer,
		Revenue:     req.Revenue,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// CancelTrip handles PATCH /trips/{id}/cancel.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
