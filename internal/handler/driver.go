package handler

import (
	"net/http"
	"time"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// createDriverRequest is the POST /drivers body. license_expiry is a
// date in RFC 3339 format. safety_score defaults to 100 when omitted;
// a pointer is needed because 0 is a valid score.
type createDriverRequest struct {
	Name          string              `json:"name"`
	LicenseNumber string              `json:"license_number"`
	LicenseExpiry time.Time           `json:"license_expiry"`
	SafetyScore   *float64            `json:"safety_score"`
	Status        domain.DriverStatus `json:"status"`
}

// updateDriverRequest is the PATCH /drivers/{id} body.
type updateDriverRequest struct {
	Name          *string              `json:"name"`
	LicenseNumber *string              `json:"license_number"`
	LicenseExpiry *time.Time           `json:"license_expiry"`
	SafetyScore   *float64             `json:"safety_score"`
	Status        *domain.DriverStatus `json:"status"`
}

// CreateDriver handles POST /drivers.
func (s *Server) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	score := 100.0
	if req.SafetyScore != nil {
		score = *req.SafetyScore
	}

	d, err := s.drivers.Create(r.Context(), domain.Driver{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: req.LicenseExpiry,
		SafetyScore:   score,
		Status:        req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// ListDrivers handles GET /drivers.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.drivers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

// GetDriver handles GET /drivers/{id}.
func (s *Server) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid driver id")
		return
	}

	d, err := s.drivers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// UpdateDriver handles PATCH /drivers/{id}. Omitted fields keep their
// stored values.
func (s *Server) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeBadRequest(w, "invalid driver id")
		return
	}

	var req updateDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	d, err := s.drivers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.LicenseNumber != nil {
		d.LicenseNumber = *req.LicenseNumber
	}
	if req.LicenseExpiry != nil {
		d.LicenseExpiry = *req.LicenseExpiry
	}
	if req.SafetyScore != nil {
		d.SafetyScore = *req.SafetyScore
	}
	if req.Status != nil {
		d.Status = *req.Status
	}

	d, err = s.drivers.Update(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
