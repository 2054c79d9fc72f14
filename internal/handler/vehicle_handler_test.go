package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Het6518/Fleetflow/internal/domain"
)

func TestCreateVehicle(t *testing.T) {
	env := newTestEnv()

	var got domain.Vehicle
	env.vehicles.create = func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
		got = v
		v.ID = uuid.New()
		return v, nil
	}

	body := `{"name":"MAN TGX","license_plate":"FL-100","max_capacity":9000,"odometer":1200,"acquisition_cost":70000}`
	rec := env.do(t, http.MethodPost, "/api/vehicles", body, domain.RoleManager)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "FL-100", got.LicensePlate)
	assert.Equal(t, 9000.0, got.MaxCapacity)
}

func TestCreateVehicle_Conflict(t *testing.T) {
	env := newTestEnv()
	env.vehicles.create = func(context.Context, domain.Vehicle) (domain.Vehicle, error) {
		return domain.Vehicle{}, fmt.Errorf("%w: license plate already registered", domain.ErrConflict)
	}

	body := `{"name":"MAN TGX","license_plate":"FL-100","max_capacity":9000,"acquisition_cost":70000}`
	rec := env.do(t, http.MethodPost, "/api/vehicles", body, domain.RoleManager)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "conflict")
}

func TestUpdateVehicle_PartialPatch(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()

	current := domain.Vehicle{
		ID: id, Name: "MAN TGX", LicensePlate: "FL-100",
		MaxCapacity: 9000, Odometer: 1200, AcquisitionCost: 70000,
		Status: domain.VehicleAvailable,
	}
	env.vehicles.getByID = func(context.Context, uuid.UUID) (domain.Vehicle, error) {
		return current, nil
	}

	var updated domain.Vehicle
	env.vehicles.update = func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
		updated = v
		return v, nil
	}

	rec := env.do(t, http.MethodPatch, "/api/vehicles/"+id.String(),
		`{"name":"MAN TGX (refit)"}`, domain.RoleManager)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MAN TGX (refit)", updated.Name)
	// Omitted fields keep their stored values.
	assert.Equal(t, "FL-100", updated.LicensePlate)
	assert.Equal(t, 9000.0, updated.MaxCapacity)
}

func TestDeleteVehicle(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	env.vehicles.del = func(_ context.Context, got uuid.UUID) error {
		assert.Equal(t, id, got)
		return nil
	}

	rec := env.do(t, http.MethodDelete, "/api/vehicles/"+id.String(), "", domain.RoleManager)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteVehicle_ActiveTrips(t *testing.T) {
	env := newTestEnv()
	env.vehicles.del = func(context.Context, uuid.UUID) error {
		return fmt.Errorf("%w: cannot delete a vehicle with active trips", domain.ErrPreconditionFailed)
	}

	rec := env.do(t, http.MethodDelete, "/api/vehicles/"+uuid.NewString(), "", domain.RoleManager)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "active trips")
}

func TestGetVehicle_NotFound(t *testing.T) {
	env := newTestEnv()
	env.vehicles.getByID = func(context.Context, uuid.UUID) (domain.Vehicle, error) {
		return domain.Vehicle{}, fmt.Errorf("get: %w", domain.ErrNotFound)
	}

	rec := env.do(t, http.MethodGet, "/api/vehicles/"+uuid.NewString(), "", domain.RoleFinance)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
