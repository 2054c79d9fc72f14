package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

// VehicleService implements CRUD for vehicles. It never writes the status
// field on behalf of a trip — that is the lifecycle engine's job — but a
// manager may retire a vehicle or pull it back in through Update.
type VehicleService struct {
	vehicles repo.VehicleRepo
	atomic   repo.Atomic
}

// NewVehicleService constructs a VehicleService backed by the provided
// vehicle repo. The unit-of-work is needed for the delete guard.
func NewVehicleService(vehicles repo.VehicleRepo, atomic repo.Atomic) *VehicleService {
	return &VehicleService{vehicles: vehicles, atomic: atomic}
}

// Create validates and persists a new vehicle. New vehicles always start
// AVAILABLE with the supplied odometer (default 0).
func (s *VehicleService) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return domain.Vehicle{}, err
	}
	v.Status = domain.VehicleAvailable

	created, err := s.vehicles.Create(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single vehicle by ID.
func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.GetByID: %w", err)
	}
	return v, nil
}

// List returns all vehicles, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.List: %w", err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

// Update validates and persists changes to an existing vehicle.
func (s *VehicleService) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return domain.Vehicle{}, err
	}
	updated, err := s.vehicles.Update(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a vehicle. A vehicle that is ON_TRIP, or that any
// DISPATCHED trip still references, cannot be deleted. The guard and the
// delete run in one transaction under the same row lock dispatch takes,
// so a dispatch committing in between cannot slip past the trip count.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.atomic.InTx(ctx, func(r repo.TxRepos) error {
		v, err := r.Vehicles.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v.Status == domain.VehicleOnTrip {
			return fmt.Errorf("%w: cannot delete a vehicle that is currently on a trip", domain.ErrPreconditionFailed)
		}

		active, err := r.Trips.CountByVehicleAndStatus(ctx, id, domain.TripDispatched)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: cannot delete a vehicle with active trips", domain.ErrPreconditionFailed)
		}

		return r.Vehicles.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	return nil
}

// validateVehicle enforces business rules common to both Create and Update.
func validateVehicle(v domain.Vehicle) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(v.LicensePlate) == "" {
		return fmt.Errorf("%w: license_plate is required", domain.ErrValidation)
	}
	if v.MaxCapacity <= 0 {
		return fmt.Errorf("%w: max_capacity must be positive", domain.ErrValidation)
	}
	if v.Odometer < 0 {
		return fmt.Errorf("%w: odometer must be non-negative", domain.ErrValidation)
	}
	if v.AcquisitionCost <= 0 {
		return fmt.Errorf("%w: acquisition_cost must be positive", domain.ErrValidation)
	}
	return nil
}
