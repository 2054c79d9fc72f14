package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

// FuelService implements the append-only fuel ledger. Adding a log never
// touches vehicle status.
type FuelService struct {
	logs     repo.FuelLogRepo
	vehicles repo.VehicleRepo
}

// NewFuelService constructs a FuelService backed by the provided repos.
func NewFuelService(logs repo.FuelLogRepo, vehicles repo.VehicleRepo) *FuelService {
	return &FuelService{logs: logs, vehicles: vehicles}
}

// Create validates the log, verifies the vehicle exists, then appends.
func (s *FuelService) Create(ctx context.Context, f domain.FuelLog) (domain.FuelLog, error) {
	if err := validateFuelLog(f); err != nil {
		return domain.FuelLog{}, err
	}
	if _, err := s.vehicles.GetByID(ctx, f.VehicleID); err != nil {
		return domain.FuelLog{}, fmt.Errorf("service.FuelService.Create: vehicle: %w", err)
	}

	created, err := s.logs.Create(ctx, f)
	if err != nil {
		return domain.FuelLog{}, fmt.Errorf("service.FuelService.Create: %w", err)
	}
	return created, nil
}

// List returns one page of fuel logs, most recent date first, and the total
// log count. Always returns a non-nil slice so callers can safely range
// over it.
func (s *FuelService) List(ctx context.Context, p domain.PaginationParams) ([]domain.FuelLog, int64, error) {
	logs, total, err := s.logs.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FuelService.List: %w", err)
	}
	if logs == nil {
		return []domain.FuelLog{}, total, nil
	}
	return logs, total, nil
}

// ListByVehicle returns one vehicle's fuel logs, most recent date first.
// Returns domain.ErrNotFound if the vehicle does not exist.
func (s *FuelService) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.FuelLog, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("service.FuelService.ListByVehicle: vehicle: %w", err)
	}
	logs, err := s.logs.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("service.FuelService.ListByVehicle: %w", err)
	}
	if logs == nil {
		return []domain.FuelLog{}, nil
	}
	return logs, nil
}

// validateFuelLog enforces creation bounds.
func validateFuelLog(f domain.FuelLog) error {
	if f.VehicleID == uuid.Nil {
		return fmt.Errorf("%w: vehicle_id is required", domain.ErrValidation)
	}
	if f.Liters <= 0 {
		return fmt.Errorf("%w: liters must be positive", domain.ErrValidation)
	}
	if f.Cost <= 0 {
		return fmt.Errorf("%w: cost must be positive", domain.ErrValidation)
	}
	if f.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}
