package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

// MaintenanceService implements the maintenance side-effect rules: opening
// a log pulls the vehicle into the shop, completing it releases the vehicle.
type MaintenanceService struct {
	logs     repo.MaintenanceRepo
	vehicles repo.VehicleRepo
	atomic   repo.Atomic
}

// NewMaintenanceService constructs a MaintenanceService backed by the
// provided repos and unit-of-work.
func NewMaintenanceService(logs repo.MaintenanceRepo, vehicles repo.VehicleRepo, atomic repo.Atomic) *MaintenanceService {
	return &MaintenanceService{logs: logs, vehicles: vehicles, atomic: atomic}
}

// Create inserts an open maintenance log and moves the vehicle to IN_SHOP,
// atomically. A vehicle that is mid-trip cannot be serviced.
func (s *MaintenanceService) Create(ctx context.Context, m domain.MaintenanceLog) (domain.MaintenanceLog, error) {
	if err := validateMaintenanceLog(m); err != nil {
		return domain.MaintenanceLog{}, err
	}

	var created domain.MaintenanceLog
	err := s.atomic.InTx(ctx, func(r repo.TxRepos) error {
		vehicle, err := r.Vehicles.GetByIDForUpdate(ctx, m.VehicleID)
		if err != nil {
			return err
		}
		if vehicle.Status == domain.VehicleOnTrip {
			return fmt.Errorf("%w: cannot add maintenance to a vehicle that is currently on a trip", domain.ErrPreconditionFailed)
		}

		m.Completed = false
		created, err = r.Maintenance.Create(ctx, m)
		if err != nil {
			return err
		}
		return r.Vehicles.SetStatus(ctx, vehicle.ID, domain.VehicleInShop)
	})
	if err != nil {
		return domain.MaintenanceLog{}, fmt.Errorf("service.MaintenanceService.Create: %w", err)
	}
	return created, nil
}

// Complete marks an open log completed and returns the vehicle to AVAILABLE,
// atomically. The vehicle is released unconditionally, even when other open
// logs still reference it — matching the behavior callers already depend on.
func (s *MaintenanceService) Complete(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error) {
	var completed domain.MaintenanceLog
	err := s.atomic.InTx(ctx, func(r repo.TxRepos) error {
		log, err := r.Maintenance.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if log.Completed {
			return fmt.Errorf("%w: maintenance log is already completed", domain.ErrInvalidTransition)
		}

		if err := r.Maintenance.SetCompleted(ctx, log.ID); err != nil {
			return err
		}
		if err := r.Vehicles.SetStatus(ctx, log.VehicleID, domain.VehicleAvailable); err != nil {
			return err
		}

		log.Completed = true
		completed = log
		return nil
	})
	if err != nil {
		return domain.MaintenanceLog{}, fmt.Errorf("service.MaintenanceService.Complete: %w", err)
	}
	return completed, nil
}

// List returns all maintenance logs, most recent date first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *MaintenanceService) List(ctx context.Context) ([]domain.MaintenanceLog, error) {
	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.MaintenanceService.List: %w", err)
	}
	if logs == nil {
		return []domain.MaintenanceLog{}, nil
	}
	return logs, nil
}

// validateMaintenanceLog enforces creation bounds.
func validateMaintenanceLog(m domain.MaintenanceLog) error {
	if m.VehicleID == uuid.Nil {
		return fmt.Errorf("%w: vehicle_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(m.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if m.Cost <= 0 {
		return fmt.Errorf("%w: cost must be positive", domain.ErrValidation)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}
