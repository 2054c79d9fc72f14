package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

// DriverService implements CRUD for drivers.
type DriverService struct {
	drivers repo.DriverRepo
}

// NewDriverService constructs a DriverService backed by the provided DriverRepo.
func NewDriverService(drivers repo.DriverRepo) *DriverService {
	return &DriverService{drivers: drivers}
}

// Create validates and persists a new driver. The status defaults to
// ON_DUTY when not supplied.
func (s *DriverService) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	if d.Status == "" {
		d.Status = domain.DriverOnDuty
	}
	if err := validateDriver(d); err != nil {
		return domain.Driver{}, err
	}

	created, err := s.drivers.Create(ctx, d)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single driver by ID.
func (s *DriverService) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.GetByID: %w", err)
	}
	return d, nil
}

// List returns all drivers, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DriverService) List(ctx context.Context) ([]domain.Driver, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DriverService.List: %w", err)
	}
	if drivers == nil {
		return []domain.Driver{}, nil
	}
	return drivers, nil
}

// Update validates and persists changes to an existing driver.
func (s *DriverService) Update(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	if err := validateDriver(d); err != nil {
		return domain.Driver{}, err
	}
	updated, err := s.drivers.Update(ctx, d)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Update: %w", err)
	}
	return updated, nil
}

// validateDriver enforces business rules common to both Create and Update.
func validateDriver(d domain.Driver) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return fmt.Errorf("%w: license_number is required", domain.ErrValidation)
	}
	if d.LicenseExpiry.IsZero() {
		return fmt.Errorf("%w: license_expiry is required", domain.ErrValidation)
	}
	if d.SafetyScore < 0 || d.SafetyScore > 100 {
		return fmt.Errorf("%w: safety_score must be between 0 and 100", domain.ErrValidation)
	}
	return nil
}
