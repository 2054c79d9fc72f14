package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

// TripService is the trip lifecycle engine. Every mutating operation runs
// as one atomic unit of work: it re-reads the trip and its vehicle/driver
// under row locks, evaluates the fleet invariant rules, and applies all
// writes together. The engine (plus the maintenance rule) is the only
// writer of Vehicle.Status and Driver.Status.
type TripService struct {
	trips    repo.TripRepo
	vehicles repo.VehicleRepo
	drivers  repo.DriverRepo
	atomic   repo.Atomic
	clock    domain.Clock
}

// NewTripService constructs a TripService backed by the provided repos,
// unit-of-work, and clock.
func NewTripService(trips repo.TripRepo, vehicles repo.VehicleRepo, drivers repo.DriverRepo, atomic repo.Atomic, clock domain.Clock) *TripService {
	return &TripService{trips: trips, vehicles: vehicles, drivers: drivers, atomic: atomic, clock: clock}
}

// CreateTripInput carries the fields accepted at trip creation.
type CreateTripInput struct {
	VehicleID     uuid.UUID
	DriverID      uuid.UUID
	CargoWeight   float64
	StartOdometer *float64
	Revenue       *float64
}

// CompleteTripInput carries the fields accepted at trip completion.
// Nil fields leave the stored values untouched.
type CompleteTripInput struct {
	EndOdometer *float64
	Revenue     *float64
}

// Create validates the input, verifies both references exist, and inserts
// a DRAFT trip. The vehicle and driver may be busy at creation time — a
// trip can be planned now and dispatched later; occupancy is checked only
// at dispatch.
func (s *TripService) Create(ctx context.Context, in CreateTripInput) (domain.Trip, error) {
	if err := validateTripInput(in); err != nil {
		return domain.Trip{}, err
	}
	if _, err := s.vehicles.GetByID(ctx, in.VehicleID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: vehicle: %w", err)
	}
	if _, err := s.drivers.GetByID(ctx, in.DriverID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: driver: %w", err)
	}

	created, err := s.trips.Create(ctx, domain.Trip{
		VehicleID:     in.VehicleID,
		DriverID:      in.DriverID,
		CargoWeight:   in.CargoWeight,
		StartOdometer: in.StartOdometer,
		Revenue:       in.Revenue,
		Status:        domain.TripDraft,
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	return s.joined(ctx, created.ID, "Create")
}

// GetByID returns a single trip with its vehicle and driver joined.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns one page of trips with joins, newest first, and the total
// trip count. Always returns a non-nil slice so callers can safely range
// over it.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, total, nil
	}
	return trips, total, nil
}

// Dispatch moves a DRAFT trip to DISPATCHED and occupies its vehicle and
// driver, all inside one transaction. Preconditions are checked in a fixed
// order against freshly locked rows; a concurrent dispatch of the same trip
// observes the committed DISPATCHED status and fails with ErrInvalidTransition.
func (s *TripService) Dispatch(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	err := s.atomic.InTx(ctx, func(r repo.TxRepos) error {
		trip, err := r.Trips.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		vehicle, err := r.Vehicles.GetByIDForUpdate(ctx, trip.VehicleID)
		if err != nil {
			return err
		}
		driver, err := r.Drivers.GetByIDForUpdate(ctx, trip.DriverID)
		if err != nil {
			return err
		}

		if err := checkDispatch(trip, vehicle, driver, s.clock.Now()); err != nil {
			return err
		}

		if err := r.Trips.SetStatus(ctx, trip.ID, domain.TripDispatched); err != nil {
			return err
		}
		if err := r.Vehicles.SetStatus(ctx, vehicle.ID, domain.VehicleOnTrip); err != nil {
			return err
		}
		return r.Drivers.SetStatus(ctx, driver.ID, domain.DriverOnTrip)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Dispatch: %w", err)
	}

	return s.joined(ctx, id, "Dispatch")
}

// Complete moves a DISPATCHED trip to COMPLETED, records the end odometer
// and revenue when supplied, rolls the odometer forward onto the vehicle,
// and frees the vehicle and driver — all inside one transaction.
func (s *TripService) Complete(ctx context.Context, id uuid.UUID, in CompleteTripInput) (domain.Trip, error) {
	if err := validateCompleteInput(in); err != nil {
		return domain.Trip{}, err
	}

	err := s.atomic.InTx(ctx, func(r repo.TxRepos) error {
		trip, err := r.Trips.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		vehicle, err := r.Vehicles.GetByIDForUpdate(ctx, trip.VehicleID)
		if err != nil {
			return err
		}
		if _, err := r.Drivers.GetByIDForUpdate(ctx, trip.DriverID); err != nil {
			return err
		}

		if err := checkComplete(trip, in.EndOdometer); err != nil {
			return err
		}

		if err := r.Trips.Complete(ctx, trip.ID, in.EndOdometer, in.Revenue); err != nil {
			return err
		}

		odometer := vehicle.Odometer
		if in.EndOdometer != nil {
			odometer = *in.EndOdometer
		}
		if err := r.Vehicles.SetStatusAndOdometer(ctx, vehicle.ID, domain.VehicleAvailable, odometer); err != nil {
			return err
		}
		return r.Drivers.SetStatus(ctx, trip.DriverID, domain.DriverOnDuty)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Complete: %w", err)
	}

	return s.joined(ctx, id, "Complete")
}

// Cancel moves a DRAFT or DISPATCHED trip to CANCELLED. When the trip was
// DISPATCHED the vehicle and driver are freed as well; a DRAFT trip never
// occupied them, so they are left untouched.
func (s *TripService) Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	err := s.atomic.InTx(ctx, func(r repo.TxRepos) error {
		trip, err := r.Trips.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := checkCancel(trip); err != nil {
			return err
		}

		wasDispatched := trip.Status == domain.TripDispatched

		if err := r.Trips.SetStatus(ctx, trip.ID, domain.TripCancelled); err != nil {
			return err
		}
		if !wasDispatched {
			return nil
		}

		if err := r.Vehicles.SetStatus(ctx, trip.VehicleID, domain.VehicleAvailable); err != nil {
			return err
		}
		return r.Drivers.SetStatus(ctx, trip.DriverID, domain.DriverOnDuty)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Cancel: %w", err)
	}

	return s.joined(ctx, id, "Cancel")
}

// joined re-reads a trip with its vehicle and driver for the response.
func (s *TripService) joined(ctx context.Context, id uuid.UUID, op string) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: reload: %w", op, err)
	}
	return trip, nil
}

// validateTripInput enforces creation bounds.
// The HTTP layer rejects malformed input before the service is reached, but
// the service defends the same invariants.
func validateTripInput(in CreateTripInput) error {
	if in.VehicleID == uuid.Nil {
		return fmt.Errorf("%w: vehicle_id is required", domain.ErrValidation)
	}
	if in.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver_id is required", domain.ErrValidation)
	}
	if in.CargoWeight <= 0 {
		return fmt.Errorf("%w: cargo_weight must be positive", domain.ErrValidation)
	}
	if in.StartOdometer != nil && *in.StartOdometer < 0 {
		return fmt.Errorf("%w: start_odometer must be non-negative", domain.ErrValidation)
	}
	if in.Revenue != nil && *in.Revenue < 0 {
		return fmt.Errorf("%w: revenue must be non-negative", domain.ErrValidation)
	}
	return nil
}

// validateCompleteInput enforces completion bounds.
func validateCompleteInput(in CompleteTripInput) error {
	if in.EndOdometer != nil && *in.EndOdometer < 0 {
		return fmt.Errorf("%w: end_odometer must be non-negative", domain.ErrValidation)
	}
	if in.Revenue != nil && *in.Revenue < 0 {
		return fmt.Errorf("%w: revenue must be non-negative", domain.ErrValidation)
	}
	return nil
}
