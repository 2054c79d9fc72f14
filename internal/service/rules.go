// Package service contains the business logic for the FleetFlow API.
// Services validate inputs, enforce the fleet invariants, and orchestrate
// repo calls. No SQL lives here — services depend on repo interfaces,
// not implementations.
package service

import (
	"fmt"
	"time"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// The functions in this file are the pure fleet invariant rules: they take
// already-loaded entities plus a timestamp and return a typed error or nil.
// Keeping them free of I/O lets the lifecycle engine run them against
// freshly locked rows inside a transaction, and lets tests exercise every
// boundary without a database.

// checkDispatch validates every dispatch precondition, in order.
// First failure wins:
//  1. trip must be DRAFT            → ErrInvalidTransition
//  2. vehicle must be AVAILABLE     → ErrPreconditionFailed
//  3. driver must be ON_DUTY        → ErrPreconditionFailed
//  4. license must not be expired   → ErrPreconditionFailed
//  5. cargo must fit capacity       → ErrPreconditionFailed
func checkDispatch(trip domain.Trip, vehicle domain.Vehicle, driver domain.Driver, now time.Time) error {
	if trip.Status != domain.TripDraft {
		return fmt.Errorf("%w: cannot dispatch a trip with status %s", domain.ErrInvalidTransition, trip.Status)
	}
	if vehicle.Status != domain.VehicleAvailable {
		return fmt.Errorf("%w: vehicle is not available (current status: %s)", domain.ErrPreconditionFailed, vehicle.Status)
	}
	if driver.Status != domain.DriverOnDuty {
		return fmt.Errorf("%w: driver is not on duty (current status: %s)", domain.ErrPreconditionFailed, driver.Status)
	}
	if licenseExpired(driver, now) {
		return fmt.Errorf("%w: driver license is expired", domain.ErrPreconditionFailed)
	}
	if trip.CargoWeight > vehicle.MaxCapacity {
		return fmt.Errorf("%w: cargo weight (%g kg) exceeds vehicle capacity (%g kg)",
			domain.ErrPreconditionFailed, trip.CargoWeight, vehicle.MaxCapacity)
	}
	return nil
}

// licenseExpired reports whether the driver's license is unusable at now.
// An expiry equal to now (or any instant not strictly in the future) counts
// as expired — a license expiring today cannot be dispatched on.
func licenseExpired(driver domain.Driver, now time.Time) bool {
	return !driver.LicenseExpiry.After(now)
}

// checkComplete validates trip completion.
// The trip must be DISPATCHED; when both odometer bounds are known the end
// reading must not be below the start.
func checkComplete(trip domain.Trip, endOdometer *float64) error {
	if trip.Status != domain.TripDispatched {
		return fmt.Errorf("%w: cannot complete a trip with status %s", domain.ErrInvalidTransition, trip.Status)
	}
	if endOdometer != nil && trip.StartOdometer != nil && *endOdometer < *trip.StartOdometer {
		return fmt.Errorf("%w: end odometer cannot be less than start odometer", domain.ErrPreconditionFailed)
	}
	return nil
}

// checkCancel validates trip cancellation: any non-terminal status may cancel.
func checkCancel(trip domain.Trip) error {
	if trip.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot cancel a trip with status %s", domain.ErrInvalidTransition, trip.Status)
	}
	return nil
}
