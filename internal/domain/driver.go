package domain

import (
	"time"

	"github.com/google/uuid"
)

// DriverStatus enumerates the duty states of a driver.
// Persisted as a string column.
type DriverStatus string

const (
	DriverOnDuty    DriverStatus = "ON_DUTY"
	DriverOnTrip    DriverStatus = "ON_TRIP"
	DriverOffDuty   DriverStatus = "OFF_DUTY"
	DriverSuspended DriverStatus = "SUSPENDED"
)

// DriverStatuses lists every driver status, in display order.
var DriverStatuses = []DriverStatus{
	DriverOnDuty, DriverOnTrip, DriverOffDuty, DriverSuspended,
}

// Driver is a licensed operator of fleet vehicles.
// Status is written only by the trip lifecycle engine (ON_DUTY ↔ ON_TRIP);
// OFF_DUTY and SUSPENDED are set through direct edits.
type Driver struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	LicenseNumber string       `json:"license_number"`
	LicenseExpiry time.Time    `json:"license_expiry"`
	SafetyScore   float64      `json:"safety_score"` // 0–100
	Status        DriverStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
