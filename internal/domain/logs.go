package domain

import (
	"time"

	"github.com/google/uuid"
)

// FuelLog records one refuelling of a vehicle.
// Append-only: the core never updates or deletes fuel logs.
type FuelLog struct {
	ID        uuid.UUID `json:"id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
	Liters    float64   `json:"liters"` // > 0
	Cost      float64   `json:"cost"`   // > 0
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// MaintenanceLog records one service job on a vehicle.
// Creating a log forces the vehicle into IN_SHOP; completing it returns
// the vehicle to AVAILABLE.
type MaintenanceLog struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"` // > 0
	Date        time.Time `json:"date"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty"`
}
