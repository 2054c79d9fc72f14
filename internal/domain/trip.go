package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus enumerates the lifecycle states of a trip.
// Persisted as a string column.
type TripStatus string

const (
	TripDraft      TripStatus = "DRAFT"
	TripDispatched TripStatus = "DISPATCHED"
	TripCompleted  TripStatus = "COMPLETED"
	TripCancelled  TripStatus = "CANCELLED"
)

// TripStatuses lists every trip status, in display order.
var TripStatuses = []TripStatus{
	TripDraft, TripDispatched, TripCompleted, TripCancelled,
}

// tripTransitions defines the allowed state-machine moves.
// COMPLETED and CANCELLED are terminal: empty transition sets.
var tripTransitions = map[TripStatus][]TripStatus{
	TripDraft:      {TripDispatched, TripCancelled},
	TripDispatched: {TripCompleted, TripCancelled},
	TripCompleted:  {},
	TripCancelled:  {},
}

// CanTransition reports whether from -> to is a legal trip status move.
func CanTransition(from, to TripStatus) bool {
	for _, s := range tripTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s TripStatus) IsTerminal() bool {
	return len(tripTransitions[s]) == 0
}

// Trip is a single cargo assignment of one vehicle and one driver.
// VehicleID and DriverID are set at creation and immutable thereafter.
// Vehicle and Driver are populated on reads that join the referenced rows;
// they are nil when the trip was loaded without joins.
type Trip struct {
	ID            uuid.UUID  `json:"id"`
	VehicleID     uuid.UUID  `json:"vehicle_id"`
	DriverID      uuid.UUID  `json:"driver_id"`
	CargoWeight   float64    `json:"cargo_weight"`             // kg, > 0
	StartOdometer *float64   `json:"start_odometer,omitempty"` // nil when not recorded
	EndOdometer   *float64   `json:"end_odometer,omitempty"`   // nil until completion
	Revenue       *float64   `json:"revenue,omitempty"`        // nil when not yet known
	Status        TripStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty"`
	Driver  *Driver  `json:"driver,omitempty"`
}
