// Package domain contains the core data types for the FleetFlow API.
// This package has zero external dependencies beyond uuid and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// VehicleStatus enumerates the lifecycle states of a vehicle.
// Persisted as a string column.
type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "AVAILABLE"
	VehicleOnTrip    VehicleStatus = "ON_TRIP"
	VehicleInShop    VehicleStatus = "IN_SHOP"
	VehicleRetired   VehicleStatus = "RETIRED"
)

// VehicleStatuses lists every vehicle status, in display order.
// Used by the analytics breakdown so each vehicle lands in exactly one bucket.
var VehicleStatuses = []VehicleStatus{
	VehicleAvailable, VehicleOnTrip, VehicleInShop, VehicleRetired,
}

// Vehicle is a cargo vehicle in the fleet.
// Status is written only by the trip lifecycle engine and the maintenance
// side-effect rule; everything else may edit the remaining fields.
type Vehicle struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	LicensePlate    string        `json:"license_plate"`
	MaxCapacity     float64       `json:"max_capacity"`     // kg, > 0
	Odometer        float64       `json:"odometer"`         // km, >= 0
	AcquisitionCost float64       `json:"acquisition_cost"` // > 0
	Status          VehicleStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
