// Package handler implements the HTTP handlers for the FleetFlow API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, vehicle.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/service"
)

// The interfaces below define the business operations each handler depends
// on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.

// TripServicer is the trip lifecycle engine as the handlers see it.
type TripServicer interface {
	Create(ctx context.Context, in service.CreateTripInput) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Dispatch(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Complete(ctx context.Context, id uuid.UUID, in service.CompleteTripInput) (domain.Trip, error)
	Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// VehicleServicer covers vehicle CRUD.
type VehicleServicer interface {
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DriverServicer covers driver CRUD.
type DriverServicer interface {
	Create(ctx context.Context, d domain.Driver) (domain.Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	List(ctx context.Context) ([]domain.Driver, error)
	Update(ctx context.Context, d domain.Driver) (domain.Driver, error)
}

// MaintenanceServicer covers the maintenance side-effect operations.
type MaintenanceServicer interface {
	Create(ctx context.Context, m domain.MaintenanceLog) (domain.MaintenanceLog, error)
	Complete(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error)
	List(ctx context.Context) ([]domain.MaintenanceLog, error)
}

// FuelServicer covers the append-only fuel ledger.
type FuelServicer interface {
	Create(ctx context.Context, f domain.FuelLog) (domain.FuelLog, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.FuelLog, int64, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.FuelLog, error)
}

// AnalyticsServicer covers the read-only aggregations.
type AnalyticsServicer interface {
	Dashboard(ctx context.Context) (domain.Dashboard, error)
	VehicleAnalytics(ctx context.Context, vehicleID uuid.UUID) (domain.VehicleAnalytics, error)
}

// AuthServicer covers registration and login.
type AuthServicer interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
}

// Server holds every handler dependency. Methods are in domain-specific
// files but all operate on this struct.
type Server struct {
	trips       TripServicer
	vehicles    VehicleServicer
	drivers     DriverServicer
	maintenance MaintenanceServicer
	fuel        FuelServicer
	analytics   AnalyticsServicer
	auth        AuthServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, vehicles VehicleServicer, drivers DriverServicer, maintenance MaintenanceServicer, fuel FuelServicer, analytics AnalyticsServicer, auth AuthServicer) *Server {
	return &Server{
		trips:       trips,
		vehicles:    vehicles,
		drivers:     drivers,
		maintenance: maintenance,
		fuel:        fuel,
		analytics:   analytics,
		auth:        auth,
	}
}
