package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

// AnalyticsService derives the dashboard and per-vehicle metrics from the
// stored entities. It is read-only and recomputes on every query — there is
// no cache to go stale and no incremental state to corrupt.
type AnalyticsService struct {
	vehicles    repo.VehicleRepo
	drivers     repo.DriverRepo
	trips       repo.TripRepo
	fuel        repo.FuelLogRepo
	maintenance repo.MaintenanceRepo
}

// NewAnalyticsService constructs an AnalyticsService over the entity repos.
func NewAnalyticsService(vehicles repo.VehicleRepo, drivers repo.DriverRepo, trips repo.TripRepo, fuel repo.FuelLogRepo, maintenance repo.MaintenanceRepo) *AnalyticsService {
	return &AnalyticsService{
		vehicles:    vehicles,
		drivers:     drivers,
		trips:       trips,
		fuel:        fuel,
		maintenance: maintenance,
	}
}

// Dashboard computes the fleet-wide totals and per-status breakdowns.
func (s *AnalyticsService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.AnalyticsService.Dashboard: %w", err)
	}
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.AnalyticsService.Dashboard: %w", err)
	}
	trips, err := s.trips.List(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.AnalyticsService.Dashboard: %w", err)
	}
	fuelTotals, err := s.fuel.Totals(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.AnalyticsService.Dashboard: %w", err)
	}
	maintenanceCost, err := s.maintenance.TotalCost(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.AnalyticsService.Dashboard: %w", err)
	}

	breakdown := domain.DashboardBreakdown{
		TripsByStatus:    make(map[domain.TripStatus]int, len(domain.TripStatuses)),
		VehiclesByStatus: make(map[domain.VehicleStatus]int, len(domain.VehicleStatuses)),
		DriversByStatus:  make(map[domain.DriverStatus]int, len(domain.DriverStatuses)),
	}
	for _, st := range domain.TripStatuses {
		breakdown.TripsByStatus[st] = 0
	}
	for _, st := range domain.VehicleStatuses {
		breakdown.VehiclesByStatus[st] = 0
	}
	for _, st := range domain.DriverStatuses {
		breakdown.DriversByStatus[st] = 0
	}

	var totalRevenue float64
	for _, t := range trips {
		breakdown.TripsByStatus[t.Status]++
		if t.Status == domain.TripCompleted && t.Revenue != nil {
			totalRevenue += *t.Revenue
		}
	}
	for _, v := range vehicles {
		breakdown.VehiclesByStatus[v.Status]++
	}
	for _, d := range drivers {
		breakdown.DriversByStatus[d.Status]++
	}

	operationalCost := fuelTotals.Cost + maintenanceCost

	return domain.Dashboard{
		Summary: domain.DashboardSummary{
			TotalVehicles:        len(vehicles),
			TotalDrivers:         len(drivers),
			TotalTrips:           len(trips),
			TotalRevenue:         round2(totalRevenue),
			TotalFuelCost:        round2(fuelTotals.Cost),
			TotalFuelLiters:      round2(fuelTotals.Liters),
			TotalMaintenanceCost: round2(maintenanceCost),
			TotalOperationalCost: round2(operationalCost),
			NetProfit:            round2(totalRevenue - operationalCost),
		},
		Breakdown: breakdown,
	}, nil
}

// VehicleAnalytics computes the financial and efficiency metrics for one
// vehicle from its completed trips, fuel logs, and maintenance logs.
func (s *AnalyticsService) VehicleAnalytics(ctx context.Context, vehicleID uuid.UUID) (domain.VehicleAnalytics, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return domain.VehicleAnalytics{}, fmt.Errorf("service.AnalyticsService.VehicleAnalytics: %w", err)
	}
	completed, err := s.trips.ListByVehicleAndStatus(ctx, vehicleID, domain.TripCompleted)
	if err != nil {
		return domain.VehicleAnalytics{}, fmt.Errorf("service.AnalyticsService.VehicleAnalytics: %w", err)
	}
	fuelTotals, err := s.fuel.TotalsByVehicle(ctx, vehicleID)
	if err != nil {
		return domain.VehicleAnalytics{}, fmt.Errorf("service.AnalyticsService.VehicleAnalytics: %w", err)
	}
	maintenanceCost, err := s.maintenance.TotalCostByVehicle(ctx, vehicleID)
	if err != nil {
		return domain.VehicleAnalytics{}, fmt.Errorf("service.AnalyticsService.VehicleAnalytics: %w", err)
	}

	var totalRevenue, totalKm float64
	for _, t := range completed {
		if t.Revenue != nil {
			totalRevenue += *t.Revenue
		}
		// Trips missing either odometer bound contribute zero distance.
		if t.StartOdometer != nil && t.EndOdometer != nil {
			totalKm += *t.EndOdometer - *t.StartOdometer
		}
	}

	operationalCost := fuelTotals.Cost + maintenanceCost

	result := domain.VehicleAnalytics{
		Vehicle:              vehicle,
		CompletedTrips:       len(completed),
		TotalKmCovered:       round2(totalKm),
		TotalFuelLiters:      round2(fuelTotals.Liters),
		TotalFuelCost:        round2(fuelTotals.Cost),
		TotalMaintenanceCost: round2(maintenanceCost),
		TotalOperationalCost: round2(operationalCost),
		TotalRevenue:         round2(totalRevenue),
	}

	// Never divide by zero: efficiency needs fuel, ROI needs a cost basis.
	if fuelTotals.Liters > 0 {
		eff := round2(totalKm / fuelTotals.Liters)
		result.FuelEfficiency = &eff
	}
	if vehicle.AcquisitionCost > 0 {
		roi := round2((totalRevenue - operationalCost) / vehicle.AcquisitionCost * 100)
		result.ROIPercent = &roi
	}

	return result, nil
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
