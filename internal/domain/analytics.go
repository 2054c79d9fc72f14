package domain

// DashboardSummary carries the fleet-wide financial totals.
// All monetary values and liters are rounded to 2 decimal places.
type DashboardSummary struct {
	TotalVehicles        int     `json:"total_vehicles"`
	TotalDrivers         int     `json:"total_drivers"`
	TotalTrips           int     `json:"total_trips"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalFuelCost        float64 `json:"total_fuel_cost"`
	TotalFuelLiters      float64 `json:"total_fuel_liters"`
	TotalMaintenanceCost float64 `json:"total_maintenance_cost"`
	TotalOperationalCost float64 `json:"total_operational_cost"`
	NetProfit            float64 `json:"net_profit"`
}

// DashboardBreakdown partitions each entity population by status.
// Every entity is counted in exactly one bucket.
type DashboardBreakdown struct {
	TripsByStatus    map[TripStatus]int    `json:"trips_by_status"`
	VehiclesByStatus map[VehicleStatus]int `json:"vehicles_by_status"`
	DriversByStatus  map[DriverStatus]int  `json:"drivers_by_status"`
}

// Dashboard is the full fleet-wide analytics result.
type Dashboard struct {
	Summary   DashboardSummary   `json:"summary"`
	Breakdown DashboardBreakdown `json:"breakdown"`
}

// VehicleAnalytics carries the per-vehicle financial and efficiency metrics.
// FuelEfficiencyKmPerLiter is nil when no fuel has been logged;
// ROIPercent is nil when the vehicle has no acquisition cost recorded.
type VehicleAnalytics struct {
	Vehicle              Vehicle  `json:"vehicle"`
	CompletedTrips       int      `json:"completed_trips"`
	TotalKmCovered       float64  `json:"total_km_covered"`
	TotalFuelLiters      float64  `json:"total_fuel_liters"`
	TotalFuelCost        float64  `json:"total_fuel_cost"`
	TotalMaintenanceCost float64  `json:"total_maintenance_cost"`
	TotalOperationalCost float64  `json:"total_operational_cost"`
	TotalRevenue         float64  `json:"total_revenue"`
	FuelEfficiency       *float64 `json:"fuel_efficiency_km_per_liter"`
	ROIPercent           *float64 `json:"roi_percent"`
}
