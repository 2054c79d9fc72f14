package service_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

// fleetStore is an in-memory stand-in for the database, shared by the fake
// repos below. The lifecycle tests need real read-your-writes behavior
// (dispatch flips three rows, complete reads them back), which per-method
// function mocks cannot provide without a lot of ceremony.
type fleetStore struct {
	vehicles    map[uuid.UUID]domain.Vehicle
	drivers     map[uuid.UUID]domain.Driver
	trips       map[uuid.UUID]domain.Trip
	maintenance map[uuid.UUID]domain.MaintenanceLog
	fuel        []domain.FuelLog
}

func newFleetStore() *fleetStore {
	return &fleetStore{
		vehicles:    make(map[uuid.UUID]domain.Vehicle),
		drivers:     make(map[uuid.UUID]domain.Driver),
		trips:       make(map[uuid.UUID]domain.Trip),
		maintenance: make(map[uuid.UUID]domain.MaintenanceLog),
	}
}

func (s *fleetStore) addVehicle(v domain.Vehicle) domain.Vehicle {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	s.vehicles[v.ID] = v
	return v
}

func (s *fleetStore) addDriver(d domain.Driver) domain.Driver {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	s.drivers[d.ID] = d
	return d
}

func (s *fleetStore) addTrip(t domain.Trip) domain.Trip {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	s.trips[t.ID] = t
	return t
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
}

// ---- vehicles --------------------------------------------------------------

type fakeVehicleRepo struct{ s *fleetStore }

var _ repo.VehicleRepo = (*fakeVehicleRepo)(nil)

func (r *fakeVehicleRepo) Create(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	for _, existing := range r.s.vehicles {
		if existing.LicensePlate == v.LicensePlate {
			return domain.Vehicle{}, fmt.Errorf("%w: license plate", domain.ErrConflict)
		}
	}
	return r.s.addVehicle(v), nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Vehicle, error) {
	v, ok := r.s.vehicles[id]
	if !ok {
		return domain.Vehicle{}, notFound("vehicle")
	}
	return v, nil
}

func (r *fakeVehicleRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeVehicleRepo) List(_ context.Context) ([]domain.Vehicle, error) {
	out := make([]domain.Vehicle, 0, len(r.s.vehicles))
	for _, v := range r.s.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if _, ok := r.s.vehicles[v.ID]; !ok {
		return domain.Vehicle{}, notFound("vehicle")
	}
	v.UpdatedAt = time.Now()
	r.s.vehicles[v.ID] = v
	return v, nil
}

func (r *fakeVehicleRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.VehicleStatus) error {
	v, ok := r.s.vehicles[id]
	if !ok {
		return notFound("vehicle")
	}
	v.Status = status
	r.s.vehicles[id] = v
	return nil
}

func (r *fakeVehicleRepo) SetStatusAndOdometer(_ context.Context, id uuid.UUID, status domain.VehicleStatus, odometer float64) error {
	v, ok := r.s.vehicles[id]
	if !ok {
		return notFound("vehicle")
	}
	v.Status = status
	v.Odometer = odometer
	r.s.vehicles[id] = v
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.vehicles[id]; !ok {
		return notFound("vehicle")
	}
	delete(r.s.vehicles, id)
	return nil
}

// ---- drivers ---------------------------------------------------------------

type fakeDriverRepo struct{ s *fleetStore }

var _ repo.DriverRepo = (*fakeDriverRepo)(nil)

func (r *fakeDriverRepo) Create(_ context.Context, d domain.Driver) (domain.Driver, error) {
	for _, existing := range r.s.drivers {
		if existing.LicenseNumber == d.LicenseNumber {
			return domain.Driver{}, fmt.Errorf("%w: license number", domain.ErrConflict)
		}
	}
	return r.s.addDriver(d), nil
}

func (r *fakeDriverRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Driver, error) {
	d, ok := r.s.drivers[id]
	if !ok {
		return domain.Driver{}, notFound("driver")
	}
	return d, nil
}

func (r *fakeDriverRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeDriverRepo) List(_ context.Context) ([]domain.Driver, error) {
	out := make([]domain.Driver, 0, len(r.s.drivers))
	for _, d := range r.s.drivers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeDriverRepo) Update(_ context.Context, d domain.Driver) (domain.Driver, error) {
	if _, ok := r.s.drivers[d.ID]; !ok {
		return domain.Driver{}, notFound("driver")
	}
	d.UpdatedAt = time.Now()
	r.s.drivers[d.ID] = d
	return d, nil
}

func (r *fakeDriverRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.DriverStatus) error {
	d, ok := r.s.drivers[id]
	if !ok {
		return notFound("driver")
	}
	d.Status = status
	r.s.drivers[id] = d
	return nil
}

// ---- trips -----------------------------------------------------------------

type fakeTripRepo struct{ s *fleetStore }

var _ repo.TripRepo = (*fakeTripRepo)(nil)

func (r *fakeTripRepo) Create(_ context.Context, t domain.Trip) (domain.Trip, error) {
	return r.s.addTrip(t), nil
}

func (r *fakeTripRepo) joined(t domain.Trip) domain.Trip {
	if v, ok := r.s.vehicles[t.VehicleID]; ok {
		t.Vehicle = &v
	}
	if d, ok := r.s.drivers[t.DriverID]; ok {
		t.Driver = &d
	}
	return t
}

func (r *fakeTripRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	t, ok := r.s.trips[id]
	if !ok {
		return domain.Trip{}, notFound("trip")
	}
	return r.joined(t), nil
}

func (r *fakeTripRepo) GetByIDForUpdate(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	t, ok := r.s.trips[id]
	if !ok {
		return domain.Trip{}, notFound("trip")
	}
	return t, nil
}

func (r *fakeTripRepo) List(_ context.Context) ([]domain.Trip, error) {
	out := make([]domain.Trip, 0, len(r.s.trips))
	for _, t := range r.s.trips {
		out = append(out, r.joined(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	all, _ := r.List(ctx)
	total := int64(len(all))
	lo := p.Offset()
	if lo >= len(all) {
		return nil, total, nil
	}
	hi := lo + p.Limit
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

func (r *fakeTripRepo) ListByVehicleAndStatus(_ context.Context, vehicleID uuid.UUID, status domain.TripStatus) ([]domain.Trip, error) {
	var out []domain.Trip
	for _, t := range r.s.trips {
		if t.VehicleID == vehicleID && t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) CountByVehicleAndStatus(ctx context.Context, vehicleID uuid.UUID, status domain.TripStatus) (int64, error) {
	trips, _ := r.ListByVehicleAndStatus(ctx, vehicleID, status)
	return int64(len(trips)), nil
}

func (r *fakeTripRepo) SetStatus(_ context.Context, id uuid.UUID, status domain.TripStatus) error {
	t, ok := r.s.trips[id]
	if !ok {
		return notFound("trip")
	}
	t.Status = status
	r.s.trips[id] = t
	return nil
}

func (r *fakeTripRepo) Complete(_ context.Context, id uuid.UUID, endOdometer, revenue *float64) error {
	t, ok := r.s.trips[id]
	if !ok {
		return notFound("trip")
	}
	t.Status = domain.TripCompleted
	if endOdometer != nil {
		t.EndOdometer = endOdometer
	}
	if revenue != nil {
		t.Revenue = revenue
	}
	r.s.trips[id] = t
	return nil
}

// ---- maintenance -----------------------------------------------------------

type fakeMaintenanceRepo struct{ s *fleetStore }

var _ repo.MaintenanceRepo = (*fakeMaintenanceRepo)(nil)

func (r *fakeMaintenanceRepo) Create(_ context.Context, m domain.MaintenanceLog) (domain.MaintenanceLog, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.s.maintenance[m.ID] = m
	return m, nil
}

func (r *fakeMaintenanceRepo) GetByID(_ context.Context, id uuid.UUID) (domain.MaintenanceLog, error) {
	m, ok := r.s.maintenance[id]
	if !ok {
		return domain.MaintenanceLog{}, notFound("maintenance log")
	}
	return m, nil
}

func (r *fakeMaintenanceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeMaintenanceRepo) List(_ context.Context) ([]domain.MaintenanceLog, error) {
	out := make([]domain.MaintenanceLog, 0, len(r.s.maintenance))
	for _, m := range r.s.maintenance {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeMaintenanceRepo) ListByVehicle(_ context.Context, vehicleID uuid.UUID) ([]domain.MaintenanceLog, error) {
	var out []domain.MaintenanceLog
	for _, m := range r.s.maintenance {
		if m.VehicleID == vehicleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMaintenanceRepo) SetCompleted(_ context.Context, id uuid.UUID) error {
	m, ok := r.s.maintenance[id]
	if !ok {
		return notFound("maintenance log")
	}
	m.Completed = true
	r.s.maintenance[id] = m
	return nil
}

func (r *fakeMaintenanceRepo) TotalCost(_ context.Context) (float64, error) {
	var total float64
	for _, m := range r.s.maintenance {
		total += m.Cost
	}
	return total, nil
}

func (r *fakeMaintenanceRepo) TotalCostByVehicle(_ context.Context, vehicleID uuid.UUID) (float64, error) {
	var total float64
	for _, m := range r.s.maintenance {
		if m.VehicleID == vehicleID {
			total += m.Cost
		}
	}
	return total, nil
}

// ---- fuel ------------------------------------------------------------------

type fakeFuelLogRepo struct{ s *fleetStore }

var _ repo.FuelLogRepo = (*fakeFuelLogRepo)(nil)

func (r *fakeFuelLogRepo) Create(_ context.Context, f domain.FuelLog) (domain.FuelLog, error) {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	r.s.fuel = append(r.s.fuel, f)
	return f, nil
}

func (r *fakeFuelLogRepo) List(_ context.Context) ([]domain.FuelLog, error) {
	return append([]domain.FuelLog(nil), r.s.fuel...), nil
}

func (r *fakeFuelLogRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelLog, int64, error) {
	all, _ := r.List(ctx)
	total := int64(len(all))
	lo := p.Offset()
	if lo >= len(all) {
		return nil, total, nil
	}
	hi := lo + p.Limit
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

func (r *fakeFuelLogRepo) ListByVehicle(_ context.Context, vehicleID uuid.UUID) ([]domain.FuelLog, error) {
	var out []domain.FuelLog
	for _, f := range r.s.fuel {
		if f.VehicleID == vehicleID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFuelLogRepo) Totals(_ context.Context) (repo.FuelTotals, error) {
	var t repo.FuelTotals
	for _, f := range r.s.fuel {
		t.Liters += f.Liters
		t.Cost += f.Cost
	}
	return t, nil
}

func (r *fakeFuelLogRepo) TotalsByVehicle(_ context.Context, vehicleID uuid.UUID) (repo.FuelTotals, error) {
	var t repo.FuelTotals
	for _, f := range r.s.fuel {
		if f.VehicleID == vehicleID {
			t.Liters += f.Liters
			t.Cost += f.Cost
		}
	}
	return t, nil
}

// ---- unit of work ----------------------------------------------------------

// fakeAtomic hands the callback fake repos over the shared store. There is
// no rollback: the services under test run their rule checks before any
// write, so a failing operation never leaves partial state behind.
type fakeAtomic struct{ s *fleetStore }

var _ repo.Atomic = (*fakeAtomic)(nil)

func (a *fakeAtomic) InTx(_ context.Context, fn func(r repo.TxRepos) error) error {
	return fn(repo.TxRepos{
		Vehicles:    &fakeVehicleRepo{a.s},
		Drivers:     &fakeDriverRepo{a.s},
		Trips:       &fakeTripRepo{a.s},
		Maintenance: &fakeMaintenanceRepo{a.s},
	})
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
