package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// Reads return the trip with its vehicle and driver joined, because every
// caller (lifecycle engine, handlers, analytics) needs the satellite rows.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record without joins.
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)

	// GetByID retrieves a trip with its vehicle and driver joined.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetByIDForUpdate retrieves a trip (no joins) with a row lock
	// (SELECT ... FOR UPDATE). Must be called inside a transaction; this is
	// what serializes concurrent lifecycle operations on the same trip.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips with joins, ordered by created_at descending.
	// Used by the analytics aggregator, which needs the full set.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of trips with joins, newest first, plus
	// the total row count for the pagination envelope.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// ListByVehicleAndStatus returns the trips of one vehicle in the given
	// status, without joins. Used by the analytics aggregator.
	ListByVehicleAndStatus(ctx context.Context, vehicleID uuid.UUID, status domain.TripStatus) ([]domain.Trip, error)

	// CountByVehicleAndStatus counts the trips of one vehicle in the given
	// status. Used by the vehicle delete guard.
	CountByVehicleAndStatus(ctx context.Context, vehicleID uuid.UUID, status domain.TripStatus) (int64, error)

	// SetStatus updates only the status column.
	// Returns domain.ErrNotFound if the trip does not exist.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error

	// Complete sets the status to COMPLETED and overwrites end_odometer and
	// revenue where the corresponding argument is non-nil; nil arguments
	// leave the stored value untouched.
	Complete(ctx context.Context, id uuid.UUID, endOdometer, revenue *float64) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `t.id, t.vehicle_id, t.driver_id, t.cargo_weight, t.start_odometer, t.end_odometer, t.revenue, t.status, t.created_at, t.updated_at`

const tripJoinedQuery = `
	SELECT ` + tripColumns + `,
	       v.id, v.name, v.license_plate, v.max_capacity, v.odometer, v.acquisition_cost, v.status, v.created_at, v.updated_at,
	       d.id, d.name, d.license_number, d.license_expiry, d.safety_score, d.status, d.created_at, d.updated_at
	FROM trips t
	JOIN vehicles v ON v.id = t.vehicle_id
	JOIN drivers  d ON d.id = t.driver_id`

// Create inserts a new trip row and returns the persisted record.
func (r *pgTripRepo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (vehicle_id, driver_id, cargo_weight, start_odometer, revenue, status)
		VALUES (@vehicle_id, @driver_id, @cargo_weight, @start_odometer, @revenue, @status)
		RETURNING id, vehicle_id, driver_id, cargo_weight, start_odometer, end_odometer, revenue, status, created_at, updated_at`

	args := pgx.NamedArgs{
		"vehicle_id":     t.VehicleID,
		"driver_id":      t.DriverID,
		"cargo_weight":   t.CargoWeight,
		"start_odometer": t.StartOdometer, // nil becomes NULL
		"revenue":        t.Revenue,
		"status":         t.Status,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip with its vehicle and driver joined.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := tripJoinedQuery + ` WHERE t.id = @id`

	result, err := scanTripJoined(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByIDForUpdate retrieves the bare trip row with a row lock.
// No joins: FOR UPDATE must target only the trips row so the vehicle and
// driver locks are taken explicitly (and in a fixed order) by the engine.
func (r *pgTripRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, vehicle_id, driver_id, cargo_weight, start_odometer, end_odometer, revenue, status, created_at, updated_at
		FROM trips
		WHERE id = @id
		FOR UPDATE`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByIDForUpdate: %w", err)
	}
	return result, nil
}

// List returns all trips with joins, newest first.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q := tripJoinedQuery + ` ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTripJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// ListPaged returns one page of trips with joins, newest first, and the
// total trip count. The count runs in the same statement via a window
// function so page and total always agree.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `,
		       v.id, v.name, v.license_plate, v.max_capacity, v.odometer, v.acquisition_cost, v.status, v.created_at, v.updated_at,
		       d.id, d.name, d.license_number, d.license_expiry, d.safety_score, d.status, d.created_at, d.updated_at,
		       count(*) OVER() AS total
		FROM trips t
		JOIN vehicles v ON v.id = t.vehicle_id
		JOIN drivers  d ON d.id = t.driver_id
		ORDER BY t.created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.Trip
		total int64
	)
	for rows.Next() {
		t, n, err := scanTripJoinedWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	// An empty page past the end still needs the real total.
	if trips == nil && p.Offset() > 0 {
		const countQ = `SELECT count(*) FROM trips`
		if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", mapPgError(err))
		}
	}
	return trips, total, nil
}

// ListByVehicleAndStatus returns one vehicle's trips in the given status.
func (r *pgTripRepo) ListByVehicleAndStatus(ctx context.Context, vehicleID uuid.UUID, status domain.TripStatus) ([]domain.Trip, error) {
	const q = `
		SELECT id, vehicle_id, driver_id, cargo_weight, start_odometer, end_odometer, revenue, status, created_at, updated_at
		FROM trips
		WHERE vehicle_id = @vehicle_id AND status = @status
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"vehicle_id": vehicleID, "status": status})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByVehicleAndStatus: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByVehicleAndStatus: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByVehicleAndStatus: rows: %w", err)
	}
	return trips, nil
}

// CountByVehicleAndStatus counts one vehicle's trips in the given status.
func (r *pgTripRepo) CountByVehicleAndStatus(ctx context.Context, vehicleID uuid.UUID, status domain.TripStatus) (int64, error) {
	const q = `SELECT count(*) FROM trips WHERE vehicle_id = @vehicle_id AND status = @status`

	var n int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"vehicle_id": vehicleID, "status": status}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.CountByVehicleAndStatus: %w", mapPgError(err))
	}
	return n, nil
}

// SetStatus updates only the status column.
func (r *pgTripRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	const q = `UPDATE trips SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": status})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetStatus: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.SetStatus: %w", domain.ErrNotFound)
	}
	return nil
}

// Complete marks the trip COMPLETED; COALESCE keeps the stored end_odometer
// and revenue when the corresponding argument is NULL.
func (r *pgTripRepo) Complete(ctx context.Context, id uuid.UUID, endOdometer, revenue *float64) error {
	const q = `
		UPDATE trips
		SET status       = @status,
		    end_odometer = COALESCE(@end_odometer, end_odometer),
		    revenue      = COALESCE(@revenue, revenue),
		    updated_at   = now()
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":           id,
		"status":       domain.TripCompleted,
		"end_odometer": endOdometer,
		"revenue":      revenue,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Complete: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Complete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a bare trips row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                   domain.Trip
		id, vehicleID, drID pgtype.UUID
	)

	err := s.Scan(&id, &vehicleID, &drID, &t.CargoWeight, &t.StartOdometer,
		&t.EndOdometer, &t.Revenue, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, mapPgError(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.VehicleID = uuid.UUID(vehicleID.Bytes)
	t.DriverID = uuid.UUID(drID.Bytes)
	return t, nil
}

// scanTripJoinedWithTotal maps a joined trips row carrying a trailing
// count(*) OVER() column.
func scanTripJoinedWithTotal(s scanner) (domain.Trip, int64, error) {
	var (
		t                   domain.Trip
		id, vehicleID, drID pgtype.UUID
		v                   domain.Vehicle
		vID                 pgtype.UUID
		d                   domain.Driver
		dID                 pgtype.UUID
		expiry              pgtype.Date
		total               int64
	)

	err := s.Scan(
		&id, &vehicleID, &drID, &t.CargoWeight, &t.StartOdometer,
		&t.EndOdometer, &t.Revenue, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&vID, &v.Name, &v.LicensePlate, &v.MaxCapacity, &v.Odometer,
		&v.AcquisitionCost, &v.Status, &v.CreatedAt, &v.UpdatedAt,
		&dID, &d.Name, &d.LicenseNumber, &expiry, &d.SafetyScore,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
		&total,
	)
	if err != nil {
		return domain.Trip{}, 0, mapPgError(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.VehicleID = uuid.UUID(vehicleID.Bytes)
	t.DriverID = uuid.UUID(drID.Bytes)
	v.ID = uuid.UUID(vID.Bytes)
	d.ID = uuid.UUID(dID.Bytes)
	d.LicenseExpiry = expiry.Time
	t.Vehicle = &v
	t.Driver = &d
	return t, total, nil
}

// scanTripJoined maps a trips row joined with its vehicle and driver.
func scanTripJoined(s scanner) (domain.Trip, error) {
	var (
		t                   domain.Trip
		id, vehicleID, drID pgtype.UUID
		v                   domain.Vehicle
		vID                 pgtype.UUID
		d                   domain.Driver
		dID                 pgtype.UUID
		expiry              pgtype.Date
	)

	err := s.Scan(
		&id, &vehicleID, &drID, &t.CargoWeight, &t.StartOdometer,
		&t.EndOdometer, &t.Revenue, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&vID, &v.Name, &v.LicensePlate, &v.MaxCapacity, &v.Odometer,
		&v.AcquisitionCost, &v.Status, &v.CreatedAt, &v.UpdatedAt,
		&dID, &d.Name, &d.LicenseNumber, &expiry, &d.SafetyScore,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return domain.Trip{}, mapPgError(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.VehicleID = uuid.UUID(vehicleID.Bytes)
	t.DriverID = uuid.UUID(drID.Bytes)
	v.ID = uuid.UUID(vID.Bytes)
	d.ID = uuid.UUID(dID.Bytes)
	d.LicenseExpiry = expiry.Time
	t.Vehicle = &v
	t.Driver = &d
	return t, nil
}
