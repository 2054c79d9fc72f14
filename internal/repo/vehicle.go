package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type VehicleRepo interface {
	// Create inserts a new vehicle and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	// Returns domain.ErrConflict on a duplicate license plate.
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)

	// GetByID retrieves a single vehicle by its UUID primary key.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)

	// GetByIDForUpdate retrieves a vehicle with a row lock (SELECT ... FOR
	// UPDATE). Must be called inside a transaction; concurrent lifecycle
	// operations on the same vehicle serialize on this lock.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)

	// List returns all vehicles ordered by created_at descending.
	List(ctx context.Context) ([]domain.Vehicle, error)

	// Update overwrites the mutable fields of an existing vehicle and returns
	// the updated record. Returns domain.ErrNotFound if the vehicle does not
	// exist, domain.ErrConflict on a duplicate license plate.
	Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)

	// SetStatus updates only the status column.
	// Returns domain.ErrNotFound if the vehicle does not exist.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus) error

	// SetStatusAndOdometer updates the status and odometer columns together,
	// used by trip completion. Returns domain.ErrNotFound if absent.
	SetStatusAndOdometer(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, odometer float64) error

	// Delete removes a vehicle by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgVehicleRepo is the Postgres implementation of VehicleRepo.
type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

const vehicleColumns = `id, name, license_plate, max_capacity, odometer, acquisition_cost, status, created_at, updated_at`

// Create inserts a new vehicle row and returns the full persisted record.
func (r *pgVehicleRepo) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		INSERT INTO vehicles (name, license_plate, max_capacity, odometer, acquisition_cost, status)
		VALUES (@name, @license_plate, @max_capacity, @odometer, @acquisition_cost, @status)
		RETURNING ` + vehicleColumns

	args := pgx.NamedArgs{
		"name":             v.Name,
		"license_plate":    v.LicensePlate,
		"max_capacity":     v.MaxCapacity,
		"odometer":         v.Odometer,
		"acquisition_cost": v.AcquisitionCost,
		"status":           v.Status,
	}

	result, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a vehicle by primary key.
func (r *pgVehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByIDForUpdate retrieves a vehicle by primary key with a row lock.
func (r *pgVehicleRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = @id FOR UPDATE`

	result, err := scanVehicle(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByIDForUpdate: %w", err)
	}
	return result, nil
}

// List returns all vehicles, newest first.
func (r *pgVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.List: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: rows: %w", err)
	}
	return vehicles, nil
}

// Update overwrites the mutable fields of a vehicle and returns the updated record.
func (r *pgVehicleRepo) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		UPDATE vehicles
		SET name             = @name,
		    license_plate    = @license_plate,
		    max_capacity     = @max_capacity,
		    odometer         = @odometer,
		    acquisition_cost = @acquisition_cost,
		    status           = @status,
		    updated_at       = now()
		WHERE id = @id
		RETURNING ` + vehicleColumns

	args := pgx.NamedArgs{
		"id":               v.ID,
		"name":             v.Name,
		"license_plate":    v.LicensePlate,
		"max_capacity":     v.MaxCapacity,
		"odometer":         v.Odometer,
		"acquisition_cost": v.AcquisitionCost,
		"status":           v.Status,
	}

	result, err := scanVehicle(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", err)
	}
	return result, nil
}

// SetStatus updates only the status column.
func (r *pgVehicleRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus) error {
	const q = `UPDATE vehicles SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": status})
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.SetStatus: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.SetStatus: %w", domain.ErrNotFound)
	}
	return nil
}

// SetStatusAndOdometer updates status and odometer in one statement.
func (r *pgVehicleRepo) SetStatusAndOdometer(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, odometer float64) error {
	const q = `UPDATE vehicles SET status = @status, odometer = @odometer, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": status, "odometer": odometer})
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.SetStatusAndOdometer: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.SetStatusAndOdometer: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a vehicle by primary key.
func (r *pgVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM vehicles WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanVehicle maps a single database row into a domain.Vehicle.
func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v  domain.Vehicle
		id pgtype.UUID
	)

	err := s.Scan(&id, &v.Name, &v.LicensePlate, &v.MaxCapacity, &v.Odometer,
		&v.AcquisitionCost, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.Vehicle{}, mapPgError(err)
	}

	v.ID = uuid.UUID(id.Bytes)
	return v, nil
}
