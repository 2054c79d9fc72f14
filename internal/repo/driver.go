package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// DriverRepo defines the persistence operations for Drivers.
type DriverRepo interface {
	// Create inserts a new driver and returns the persisted record.
	// Returns domain.ErrConflict on a duplicate license number.
	Create(ctx context.Context, d domain.Driver) (domain.Driver, error)

	// GetByID retrieves a single driver by its UUID primary key.
	// Returns domain.ErrNotFound if no driver with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)

	// GetByIDForUpdate retrieves a driver with a row lock (SELECT ... FOR
	// UPDATE). Must be called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Driver, error)

	// List returns all drivers ordered by created_at descending.
	List(ctx context.Context) ([]domain.Driver, error)

	// Update overwrites the mutable fields of an existing driver and returns
	// the updated record. Returns domain.ErrNotFound if the driver does not
	// exist, domain.ErrConflict on a duplicate license number.
	Update(ctx context.Context, d domain.Driver) (domain.Driver, error)

	// SetStatus updates only the status column.
	// Returns domain.ErrNotFound if the driver does not exist.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.DriverStatus) error
}

// pgDriverRepo is the Postgres implementation of DriverRepo.
type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

const driverColumns = `id, name, license_number, license_expiry, safety_score, status, created_at, updated_at`

// Create inserts a new driver row and returns the full persisted record.
func (r *pgDriverRepo) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	const q = `
		INSERT INTO drivers (name, license_number, license_expiry, safety_score, status)
		VALUES (@name, @license_number, @license_expiry, @safety_score, @status)
		RETURNING ` + driverColumns

	args := pgx.NamedArgs{
		"name":           d.Name,
		"license_number": d.LicenseNumber,
		"license_expiry": d.LicenseExpiry,
		"safety_score":   d.SafetyScore,
		"status":         d.Status,
	}

	result, err := scanDriver(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a driver by primary key.
func (r *pgDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers WHERE id = @id`

	result, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByIDForUpdate retrieves a driver by primary key with a row lock.
func (r *pgDriverRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers WHERE id = @id FOR UPDATE`

	result, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByIDForUpdate: %w", err)
	}
	return result, nil
}

// List returns all drivers, newest first.
func (r *pgDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: %w", err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DriverRepo.List: scan: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: rows: %w", err)
	}
	return drivers, nil
}

// Update overwrites the mutable fields of a driver and returns the updated record.
func (r *pgDriverRepo) Update(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	const q = `
		UPDATE drivers
		SET name           = @name,
		    license_number = @license_number,
		    license_expiry = @license_expiry,
		    safety_score   = @safety_score,
		    status         = @status,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + driverColumns

	args := pgx.NamedArgs{
		"id":             d.ID,
		"name":           d.Name,
		"license_number": d.LicenseNumber,
		"license_expiry": d.LicenseExpiry,
		"safety_score":   d.SafetyScore,
		"status":         d.Status,
	}

	result, err := scanDriver(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Update: %w", err)
	}
	return result, nil
}

// SetStatus updates only the status column.
func (r *pgDriverRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.DriverStatus) error {
	const q = `UPDATE drivers SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": status})
	if err != nil {
		return fmt.Errorf("repo.DriverRepo.SetStatus: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DriverRepo.SetStatus: %w", domain.ErrNotFound)
	}
	return nil
}

// scanDriver maps a single database row into a domain.Driver.
// license_expiry is a DATE column; it scans into time.Time at midnight UTC.
func scanDriver(s scanner) (domain.Driver, error) {
	var (
		d      domain.Driver
		id     pgtype.UUID
		expiry pgtype.Date
	)

	err := s.Scan(&id, &d.Name, &d.LicenseNumber, &expiry, &d.SafetyScore,
		&d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Driver{}, mapPgError(err)
	}

	d.ID = uuid.UUID(id.Bytes)
	d.LicenseExpiry = expiry.Time
	return d, nil
}
