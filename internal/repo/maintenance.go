package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// MaintenanceRepo defines the persistence operations for MaintenanceLogs.
type MaintenanceRepo interface {
	// Create inserts a new maintenance log and returns the persisted record.
	Create(ctx context.Context, m domain.MaintenanceLog) (domain.MaintenanceLog, error)

	// GetByID retrieves a single maintenance log by its UUID primary key.
	// Returns domain.ErrNotFound if no log with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error)

	// GetByIDForUpdate retrieves a maintenance log with a row lock.
	// Must be called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error)

	// List returns all maintenance logs ordered by date descending.
	List(ctx context.Context) ([]domain.MaintenanceLog, error)

	// ListByVehicle returns one vehicle's logs ordered by date descending.
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.MaintenanceLog, error)

	// SetCompleted marks a log completed.
	// Returns domain.ErrNotFound if the log does not exist.
	SetCompleted(ctx context.Context, id uuid.UUID) error

	// TotalCost returns the fleet-wide maintenance cost sum.
	TotalCost(ctx context.Context) (float64, error)

	// TotalCostByVehicle returns the maintenance cost sum for one vehicle.
	TotalCostByVehicle(ctx context.Context, vehicleID uuid.UUID) (float64, error)
}

// pgMaintenanceRepo is the Postgres implementation of MaintenanceRepo.
type pgMaintenanceRepo struct {
	db db
}

// NewMaintenanceRepo constructs a MaintenanceRepo backed by the provided db connection.
func NewMaintenanceRepo(db db) MaintenanceRepo {
	return &pgMaintenanceRepo{db: db}
}

const maintenanceColumns = `id, vehicle_id, description, cost, date, completed, created_at`

// Create inserts a new maintenance log row and returns the persisted record.
func (r *pgMaintenanceRepo) Create(ctx context.Context, m domain.MaintenanceLog) (domain.MaintenanceLog, error) {
	const q = `
		INSERT INTO maintenance_logs (vehicle_id, description, cost, date, completed)
		VALUES (@vehicle_id, @description, @cost, @date, @completed)
		RETURNING ` + maintenanceColumns

	args := pgx.NamedArgs{
		"vehicle_id":  m.VehicleID,
		"description": m.Description,
		"cost":        m.Cost,
		"date":        m.Date,
		"completed":   m.Completed,
	}

	result, err := scanMaintenanceLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.MaintenanceLog{}, fmt.Errorf("repo.MaintenanceRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a maintenance log by primary key.
func (r *pgMaintenanceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error) {
	const q = `SELECT ` + maintenanceColumns + ` FROM maintenance_logs WHERE id = @id`

	result, err := scanMaintenanceLog(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.MaintenanceLog{}, fmt.Errorf("repo.MaintenanceRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByIDForUpdate retrieves a maintenance log by primary key with a row lock.
func (r *pgMaintenanceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error) {
	const q = `SELECT ` + maintenanceColumns + ` FROM maintenance_logs WHERE id = @id FOR UPDATE`

	result, err := scanMaintenanceLog(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.MaintenanceLog{}, fmt.Errorf("repo.MaintenanceRepo.GetByIDForUpdate: %w", err)
	}
	return result, nil
}

// List returns all maintenance logs, most recent date first.
func (r *pgMaintenanceRepo) List(ctx context.Context) ([]domain.MaintenanceLog, error) {
	const q = `SELECT ` + maintenanceColumns + ` FROM maintenance_logs ORDER BY date DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.MaintenanceRepo.List: %w", err)
	}
	defer rows.Close()

	return collectMaintenanceLogs(rows, "List")
}

// ListByVehicle returns one vehicle's maintenance logs, most recent date first.
func (r *pgMaintenanceRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.MaintenanceLog, error) {
	const q = `
		SELECT ` + maintenanceColumns + `
		FROM maintenance_logs
		WHERE vehicle_id = @vehicle_id
		ORDER BY date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"vehicle_id": vehicleID})
	if err != nil {
		return nil, fmt.Errorf("repo.MaintenanceRepo.ListByVehicle: %w", err)
	}
	defer rows.Close()

	return collectMaintenanceLogs(rows, "ListByVehicle")
}

// SetCompleted marks a log completed.
func (r *pgMaintenanceRepo) SetCompleted(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE maintenance_logs SET completed = true WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.MaintenanceRepo.SetCompleted: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MaintenanceRepo.SetCompleted: %w", domain.ErrNotFound)
	}
	return nil
}

// TotalCost returns the fleet-wide maintenance cost sum.
func (r *pgMaintenanceRepo) TotalCost(ctx context.Context) (float64, error) {
	const q = `SELECT COALESCE(sum(cost), 0) FROM maintenance_logs`

	var total float64
	if err := r.db.QueryRow(ctx, q).Scan(&total); err != nil {
		return 0, fmt.Errorf("repo.MaintenanceRepo.TotalCost: %w", mapPgError(err))
	}
	return total, nil
}

// TotalCostByVehicle returns the maintenance cost sum for one vehicle.
func (r *pgMaintenanceRepo) TotalCostByVehicle(ctx context.Context, vehicleID uuid.UUID) (float64, error) {
	const q = `SELECT COALESCE(sum(cost), 0) FROM maintenance_logs WHERE vehicle_id = @vehicle_id`

	var total float64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"vehicle_id": vehicleID}).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("repo.MaintenanceRepo.TotalCostByVehicle: %w", mapPgError(err))
	}
	return total, nil
}

// collectMaintenanceLogs drains rows into a slice, wrapping scan errors with op.
func collectMaintenanceLogs(rows pgx.Rows, op string) ([]domain.MaintenanceLog, error) {
	var logs []domain.MaintenanceLog
	for rows.Next() {
		m, err := scanMaintenanceLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MaintenanceRepo.%s: scan: %w", op, err)
		}
		logs = append(logs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MaintenanceRepo.%s: rows: %w", op, err)
	}
	return logs, nil
}

// scanMaintenanceLog maps a single database row into a domain.MaintenanceLog.
func scanMaintenanceLog(s scanner) (domain.MaintenanceLog, error) {
	var (
		m       domain.MaintenanceLog
		id, vID pgtype.UUID
		date    pgtype.Date
	)

	err := s.Scan(&id, &vID, &m.Description, &m.Cost, &date, &m.Completed, &m.CreatedAt)
	if err != nil {
		return domain.MaintenanceLog{}, mapPgError(err)
	}

	m.ID = uuid.UUID(id.Bytes)
	m.VehicleID = uuid.UUID(vID.Bytes)
	m.Date = date.Time
	return m, nil
}
