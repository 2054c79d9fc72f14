package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Het6518/Fleetflow/internal/domain"
)

// FuelTotals is the aggregate sum of fuel logs, either fleet-wide or for
// one vehicle.
type FuelTotals struct {
	Liters float64
	Cost   float64
}

// FuelLogRepo defines the persistence operations for FuelLogs.
// Fuel logs are append-only: there is no update or delete.
type FuelLogRepo interface {
	// Create inserts a new fuel log and returns the persisted record.
	Create(ctx context.Context, f domain.FuelLog) (domain.FuelLog, error)

	// List returns all fuel logs ordered by date descending.
	List(ctx context.Context) ([]domain.FuelLog, error)

	// ListPaged returns one page of fuel logs, most recent date first, plus
	// the total row count for the pagination envelope.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelLog, int64, error)

	// ListByVehicle returns one vehicle's fuel logs ordered by date descending.
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.FuelLog, error)

	// Totals returns the fleet-wide liters and cost sums.
	Totals(ctx context.Context) (FuelTotals, error)

	// TotalsByVehicle returns the liters and cost sums for one vehicle.
	TotalsByVehicle(ctx context.Context, vehicleID uuid.UUID) (FuelTotals, error)
}

// pgFuelLogRepo is the Postgres implementation of FuelLogRepo.
type pgFuelLogRepo struct {
	db db
}

// NewFuelLogRepo constructs a FuelLogRepo backed by the provided db connection.
func NewFuelLogRepo(db db) FuelLogRepo {
	return &pgFuelLogRepo{db: db}
}

// Create inserts a new fuel log row and returns the persisted record.
func (r *pgFuelLogRepo) Create(ctx context.Context, f domain.FuelLog) (domain.FuelLog, error) {
	const q = `
		INSERT INTO fuel_logs (vehicle_id, liters, cost, date)
		VALUES (@vehicle_id, @liters, @cost, @date)
		RETURNING id, vehicle_id, liters, cost, date, created_at`

	args := pgx.NamedArgs{
		"vehicle_id": f.VehicleID,
		"liters":     f.Liters,
		"cost":       f.Cost,
		"date":       f.Date,
	}

	result, err := scanFuelLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.FuelLog{}, fmt.Errorf("repo.FuelLogRepo.Create: %w", err)
	}
	return result, nil
}

// List returns all fuel logs, most recent date first.
func (r *pgFuelLogRepo) List(ctx context.Context) ([]domain.FuelLog, error) {
	const q = `
		SELECT id, vehicle_id, liters, cost, date, created_at
		FROM fuel_logs
		ORDER BY date DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.FuelLogRepo.List: %w", err)
	}
	defer rows.Close()

	return collectFuelLogs(rows, "List")
}

// ListPaged returns one page of fuel logs, most recent date first, and the
// total log count from a count(*) OVER() window so page and total agree.
func (r *pgFuelLogRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelLog, int64, error) {
	const q = `
		SELECT id, vehicle_id, liters, cost, date, created_at, count(*) OVER() AS total
		FROM fuel_logs
		ORDER BY date DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.FuelLogRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		logs  []domain.FuelLog
		total int64
	)
	for rows.Next() {
		var (
			f       domain.FuelLog
			id, vID pgtype.UUID
			date    pgtype.Date
		)
		err := rows.Scan(&id, &vID, &f.Liters, &f.Cost, &date, &f.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.FuelLogRepo.ListPaged: scan: %w", mapPgError(err))
		}
		f.ID = uuid.UUID(id.Bytes)
		f.VehicleID = uuid.UUID(vID.Bytes)
		f.Date = date.Time
		logs = append(logs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.FuelLogRepo.ListPaged: rows: %w", err)
	}

	// An empty page past the end still needs the real total.
	if logs == nil && p.Offset() > 0 {
		const countQ = `SELECT count(*) FROM fuel_logs`
		if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.FuelLogRepo.ListPaged: count: %w", mapPgError(err))
		}
	}
	return logs, total, nil
}

// ListByVehicle returns one vehicle's fuel logs, most recent date first.
func (r *pgFuelLogRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.FuelLog, error) {
	const q = `
		SELECT id, vehicle_id, liters, cost, date, created_at
		FROM fuel_logs
		WHERE vehicle_id = @vehicle_id
		ORDER BY date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"vehicle_id": vehicleID})
	if err != nil {
		return nil, fmt.Errorf("repo.FuelLogRepo.ListByVehicle: %w", err)
	}
	defer rows.Close()

	return collectFuelLogs(rows, "ListByVehicle")
}

// Totals returns the fleet-wide liters/cost sums. COALESCE makes an empty
// table sum to zero instead of NULL.
func (r *pgFuelLogRepo) Totals(ctx context.Context) (FuelTotals, error) {
	const q = `SELECT COALESCE(sum(liters), 0), COALESCE(sum(cost), 0) FROM fuel_logs`

	var t FuelTotals
	if err := r.db.QueryRow(ctx, q).Scan(&t.Liters, &t.Cost); err != nil {
		return FuelTotals{}, fmt.Errorf("repo.FuelLogRepo.Totals: %w", mapPgError(err))
	}
	return t, nil
}

// TotalsByVehicle returns the liters/cost sums for one vehicle.
func (r *pgFuelLogRepo) TotalsByVehicle(ctx context.Context, vehicleID uuid.UUID) (FuelTotals, error) {
	const q = `
		SELECT COALESCE(sum(liters), 0), COALESCE(sum(cost), 0)
		FROM fuel_logs
		WHERE vehicle_id = @vehicle_id`

	var t FuelTotals
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"vehicle_id": vehicleID}).Scan(&t.Liters, &t.Cost)
	if err != nil {
		return FuelTotals{}, fmt.Errorf("repo.FuelLogRepo.TotalsByVehicle: %w", mapPgError(err))
	}
	return t, nil
}

// collectFuelLogs drains rows into a slice, wrapping scan errors with op.
func collectFuelLogs(rows pgx.Rows, op string) ([]domain.FuelLog, error) {
	var logs []domain.FuelLog
	for rows.Next() {
		f, err := scanFuelLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.FuelLogRepo.%s: scan: %w", op, err)
		}
		logs = append(logs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.FuelLogRepo.%s: rows: %w", op, err)
	}
	return logs, nil
}

// scanFuelLog maps a single database row into a domain.FuelLog.
func scanFuelLog(s scanner) (domain.FuelLog, error) {
	var (
		f         domain.FuelLog
		id, vID   pgtype.UUID
		date      pgtype.Date
	)

	err := s.Scan(&id, &vID, &f.Liters, &f.Cost, &date, &f.CreatedAt)
	if err != nil {
		return domain.FuelLog{}, mapPgError(err)
	}

	f.ID = uuid.UUID(id.Bytes)
	f.VehicleID = uuid.UUID(vID.Bytes)
	f.Date = date.Time
	return f, nil
}
