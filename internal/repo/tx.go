package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRepos bundles the repositories a lifecycle operation may touch inside
// one transaction. All of them share the same underlying pgx.Tx, so writes
// through any of them commit or roll back together.
type TxRepos struct {
	Vehicles    VehicleRepo
	Drivers     DriverRepo
	Trips       TripRepo
	Maintenance MaintenanceRepo
}

// Atomic is the unit-of-work primitive: InTx opens one database transaction,
// hands the callback repositories bound to it, and commits when the callback
// returns nil or rolls everything back when it returns an error.
//
// Callbacks must re-read any state they validate through the TxRepos (using
// the ForUpdate variants for rows they will mutate) rather than trusting a
// snapshot taken before the transaction began — that re-read under a row
// lock is what serializes concurrent lifecycle operations.
type Atomic interface {
	InTx(ctx context.Context, fn func(r TxRepos) error) error
}

// pgAtomic is the pgxpool-backed Atomic implementation.
type pgAtomic struct {
	pool *pgxpool.Pool
}

// NewAtomic constructs an Atomic over the given connection pool.
func NewAtomic(pool *pgxpool.Pool) Atomic {
	return &pgAtomic{pool: pool}
}

// InTx runs fn inside a single read-committed transaction.
func (a *pgAtomic) InTx(ctx context.Context, fn func(r TxRepos) error) error {
	tx, err := a.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("repo.Atomic.InTx: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback(ctx)

	if err := fn(NewTxRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Atomic.InTx: commit: %w", err)
	}
	return nil
}

// NewTxRepos builds the repository bundle over any db (pool, conn, or tx).
// Exposed so integration tests can assemble a bundle over a rollback-only
// transaction.
func NewTxRepos(db db) TxRepos {
	return TxRepos{
		Vehicles:    NewVehicleRepo(db),
		Drivers:     NewDriverRepo(db),
		Trips:       NewTripRepo(db),
		Maintenance: NewMaintenanceRepo(db),
	}
}
