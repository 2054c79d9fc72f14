package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
	"github.com/Het6518/Fleetflow/testutil"
)

// newTestTx opens a transaction against the test database and rolls it back
// when the test finishes, giving free per-test isolation. Every repo in a
// test is constructed over the same transaction so inserts are visible to
// each other but never committed.
//
// Requires TEST_DATABASE_URL to be set; the pool helper skips otherwise.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// vehicleFixture returns a vehicle with sensible defaults. Callers override
// fields (the license plate in particular) when inserting more than one.
func vehicleFixture() domain.Vehicle {
	return domain.Vehicle{
		Name:            "Volvo FH16",
		LicensePlate:    "FL-001",
		MaxCapacity:     12000,
		Odometer:        50000,
		AcquisitionCost: 90000,
		Status:          domain.VehicleAvailable,
	}
}

func driverFixture() domain.Driver {
	return domain.Driver{
		Name:          "Dana Ortiz",
		LicenseNumber: "DL-1001",
		LicenseExpiry: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		SafetyScore:   92,
		Status:        domain.DriverOnDuty,
	}
}

// createTripFixtures inserts a vehicle and a driver and returns a DRAFT trip
// referencing them, ready for repo.TripRepo.Create.
func createTripFixtures(t *testing.T, tx pgx.Tx) domain.Trip {
	t.Helper()
	ctx := context.Background()

	v, err := repo.NewVehicleRepo(tx).Create(ctx, vehicleFixture())
	require.NoError(t, err)
	d, err := repo.NewDriverRepo(tx).Create(ctx, driverFixture())
	require.NoError(t, err)

	start := 50000.0
	return domain.Trip{
		VehicleID:     v.ID,
		DriverID:      d.ID,
		CargoWeight:   8000,
		StartOdometer: &start,
		Status:        domain.TripDraft,
	}
}

func floatPtr(v float64) *float64 { return &v }
