package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

func TestVehicleRepo_Create(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	input := vehicleFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated")
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.LicensePlate, got.LicensePlate)
	assert.Equal(t, input.MaxCapacity, got.MaxCapacity)
	assert.Equal(t, domain.VehicleAvailable, got.Status)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestVehicleRepo_Create_DuplicatePlate(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	_, err = r.Create(ctx, vehicleFixture())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestVehicleRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_Update(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	created.Name = "Volvo FH16 (refit)"
	created.MaxCapacity = 14000

	got, err := r.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Volvo FH16 (refit)", got.Name)
	assert.Equal(t, 14000.0, got.MaxCapacity)
}

func TestVehicleRepo_SetStatusAndOdometer(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewVehicleRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	err = r.SetStatusAndOdometer(ctx, created.ID, domain.VehicleOnTrip, 50200)
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleOnTrip, got.Status)
	assert.Equal(t, 50200.0, got.Odometer)
}

func TestVehicleRepo_Delete(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}
