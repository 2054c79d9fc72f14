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

func TestTripRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	input := createTripFixtures(t, tx)
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, input.VehicleID, got.VehicleID)
	assert.Equal(t, input.DriverID, got.DriverID)
	assert.Equal(t, domain.TripDraft, got.Status)
	require.NotNil(t, got.StartOdometer)
	assert.Equal(t, *input.StartOdometer, *got.StartOdometer)
	assert.Nil(t, got.EndOdometer, "EndOdometer starts unset")
	assert.Nil(t, got.Revenue, "Revenue starts unset")
}

func TestTripRepo_GetByID_Joined(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, createTripFixtures(t, tx))
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	require.NotNil(t, got.Vehicle, "GetByID joins the vehicle")
	require.NotNil(t, got.Driver, "GetByID joins the driver")
	assert.Equal(t, created.VehicleID, got.Vehicle.ID)
	assert.Equal(t, created.DriverID, got.Driver.ID)
}

func TestTripRepo_GetByIDForUpdate_NoJoins(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, createTripFixtures(t, tx))
	require.NoError(t, err)

	got, err := r.GetByIDForUpdate(ctx, created.ID)

	require.NoError(t, err)
	assert.Nil(t, got.Vehicle)
	assert.Nil(t, got.Driver)
	assert.Equal(t, created.ID, got.ID)
}

func TestTripRepo_ListPaged(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	input := createTripFixtures(t, tx)
	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, input)
		require.NoError(t, err)
	}

	page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 1)
	require.NotNil(t, page[0].Vehicle, "paged rows carry joins")
	require.NotNil(t, page[0].Driver)
}

func TestTripRepo_ListPaged_PastEndKeepsTotal(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	_, err := r.Create(ctx, createTripFixtures(t, tx))
	require.NoError(t, err)

	page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 5, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, page)
	assert.EqualValues(t, 1, total, "empty page past the end still reports the real total")
}

func TestTripRepo_Complete_OverwritesGivenFields(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, createTripFixtures(t, tx))
	require.NoError(t, err)

	err = r.Complete(ctx, created.ID, floatPtr(50200), floatPtr(5000))
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripCompleted, got.Status)
	require.NotNil(t, got.EndOdometer)
	assert.Equal(t, 50200.0, *got.EndOdometer)
	require.NotNil(t, got.Revenue)
	assert.Equal(t, 5000.0, *got.Revenue)
}

func TestTripRepo_Complete_NilArgsRetainStoredValues(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	input := createTripFixtures(t, tx)
	input.Revenue = floatPtr(3200)
	created, err := r.Create(ctx, input)
	require.NoError(t, err)

	// Only the odometer is supplied; the stored revenue must survive.
	err = r.Complete(ctx, created.ID, floatPtr(50150), nil)
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Revenue)
	assert.Equal(t, 3200.0, *got.Revenue)
	require.NotNil(t, got.EndOdometer)
	assert.Equal(t, 50150.0, *got.EndOdometer)
}

func TestTripRepo_CountByVehicleAndStatus(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	input := createTripFixtures(t, tx)
	created, err := r.Create(ctx, input)
	require.NoError(t, err)

	n, err := r.CountByVehicleAndStatus(ctx, input.VehicleID, domain.TripDraft)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, r.SetStatus(ctx, created.ID, domain.TripDispatched))

	n, err = r.CountByVehicleAndStatus(ctx, input.VehicleID, domain.TripDraft)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = r.CountByVehicleAndStatus(ctx, input.VehicleID, domain.TripDispatched)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTripRepo_SetStatus_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	err := r.SetStatus(context.Background(), uuid.New(), domain.TripCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
