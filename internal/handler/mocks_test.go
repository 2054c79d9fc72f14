package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Het6518/Fleetflow/internal/auth"
	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/handler"
	"github.com/Het6518/Fleetflow/internal/service"
)

// The mocks below are hand-written doubles for the handler-side service
// interfaces. Each method is a function field — set only the ones a test
// needs; an unset method panics, which points straight at the missing stub.

type mockTripServicer struct {
	create   func(ctx context.Context, in service.CreateTripInput) (domain.Trip, error)
	getByID  func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list     func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	dispatch func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	complete func(ctx context.Context, id uuid.UUID, in service.CompleteTripInput) (domain.Trip, error)
	cancel   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, in service.CreateTripInput) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripServicer) Dispatch(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.dispatch(ctx, id)
}
func (m *mockTripServicer) Complete(ctx context.Context, id uuid.UUID, in service.CompleteTripInput) (domain.Trip, error) {
	return m.complete(ctx, id, in)
}
func (m *mockTripServicer) Cancel(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.cancel(ctx, id)
}

type mockVehicleServicer struct {
	create  func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	list    func(ctx context.Context) ([]domain.Vehicle, error)
	update  func(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	del     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVehicleServicer) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.create(ctx, v)
}
func (m *mockVehicleServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	return m.getByID(ctx, id)
}
func (m *mockVehicleServicer) List(ctx context.Context) ([]domain.Vehicle, error) {
	return m.list(ctx)
}
func (m *mockVehicleServicer) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	return m.update(ctx, v)
}
func (m *mockVehicleServicer) Delete(ctx context.Context, id uuid.UUID) error { return m.del(ctx, id) }

type mockDriverServicer struct {
	create  func(ctx context.Context, d domain.Driver) (domain.Driver, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	list    func(ctx context.Context) ([]domain.Driver, error)
	update  func(ctx context.Context, d domain.Driver) (domain.Driver, error)
}

func (m *mockDriverServicer) Create(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	return m.create(ctx, d)
}
func (m *mockDriverServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}
func (m *mockDriverServicer) List(ctx context.Context) ([]domain.Driver, error) { return m.list(ctx) }
func (m *mockDriverServicer) Update(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	return m.update(ctx, d)
}

type mockMaintenanceServicer struct {
	create   func(ctx context.Context, m domain.MaintenanceLog) (domain.MaintenanceLog, error)
	complete func(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error)
	list     func(ctx context.Context) ([]domain.MaintenanceLog, error)
}

func (m *mockMaintenanceServicer) Create(ctx context.Context, log domain.MaintenanceLog) (domain.MaintenanceLog, error) {
	return m.create(ctx, log)
}
func (m *mockMaintenanceServicer) Complete(ctx context.Context, id uuid.UUID) (domain.MaintenanceLog, error) {
	return m.complete(ctx, id)
}
func (m *mockMaintenanceServicer) List(ctx context.Context) ([]domain.MaintenanceLog, error) {
	return m.list(ctx)
}

type mockFuelServicer struct {
	create        func(ctx context.Context, f domain.FuelLog) (domain.FuelLog, error)
	list          func(ctx context.Context, p domain.PaginationParams) ([]domain.FuelLog, int64, error)
	listByVehicle func(ctx context.Context, vehicleID uuid.UUID) ([]domain.FuelLog, error)
}

func (m *mockFuelServicer) Create(ctx context.Context, f domain.FuelLog) (domain.FuelLog, error) {
	return m.create(ctx, f)
}
func (m *mockFuelServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.FuelLog, int64, error) {
	return m.list(ctx, p)
}
func (m *mockFuelServicer) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.FuelLog, error) {
	return m.listByVehicle(ctx, vehicleID)
}

type mockAnalyticsServicer struct {
	dashboard        func(ctx context.Context) (domain.Dashboard, error)
	vehicleAnalytics func(ctx context.Context, vehicleID uuid.UUID) (domain.VehicleAnalytics, error)
}

func (m *mockAnalyticsServicer) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	return m.dashboard(ctx)
}
func (m *mockAnalyticsServicer) VehicleAnalytics(ctx context.Context, vehicleID uuid.UUID) (domain.VehicleAnalytics, error) {
	return m.vehicleAnalytics(ctx, vehicleID)
}

type mockAuthServicer struct {
	register func(ctx context.Context, in service.RegisterInput) (domain.User, error)
	login    func(ctx context.Context, email, password string) (service.LoginResult, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, in service.RegisterInput) (domain.User, error) {
	return m.register(ctx, in)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (service.LoginResult, error) {
	return m.login(ctx, email, password)
}

// testEnv bundles the mocks, the assembled route tree, and a token factory.
type testEnv struct {
	trips       *mockTripServicer
	vehicles    *mockVehicleServicer
	drivers     *mockDriverServicer
	maintenance *mockMaintenanceServicer
	fuel        *mockFuelServicer
	analytics   *mockAnalyticsServicer
	auth        *mockAuthServicer

	tokens *auth.TokenService
	router http.Handler
}

func newTestEnv() *testEnv {
	env := &testEnv{
		trips:       &mockTripServicer{},
		vehicles:    &mockVehicleServicer{},
		drivers:     &mockDriverServicer{},
		maintenance: &mockMaintenanceServicer{},
		fuel:        &mockFuelServicer{},
		analytics:   &mockAnalyticsServicer{},
		auth:        &mockAuthServicer{},
		tokens:      auth.NewTokenService("test-secret", time.Hour),
	}
	srv := handler.NewServer(
		env.trips, env.vehicles, env.drivers,
		env.maintenance, env.fuel, env.analytics, env.auth,
	)
	env.router = handler.Routes(srv, env.tokens)
	return env
}

// do performs a request against the route tree. A non-empty role attaches a
// freshly issued Bearer token for that role.
func (env *testEnv) do(t *testing.T, method, path string, body string, role domain.Role) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		token, err := env.tokens.Issue(uuid.New(), role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}
