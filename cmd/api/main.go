// Package main is the entry point for the FleetFlow API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Het6518/Fleetflow/internal/auth"
	"github.com/Het6518/Fleetflow/internal/config"
	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/handler"
	"github.com/Het6518/Fleetflow/internal/middleware"
	"github.com/Het6518/Fleetflow/internal/repo"
	"github.com/Het6518/Fleetflow/internal/service"
)

// maxBodyBytes caps request bodies; the API only ever accepts small JSON
// documents.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Repositories and services ----------------------------------------
	vehicleRepo := repo.NewVehicleRepo(pool)
	driverRepo := repo.NewDriverRepo(pool)
	tripRepo := repo.NewTripRepo(pool)
	maintenanceRepo := repo.NewMaintenanceRepo(pool)
	fuelRepo := repo.NewFuelLogRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	atomic := repo.NewAtomic(pool)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	srv := handler.NewServer(
		service.NewTripService(tripRepo, vehicleRepo, driverRepo, atomic, domain.SystemClock{}),
		service.NewVehicleService(vehicleRepo, atomic),
		service.NewDriverService(driverRepo),
		service.NewMaintenanceService(maintenanceRepo, vehicleRepo, atomic),
		service.NewFuelService(fuelRepo, vehicleRepo),
		service.NewAnalyticsService(vehicleRepo, driverRepo, tripRepo, fuelRepo, maintenanceRepo),
		service.NewAuthService(userRepo, tokens),
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → body cap. Authentication lives inside the route
	// tree so /health and /api/auth stay public.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Mount("/", handler.Routes(srv, tokens))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
