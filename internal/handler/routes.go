package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Het6518/Fleetflow/internal/auth"
	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/middleware"
)

// Routes builds the full route tree. /health and /api/auth are public;
// everything else sits behind Authenticate. Mutations are additionally
// gated per role; reads are open to any authenticated role.
func Routes(s *Server, tokens *auth.TokenService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))

			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", s.ListVehicles)
				r.Get("/{id}", s.GetVehicle)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(domain.RoleManager))
					r.Post("/", s.CreateVehicle)
					r.Patch("/{id}", s.UpdateVehicle)
					r.Delete("/{id}", s.DeleteVehicle)
				})
			})

			r.Route("/drivers", func(r chi.Router) {
				r.Get("/", s.ListDrivers)
				r.Get("/{id}", s.GetDriver)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(domain.RoleManager, domain.RoleSafety))
					r.Post("/", s.CreateDriver)
					r.Patch("/{id}", s.UpdateDriver)
				})
			})

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", s.ListTrips)
				r.Get("/{id}", s.GetTrip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(domain.RoleDispatcher, domain.RoleManager))
					r.Post("/", s.CreateTrip)
					r.Patch("/{id}/dispatch", s.DispatchTrip)
					r.Patch("/{id}/complete", s.CompleteTrip)
					r.Patch("/{id}/cancel", s.CancelTrip)
				})
			})

			r.Route("/maintenance", func(r chi.Router) {
				r.Get("/", s.ListMaintenance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(domain.RoleManager, domain.RoleSafety))
					r.Post("/", s.CreateMaintenance)
					r.Patch("/{id}/complete", s.CompleteMaintenance)
				})
			})

			r.Route("/fuel", func(r chi.Router) {
				r.Get("/", s.ListFuelLogs)
				r.Get("/vehicle/{vehicleId}", s.ListFuelLogsByVehicle)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(domain.RoleManager, domain.RoleFinance, domain.RoleDispatcher))
					r.Post("/", s.CreateFuelLog)
				})
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/dashboard", s.Dashboard)
				r.Get("/vehicle/{id}", s.VehicleAnalytics)
			})
		})
	})

	return r
}
