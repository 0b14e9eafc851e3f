// Package server is a local development backend implementing the platform's
// REST contract. It exists so the SDK and CLI can run and be tested without
// the hosted service; nothing in it is production persistence.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/cors"

	"github.com/hemahemapathi/health-management-client/internal/config"
	"github.com/hemahemapathi/health-management-client/server/store"
	"github.com/hemahemapathi/health-management-client/users"
)

// Stores bundles the stub backend's state.
type Stores struct {
	Users         *store.UserStore
	Doctors       *store.DoctorStore
	Appointments  *store.AppointmentStore
	Prescriptions *store.PrescriptionStore
}

// NewStores creates an empty store bundle.
func NewStores() Stores {
	return Stores{
		Users:         store.NewUserStore(),
		Doctors:       store.NewDoctorStore(),
		Appointments:  store.NewAppointmentStore(),
		Prescriptions: store.NewPrescriptionStore(),
	}
}

type Server struct {
	router chi.Router
	stores Stores
	tokens *tokenManager
}

// New wires the REST contract onto a chi router. The API is mounted under
// /api to match the hosted service's base URL layout.
func New(cfg config.StubServerConfig, stores Stores) (*Server, error) {
	ttl, err := time.ParseDuration(cfg.GetTokenTTL())
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] invalid TOKEN_TTL")
	}

	s := &Server{
		router: chi.NewRouter(),
		stores: stores,
		tokens: newTokenManager(cfg.GetJWTSecret(), ttl),
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.GetAllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	})

	s.router.Use(requestLogger)
	s.router.Use(corsHandler.Handler)
	s.initRoutes(newAuthRateLimiter(cfg.GetAuthRateLimitRPM()))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) initRoutes(authLimiter *authRateLimiter) {
	s.router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.handler)
			r.Post("/auth/login", s.handleLogin)
			r.Post("/auth/register", s.handleRegister)
			r.Post("/auth/forgot-password", s.handleForgotPassword)
			r.Post("/auth/reset-password", s.handleResetPassword)
		})

		r.Get("/doctors", s.handleListDoctors)
		r.Get("/doctors/specializations", s.handleSpecializations)
		r.Get("/doctors/{id}", s.handleGetDoctor)
		r.Get("/doctors/{id}/availability", s.handleDoctorAvailability)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/verify", s.handleVerify)
			r.Get("/users/profile", s.handleGetProfile)
			r.Put("/users/profile", s.handleUpdateProfile)

			r.Get("/appointments/available-slots", s.handleAvailableSlots)
			r.Get("/appointments/{id}", s.handleGetAppointment)
			r.Delete("/appointments/{id}", s.handleCancelAppointment)

			r.Get("/prescriptions", s.handleListPrescriptions)
			r.Get("/prescriptions/{id}", s.handleGetPrescription)

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(users.RolePatient))
				r.Post("/appointments", s.handleBookAppointment)
				r.Get("/patients/appointments", s.handlePatientAppointments)
			})

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(users.RoleDoctor))
				r.Get("/appointments/doctor", s.handleDoctorAppointments)
				r.Patch("/appointments/{id}", s.handleUpdateAppointmentStatus)
				r.Put("/doctors/{id}/availability", s.handleUpdateAvailability)
				r.Post("/prescriptions", s.handleCreatePrescription)
				r.Put("/prescriptions/{id}", s.handleUpdatePrescription)
				r.Delete("/prescriptions/{id}", s.handleDeletePrescription)
			})
		})
	})
}
