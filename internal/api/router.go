// Package api wires the engine services into a chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Hariksh/Expense-tracker/internal/api/handlers"
	"github.com/Hariksh/Expense-tracker/internal/auth"
	"github.com/Hariksh/Expense-tracker/internal/metrics"
	"github.com/Hariksh/Expense-tracker/internal/middleware"
	"github.com/Hariksh/Expense-tracker/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth     *service.AuthService
	Stats    *service.StatsService
	Expenses *service.ExpenseService
	Groups   *service.GroupService
	Contacts *service.ContactService
	JWT      *auth.JWTManager
}

// NewRouter creates and configures the chi router.
func NewRouter(s Services) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(s.Auth, s.Stats)
	expenseHandler := handlers.NewExpenseHandler(s.Expenses)
	groupHandler := handlers.NewGroupHandler(s.Groups)
	contactHandler := handlers.NewContactHandler(s.Contacts)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.JWT))

			r.Get("/auth/users", authHandler.ListUsers)
			r.Get("/auth/stats", authHandler.Stats)

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", expenseHandler.List)
				r.Post("/", expenseHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", expenseHandler.Get)
					r.Put("/", expenseHandler.Update)
					r.Delete("/", expenseHandler.Delete)
				})
			})

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", groupHandler.List)
				r.Post("/", groupHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", groupHandler.Get)
					r.Delete("/", groupHandler.Delete)
					r.Get("/members", groupHandler.ListMembers)
					r.Post("/members", groupHandler.AddMembers)
				})
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", contactHandler.List)
				r.Post("/", contactHandler.Add)
			})
		})
	})

	return r
}
