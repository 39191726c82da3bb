package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/iums-ph/iums/internal/auth"
	accountHandler "github.com/iums-ph/iums/internal/http/account"
	alertHandler "github.com/iums-ph/iums/internal/http/alert"
	duedateHandler "github.com/iums-ph/iums/internal/http/duedate"
	settingsHandler "github.com/iums-ph/iums/internal/http/settings"
	transactionHandler "github.com/iums-ph/iums/internal/http/transaction"
)

func New(
	accountsV1 *accountHandler.Handler,
	transactionsV1 *transactionHandler.Handler,
	duedatesV1 *duedateHandler.Handler,
	alertsV1 *alertHandler.Handler,
	settingsV1 *settingsHandler.Handler,
	tokens *auth.Manager,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.PublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Route("/accounts", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				accountsV1.Routes(r)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/due-dates", duedatesV1.Routes)

			r.Route("/alerts", alertsV1.Routes)

			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				settingsV1.Routes(r)
			})
		})
	})

	return router
}
