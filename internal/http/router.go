package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/peter86cu/contable-multiempresa/internal/auth"
	"github.com/peter86cu/contable-multiempresa/internal/http/entry"
	"github.com/peter86cu/contable-multiempresa/internal/http/payment"
	"github.com/peter86cu/contable-multiempresa/internal/http/treasury"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func New(
	paymentsV1 *payment.Handler,
	entriesV1 *entry.Handler,
	treasuryV1 *treasury.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Authenticate(opts.JWTSecret))

		r.Route("/documents", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			paymentsV1.Routes(r)
		})

		r.Route("/entries", func(r chi.Router) {
			entriesV1.Routes(r)
		})

		r.Route("/treasury", func(r chi.Router) {
			treasuryV1.Routes(r)
		})
	})

	return router
}
