package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pocketbook/internal/http/events"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/stats"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/trash"
)

func New(
	allowedOrigins []string,
	transactionsV1 *transaction.Handler,
	trashV1 *trash.Handler,
	statsV1 *stats.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	eventsV1 *events.Hub,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/trash", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			trashV1.Routes(r)
		})

		r.Route("/stats", statsV1.Routes)
		r.Route("/import", importV1.Routes)
		r.Route("/export", exportV1.Routes)
		r.Route("/events", eventsV1.Routes)
	})

	return router
}
