package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/daybook-app/daybook-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, entries *handlers.EntryHandler) {
	// Journal entry routes
	r.Post("/entries", entries.CreateEntry)
	r.Get("/entries", entries.GetEntriesByDate)
	r.Put("/entries/{entryId}", entries.UpdateEntry)
	r.Delete("/entries/{entryId}", entries.DeleteEntry)
}
