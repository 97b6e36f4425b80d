package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foliolabs/folio/internal/covers"
	"github.com/foliolabs/folio/internal/events"
	"github.com/foliolabs/folio/internal/gamify"
	"github.com/foliolabs/folio/internal/scoring"
	"github.com/foliolabs/folio/internal/store"
)

func NewRouter(s store.Store, ev events.Client, g gamify.Client, cv covers.Client,
	resolver *scoring.Resolver, comparer *scoring.Comparer, scale scoring.Scale,
	adminToken string, logger *slog.Logger) http.Handler {

	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	ratings := NewRatingsHandler(s, ev, g, scale, logger)
	books := NewBooksHandler(s, cv, resolver, logger)
	authors := NewAuthorsHandler(s, ev, resolver, comparer, logger)
	profiles := NewProfilesHandler(s, ev, g, logger)
	shelves := NewShelvesHandler(s, ev, logger)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ReaderIDMiddleware)

		r.Post("/books", books.Create)
		r.Get("/books", books.List)
		r.Get("/books/{id}", books.Get)
		r.Get("/books/{id}/aggregate", books.Aggregate)

		r.Put("/books/{id}/rating", ratings.Submit)
		r.Get("/books/{id}/rating", ratings.GetOwn)
		r.Delete("/books/{id}/rating", ratings.Delete)
		r.Get("/books/{id}/ratings", ratings.List)

		r.Post("/authors", authors.Create)
		r.Get("/authors/{id}", authors.Get)
		r.Get("/authors/{id}/aggregate", authors.Aggregate)
		r.Get("/authors/{id}/compatibility", authors.Compatibility)
		r.Get("/scoring/explain/{author_id}", authors.Explain)

		r.Get("/profile", profiles.Get)
		r.Put("/profile", profiles.PutWeights)
		r.Put("/profile/order", profiles.PutOrder)

		r.Post("/shelves", shelves.Create)
		r.Get("/shelves", shelves.List)
		r.Get("/shelves/{id}/items", shelves.ListItems)
		r.Post("/shelves/{id}/items", shelves.AddItem)
		r.Delete("/shelves/{id}/items/{book_id}", shelves.RemoveItem)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
