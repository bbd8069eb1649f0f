package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every endpoint on a chi router. Middleware passed in runs,
// in order, before the panic recoverer and the route handlers.
func NewRouter(s *Server, middleware ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	// Set before any Route call so sub-routers inherit them.
	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.methodNotAllowed)

	r.Use(middleware...)
	r.Use(s.recoverer)

	r.Get("/health", s.GetHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	if s.openapi != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.GetAPIInfo)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/days", s.ListDays)
				r.Post("/days", s.CreateDay)
				r.Get("/export", s.ExportTrip)
			})
		})

		r.Route("/days/{id}", func(r chi.Router) {
			r.Get("/", s.GetDay)
			r.Put("/", s.UpdateDay)
			r.Delete("/", s.DeleteDay)
			r.Get("/activities", s.ListActivities)
			r.Post("/activities", s.CreateActivity)
		})

		r.Route("/activities/{id}", func(r chi.Router) {
			r.Get("/", s.GetActivity)
			r.Put("/", s.UpdateActivity)
			r.Delete("/", s.DeleteActivity)
			r.Patch("/order", s.UpdateActivityOrder)
		})
	})

	return r
}
