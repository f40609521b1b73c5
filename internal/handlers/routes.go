package handlers

import "github.com/go-chi/chi/v5"

// Routes registers the service endpoints on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sports", h.GetSports)
		r.Get("/matchups", h.GetMatchups)
		r.Post("/evaluate", h.EvaluateMatchup)
	})

	// Upstream-compatible raw odds
	r.Get("/api/odds/{sport}", h.GetOddsBySport)
}
