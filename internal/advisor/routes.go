package advisor

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.ShowForm)
	r.Get("/advisor", h.ShowForm)
	r.Post("/advisor", h.Generate)
	r.Get("/advisor/plan.txt", h.Download)

	r.Post("/api/advisor/plan", h.GenerateJSON)
}
