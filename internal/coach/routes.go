package coach

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/coach", h.Show)
	r.Post("/coach/start", h.Start)
	r.Post("/coach/messages", h.Message)
	r.Get("/coach/plan.txt", h.Download)
	r.Post("/coach/reset", h.Reset)

	r.Route("/api/coach/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.DeleteSession)
		r.Post("/{id}/messages", h.PostMessage)
		r.Get("/{id}/plan.txt", h.DownloadByID)
	})
}
