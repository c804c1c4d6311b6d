package lesson

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns lesson router
func (h *Handler) Routes(authMiddleware, requireClipper func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, requireClipper)
		r.Get("/", h.List)
		r.Get("/certifications/my", h.MyCertifications)
		r.Get("/{id}", h.GetByID)
		r.Post("/{id}/complete-quiz", h.CompleteQuiz)
	})

	return r
}
