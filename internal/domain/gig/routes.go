package gig

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns gig router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, requireBusiness func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListAvailable)
		r.Get("/my", h.ListMine)
		r.Get("/{id}", h.GetByID)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, requireBusiness)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Cancel)
	})

	return r
}
