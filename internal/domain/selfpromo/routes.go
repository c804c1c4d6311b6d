package selfpromo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns self-promo router
func (h *Handler) Routes(authMiddleware, requireBusiness func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, requireBusiness)
		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}/metrics", h.UpdateMetrics)
	})

	return r
}
