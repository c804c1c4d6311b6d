package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns upload router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Post("/", h.Create)
	r.Get("/my", h.ListMine)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	return r
}
