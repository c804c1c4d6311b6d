package submission

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns submission router
func (h *Handler) Routes(authMiddleware, requireClipper, requireBusiness func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/preview", h.Preview)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}/metrics", h.UpdateMetrics)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, requireClipper)
		r.Post("/claim", h.Claim)
		r.Get("/my", h.ListMine)
		r.Post("/{id}/video", h.SubmitVideo)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, requireBusiness)
		r.Post("/{id}/approve", h.Approve)
	})

	return r
}
