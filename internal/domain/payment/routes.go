package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns payment router
func (h *Handler) Routes(authMiddleware, requireBusiness func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Provider callback, authenticated by signature
	r.Post("/webhook", h.Webhook)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware, requireBusiness)
		r.Post("/deposit", h.CreateDeposit)
		r.Post("/payout/{submissionID}", h.Payout)
	})

	return r
}
