package credit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns credit routes (all require auth)
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/balance", h.Balance)

	return r
}
