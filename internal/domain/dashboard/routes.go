package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns dashboard router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.Overview)
	r.Get("/analytics", h.Analytics)

	return r
}
