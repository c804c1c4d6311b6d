package dashboard

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Overview handles GET /dashboard
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	overview, err := h.service.Overview(r.Context(), userID, role)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build dashboard overview")
		response.InternalError(w)
		return
	}

	response.OK(w, overview)
}

// Analytics handles GET /dashboard/analytics
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	analytics, err := h.service.Analytics(r.Context(), userID, role)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build dashboard analytics")
		response.InternalError(w)
		return
	}

	response.OK(w, analytics)
}
