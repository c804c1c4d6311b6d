package selfpromo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
	"github.com/mx70/mx70-api/internal/pkg/validator"
)

// Handler handles self-promo HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates self-promo handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /selfpromos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	p, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrOnlyBusinessesPromote) {
			response.Forbidden(w, "Only businesses can create self-promo posts")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, ResponseFromEntity(p))
}

// UpdateMetrics handles PATCH /selfpromos/{id}/metrics
func (h *Handler) UpdateMetrics(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	var req UpdateMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	p, outcome, capErr, err := h.service.UpdateMetrics(r.Context(), id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Post not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "You can only update your own posts")
		default:
			response.InternalError(w)
		}
		return
	}

	resp := UpdateMetricsResponse{
		Promo:   ResponseFromEntity(p),
		Outcome: outcome,
	}
	if capErr != nil {
		resp.CapDetails = &CapDetails{
			Attempted:          capErr.AttemptedAmount,
			CurrentWindowTotal: capErr.CurrentWindowTotal,
			Cap:                capErr.Cap,
		}
	}

	response.OK(w, resp)
}

// GetByID handles GET /selfpromos/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	p, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Post not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "You can only view your own posts")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(p))
}

// ListMine handles GET /selfpromos
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	promos, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]PromoResponse, 0, len(promos))
	for _, p := range promos {
		out = append(out, ResponseFromEntity(p))
	}
	response.OK(w, out)
}
