package gig

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
	"github.com/mx70/mx70-api/internal/pkg/validator"
)

// Handler handles gig HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates gig handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /gigs
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	g, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		var be *BudgetError
		switch {
		case errors.As(err, &be):
			response.BadRequest(w, be.Error())
		case errors.Is(err, ErrOnlyBusinessesCanPost):
			response.Forbidden(w, "Only businesses can post gigs")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, GigResponseFromEntity(g))
}

// GetByID handles GET /gigs/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid gig ID")
		return
	}

	g, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Gig not found")
		return
	}

	response.OK(w, GigResponseFromEntity(g))
}

// Update handles PUT /gigs/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid gig ID")
		return
	}

	var req UpdateGigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	g, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		var be *BudgetError
		switch {
		case errors.As(err, &be):
			response.BadRequest(w, be.Error())
		case errors.Is(err, ErrGigNotFound):
			response.NotFound(w, "Gig not found")
		case errors.Is(err, ErrNotGigOwner):
			response.Forbidden(w, "You can only edit your own gigs")
		case errors.Is(err, ErrGigNotPending):
			response.Conflict(w, "Gig is no longer editable")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, GigResponseFromEntity(g))
}

// Cancel handles DELETE /gigs/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid gig ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	g, err := h.service.Cancel(r.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrGigNotFound):
			response.NotFound(w, "Gig not found")
		case errors.Is(err, ErrNotGigOwner):
			response.Forbidden(w, "You can only cancel your own gigs")
		case errors.Is(err, ErrCannotCancelClaimedGig):
			response.Conflict(w, "Cannot cancel a claimed gig")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, GigResponseFromEntity(g))
}

// ListAvailable handles GET /gigs
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)

	var storyType *string
	if st := r.URL.Query().Get("story_type"); st != "" {
		storyType = &st
	}

	gigs, total, err := h.service.ListAvailable(r.Context(), storyType, p)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, NewGigListResponse(gigs, total).Gigs, paginationMeta(total, p))
}

// ListMine handles GET /gigs/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	gigs, total, err := h.service.ListMine(r.Context(), userID, role, p)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, NewGigListResponse(gigs, total).Gigs, paginationMeta(total, p))
}

func parsePagination(r *http.Request) *Pagination {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return &Pagination{Page: page, Limit: limit}
}

func paginationMeta(total int, p *Pagination) response.Meta {
	pages := (total + p.Limit - 1) / p.Limit
	return response.Meta{
		Total:   total,
		Page:    p.Page,
		Limit:   p.Limit,
		Pages:   pages,
		HasNext: p.Page < pages,
		HasPrev: p.Page > 1,
	}
}
