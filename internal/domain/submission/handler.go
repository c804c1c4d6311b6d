package submission

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/bonus"
	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
	"github.com/mx70/mx70-api/internal/pkg/validator"
)

// Handler handles submission HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates submission handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Claim handles POST /submissions/claim
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	clipperID := middleware.GetUserID(r.Context())
	sub, err := h.service.Claim(r.Context(), req.GigID, clipperID)
	if err != nil {
		switch {
		case errors.Is(err, ErrGigNotFound):
			response.NotFound(w, "Gig not found")
		case errors.Is(err, ErrGigNotPending):
			response.Conflict(w, "Gig is not open for claiming")
		case errors.Is(err, ErrAlreadyClaimed):
			response.Conflict(w, "You already have a submission for this gig")
		case errors.Is(err, ErrNotCertified):
			response.Forbidden(w, "Complete the basic certification before claiming gigs")
		case errors.Is(err, ErrOnlyClippersCanWork):
			response.Forbidden(w, "Only clippers can claim gigs")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ResponseFromEntity(sub))
}

// SubmitVideo handles POST /submissions/{id}/video
func (h *Handler) SubmitVideo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid submission ID")
		return
	}

	var req SubmitVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	clipperID := middleware.GetUserID(r.Context())
	sub, err := h.service.SubmitVideo(r.Context(), id, clipperID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmissionNotFound):
			response.NotFound(w, "Submission not found")
		case errors.Is(err, ErrNotSubmissionOwner):
			response.Forbidden(w, "You do not own this submission")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(sub))
}

// UpdateMetrics handles PATCH /submissions/{id}/metrics
func (h *Handler) UpdateMetrics(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid submission ID")
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
	sub, err := h.service.UpdateMetrics(r.Context(), id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmissionNotFound):
			response.NotFound(w, "Submission not found")
		case errors.Is(err, ErrNotSubmissionOwner):
			response.Forbidden(w, "You cannot report metrics for this submission")
		case errors.Is(err, bonus.ErrNegativeMetric):
			response.BadRequest(w, "Metrics cannot be negative")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(sub))
}

// Approve handles POST /submissions/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid submission ID")
		return
	}

	businessID := middleware.GetUserID(r.Context())
	sub, err := h.service.Approve(r.Context(), id, businessID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmissionNotFound):
			response.NotFound(w, "Submission not found")
		case errors.Is(err, ErrNotGigOwner):
			response.Forbidden(w, "Only the gig owner can approve submissions")
		case errors.Is(err, ErrAlreadyApproved):
			response.Conflict(w, "Submission is already approved")
		case errors.Is(err, ErrVideoNotSubmitted):
			response.Conflict(w, "Submission has no video yet")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(sub))
}

// Preview handles POST /submissions/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	breakdown, err := h.service.Preview(&req)
	if err != nil {
		if errors.Is(err, bonus.ErrNegativeMetric) {
			response.BadRequest(w, "Metrics cannot be negative")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, NewPreviewResponse(bonus.Metrics{
		Views:    req.Views,
		Likes:    req.Likes,
		Outcomes: req.Outcomes,
	}, breakdown))
}

// GetByID handles GET /submissions/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid submission ID")
		return
	}

	sub, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Submission not found")
		return
	}

	response.OK(w, ResponseFromEntity(sub))
}

// ListMine handles GET /submissions/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	clipperID := middleware.GetUserID(r.Context())

	subs, err := h.service.ListMine(r.Context(), clipperID)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]SubmissionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, ResponseFromEntity(s))
	}
	response.OK(w, out)
}

// ListForGig handles GET /gigs/{id}/submissions
func (h *Handler) ListForGig(w http.ResponseWriter, r *http.Request) {
	gigID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid gig ID")
		return
	}

	businessID := middleware.GetUserID(r.Context())
	subs, err := h.service.ListForGig(r.Context(), gigID, businessID)
	if err != nil {
		switch {
		case errors.Is(err, ErrGigNotFound):
			response.NotFound(w, "Gig not found")
		case errors.Is(err, ErrNotGigOwner):
			response.Forbidden(w, "You do not own this gig")
		default:
			response.InternalError(w)
		}
		return
	}

	out := make([]SubmissionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, ResponseFromEntity(s))
	}
	response.OK(w, out)
}
