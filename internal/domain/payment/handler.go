package payment

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
	"github.com/mx70/mx70-api/internal/pkg/validator"
)

// Handler handles payment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateDeposit handles POST /payments/deposit
func (h *Handler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	businessID := middleware.GetUserID(r.Context())
	resp, err := h.service.CreateDeposit(r.Context(), businessID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			response.BadRequest(w, "Amount must be positive")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, resp)
}

// Payout handles POST /payments/payout/{submissionID}
func (h *Handler) Payout(w http.ResponseWriter, r *http.Request) {
	submissionID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
	if err != nil {
		response.BadRequest(w, "Invalid submission ID")
		return
	}

	businessID := middleware.GetUserID(r.Context())
	resp, err := h.service.Payout(r.Context(), businessID, submissionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmissionNotFound):
			response.NotFound(w, "Submission not found")
		case errors.Is(err, ErrNotGigOwner):
			response.Forbidden(w, "You can only pay out your own gigs")
		case errors.Is(err, ErrNotApproved):
			response.Conflict(w, "Submission must be approved before payout")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Webhook handles POST /payments/webhook
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		response.BadRequest(w, "Cannot read payload")
		return
	}

	signature := r.Header.Get("X-Webhook-Signature")
	event, err := h.service.HandleWebhook(r.Context(), payload, signature)
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			response.Unauthorized(w, "Invalid webhook signature")
			return
		}
		response.BadRequest(w, "Cannot parse webhook payload")
		return
	}

	response.OK(w, map[string]string{"status": "received", "event_type": event.EventType})
}
