package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
	"github.com/mx70/mx70-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates auth handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register handles POST /auth/signup
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Conflict(w, "Email already registered")
		case errors.Is(err, ErrInvalidRole):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, resp)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.svc.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrUserInactive):
			response.Forbidden(w, "Account is deactivated")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	resp, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefreshTokenRequired):
			response.BadRequest(w, "Refresh token is required")
		case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrUserNotFound):
			response.Unauthorized(w, "Invalid refresh token")
		case errors.Is(err, ErrUserInactive):
			response.Forbidden(w, "Account is deactivated")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.svc.Logout(r.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, ErrRefreshTokenRequired) {
			response.BadRequest(w, "Refresh token is required")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, NewUserResponse(u))
}
