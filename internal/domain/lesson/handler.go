package lesson

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
	"github.com/mx70/mx70-api/internal/pkg/validator"
)

// Handler handles lesson HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lesson handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /lessons
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	lessons := h.service.List(r.Context())

	out := make([]LessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, ResponseFromLesson(&lessons[i]))
	}
	response.OK(w, out)
}

// GetByID handles GET /lessons/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid lesson ID")
		return
	}

	l, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.NotFound(w, "Lesson not found")
		return
	}

	response.OK(w, ResponseFromLesson(l))
}

// CompleteQuiz handles POST /lessons/{id}/complete-quiz
func (h *Handler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid lesson ID")
		return
	}

	var req CompleteQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	clipperID := middleware.GetUserID(r.Context())
	result, err := h.service.CompleteQuiz(r.Context(), clipperID, id, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, ErrLessonNotFound):
			response.NotFound(w, "Lesson not found")
		case errors.Is(err, ErrAnswerCountMismatch):
			response.BadRequest(w, "Number of answers doesn't match number of questions")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// MyCertifications handles GET /lessons/certifications/my
func (h *Handler) MyCertifications(w http.ResponseWriter, r *http.Request) {
	clipperID := middleware.GetUserID(r.Context())

	certs, err := h.service.ListCertifications(r.Context(), clipperID)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]CertificationResponse, 0, len(certs))
	for _, c := range certs {
		out = append(out, ResponseFromCertification(c))
	}
	response.OK(w, out)
}
