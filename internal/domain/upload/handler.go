package upload

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/response"
	"github.com/mx70/mx70-api/internal/pkg/storage"
)

// MaxUploadSize bounds the whole multipart request body. Raw footage is
// the largest allowed kind.
const MaxUploadSize = 500 * 1024 * 1024

// Handler handles upload HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates upload handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /uploads
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	kind := r.FormValue("kind")
	if !ValidKind(kind) {
		response.BadRequest(w, "Invalid kind. Must be: raw_footage, clip_video, or cover_image")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	u, err := h.service.Store(r.Context(), userID, role, Kind(kind), header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongRole):
			response.Forbidden(w, "Your role cannot upload this kind of file")
		case errors.Is(err, storage.ErrFileTooLarge):
			response.BadRequest(w, "File exceeds maximum size")
		case errors.Is(err, storage.ErrInvalidMimeType):
			response.BadRequest(w, "File type not allowed")
		case errors.Is(err, storage.ErrEmptyFile):
			response.BadRequest(w, "File is empty")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to store upload")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ResponseFromEntity(u))
}

// ListMine handles GET /uploads/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	kind := Kind(r.URL.Query().Get("kind"))
	if kind != "" && !ValidKind(string(kind)) {
		response.BadRequest(w, "Invalid kind filter")
		return
	}

	uploads, err := h.service.ListMine(r.Context(), userID, kind)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list uploads")
		response.InternalError(w)
		return
	}

	response.OK(w, NewUploadListResponse(uploads))
}

// GetByID handles GET /uploads/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid upload ID")
		return
	}

	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUploadNotFound) {
			response.NotFound(w, "Upload not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ResponseFromEntity(u))
}

// Delete handles DELETE /uploads/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid upload ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrUploadNotFound):
			response.NotFound(w, "Upload not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "You are not the owner of this file")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
