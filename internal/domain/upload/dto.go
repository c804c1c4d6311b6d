package upload

import (
	"time"

	"github.com/google/uuid"
)

// UploadResponse represents an upload in API responses
type UploadResponse struct {
	ID           uuid.UUID `json:"id"`
	Kind         Kind      `json:"kind"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(u *Upload) UploadResponse {
	return UploadResponse{
		ID:           u.ID,
		Kind:         u.Kind,
		OriginalName: u.OriginalName,
		MimeType:     u.MimeType,
		Size:         u.Size,
		URL:          u.URL,
		ThumbnailURL: u.ThumbnailURL,
		Width:        u.Width,
		Height:       u.Height,
		CreatedAt:    u.CreatedAt,
	}
}

// NewUploadListResponse converts a list of uploads
func NewUploadListResponse(uploads []*Upload) []UploadResponse {
	out := make([]UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, ResponseFromEntity(u))
	}
	return out
}
