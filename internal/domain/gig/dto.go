package gig

import (
	"time"

	"github.com/google/uuid"
)

// CreateGigRequest for POST /gigs
type CreateGigRequest struct {
	Title         string  `json:"title" validate:"required,min=3,max=200"`
	Description   string  `json:"description" validate:"max=5000"`
	Budget        float64 `json:"budget" validate:"required,gt=0"`
	Goals         string  `json:"goals" validate:"max=1000"`
	StoryType     string  `json:"story_type" validate:"max=50"`
	RawFootageURL string  `json:"raw_footage_url" validate:"omitempty,url"`
	CoverImageURL string  `json:"cover_image_url" validate:"omitempty,url"`
}

// UpdateGigRequest for PUT /gigs/{id}
type UpdateGigRequest struct {
	Title         string   `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	Budget        *float64 `json:"budget" validate:"omitempty,gt=0"`
	Goals         *string  `json:"goals" validate:"omitempty,max=1000"`
	StoryType     string   `json:"story_type" validate:"omitempty,max=50"`
	RawFootageURL string   `json:"raw_footage_url" validate:"omitempty,url"`
	CoverImageURL string   `json:"cover_image_url" validate:"omitempty,url"`
}

// GigResponse represents a gig in API responses
type GigResponse struct {
	ID            uuid.UUID  `json:"id"`
	BusinessID    uuid.UUID  `json:"business_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Budget        float64    `json:"budget"`
	Goals         string     `json:"goals"`
	StoryType     string     `json:"story_type"`
	RawFootageURL string     `json:"raw_footage_url,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Status        Status     `json:"status"`
	ClaimedBy     *uuid.UUID `json:"claimed_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// GigResponseFromEntity converts entity to response DTO
func GigResponseFromEntity(g *Gig) GigResponse {
	resp := GigResponse{
		ID:          g.ID,
		BusinessID:  g.BusinessID,
		Title:       g.Title,
		Description: g.Description,
		Budget:      g.Budget,
		Goals:       g.Goals,
		StoryType:   g.StoryType,
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if g.RawFootageURL.Valid {
		resp.RawFootageURL = g.RawFootageURL.String
	}
	if g.CoverImageURL.Valid {
		resp.CoverImageURL = g.CoverImageURL.String
	}
	if g.ClaimedBy.Valid {
		id := g.ClaimedBy.UUID
		resp.ClaimedBy = &id
	}
	return resp
}

// GigListResponse wraps a page of gigs
type GigListResponse struct {
	Gigs  []GigResponse `json:"gigs"`
	Total int           `json:"total"`
}

// NewGigListResponse converts entity slice to list DTO
func NewGigListResponse(gigs []*Gig, total int) GigListResponse {
	out := make([]GigResponse, 0, len(gigs))
	for _, g := range gigs {
		out = append(out, GigResponseFromEntity(g))
	}
	return GigListResponse{Gigs: out, Total: total}
}
