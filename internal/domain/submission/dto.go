package submission

import (
	"time"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/bonus"
)

// ClaimRequest for POST /gigs/{id}/claim
type ClaimRequest struct {
	GigID uuid.UUID `json:"gig_id" validate:"required"`
}

// SubmitVideoRequest for POST /submissions/{id}/video
type SubmitVideoRequest struct {
	VideoURL       string `json:"video_url" validate:"required,url"`
	SocialPostLink string `json:"social_post_link" validate:"omitempty,url"`
}

// UpdateMetricsRequest for PATCH /submissions/{id}/metrics
type UpdateMetricsRequest struct {
	Views    int `json:"views" validate:"gte=0"`
	Likes    int `json:"likes" validate:"gte=0"`
	Outcomes int `json:"outcomes" validate:"gte=0"`
}

// PreviewRequest for POST /submissions/preview
type PreviewRequest struct {
	Views    int `json:"views" validate:"gte=0"`
	Likes    int `json:"likes" validate:"gte=0"`
	Outcomes int `json:"outcomes" validate:"gte=0"`
}

// SubmissionResponse represents a submission in API responses
type SubmissionResponse struct {
	ID             uuid.UUID `json:"id"`
	GigID          uuid.UUID `json:"gig_id"`
	ClipperID      uuid.UUID `json:"clipper_id"`
	VideoURL       string    `json:"video_url,omitempty"`
	SocialPostLink string    `json:"social_post_link,omitempty"`
	Views          int       `json:"views"`
	Likes          int       `json:"likes"`
	Outcomes       int       `json:"outcomes"`
	Bonus          float64   `json:"bonus"`
	Approved       bool      `json:"approved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(s *Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:        s.ID,
		GigID:     s.GigID,
		ClipperID: s.ClipperID,
		Views:     s.Views,
		Likes:     s.Likes,
		Outcomes:  s.Outcomes,
		Bonus:     s.Bonus,
		Approved:  s.Approved,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.VideoURL.Valid {
		resp.VideoURL = s.VideoURL.String
	}
	if s.SocialPostLink.Valid {
		resp.SocialPostLink = s.SocialPostLink.String
	}
	return resp
}

// PreviewResponse wraps a bonus breakdown for the preview endpoint
type PreviewResponse struct {
	Views          int     `json:"views"`
	Likes          int     `json:"likes"`
	Outcomes       int     `json:"outcomes"`
	MeetsMinimum   bool    `json:"meets_minimum"`
	ViewsBonus     float64 `json:"views_bonus"`
	ViewsRate      string  `json:"views_rate"`
	LikesBonus     float64 `json:"likes_bonus"`
	LikesRate      string  `json:"likes_rate"`
	OutcomesBonus  float64 `json:"outcomes_bonus"`
	TotalBeforeCap float64 `json:"total_before_cap"`
	CapApplied     bool    `json:"cap_applied"`
	FinalBonus     float64 `json:"final_bonus"`
}

// NewPreviewResponse converts a bonus breakdown to the preview DTO
func NewPreviewResponse(m bonus.Metrics, b bonus.Breakdown) PreviewResponse {
	return PreviewResponse{
		Views:          m.Views,
		Likes:          m.Likes,
		Outcomes:       m.Outcomes,
		MeetsMinimum:   b.MeetsMinimum,
		ViewsBonus:     b.ViewsBonus,
		ViewsRate:      b.ViewsRate,
		LikesBonus:     b.LikesBonus,
		LikesRate:      b.LikesRate,
		OutcomesBonus:  b.OutcomesBonus,
		TotalBeforeCap: b.TotalBeforeCap,
		CapApplied:     b.CapApplied,
		FinalBonus:     b.FinalBonus,
	}
}
