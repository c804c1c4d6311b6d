package selfpromo

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /selfpromos
type CreateRequest struct {
	PostLink string `json:"post_link" validate:"required,url"`
}

// UpdateMetricsRequest for PATCH /selfpromos/{id}/metrics
type UpdateMetricsRequest struct {
	Views int `json:"views" validate:"gte=0"`
	Likes int `json:"likes" validate:"gte=0"`
}

// AwardOutcome describes what happened to the credit on a metrics update
type AwardOutcome string

const (
	OutcomeNotQualified   AwardOutcome = "not_qualified"
	OutcomeAwarded        AwardOutcome = "awarded"
	OutcomeAlreadyAwarded AwardOutcome = "already_awarded"
	OutcomeCapRejected    AwardOutcome = "cap_rejected"
)

// PromoResponse represents a self-promo post in API responses
type PromoResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessID   uuid.UUID `json:"business_id"`
	PostLink     string    `json:"post_link"`
	Views        int       `json:"views"`
	Likes        int       `json:"likes"`
	CreditEarned float64   `json:"credit_earned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(p *SelfPromo) PromoResponse {
	return PromoResponse{
		ID:           p.ID,
		BusinessID:   p.BusinessID,
		PostLink:     p.PostLink,
		Views:        p.Views,
		Likes:        p.Likes,
		CreditEarned: p.CreditEarned,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// UpdateMetricsResponse carries the post plus the outcome of the award attempt
type UpdateMetricsResponse struct {
	Promo   PromoResponse `json:"promo"`
	Outcome AwardOutcome  `json:"outcome"`

	// Populated only when the monthly cap rejected the award
	CapDetails *CapDetails `json:"cap_details,omitempty"`
}

// CapDetails mirrors the ledger's cap rejection for the API
type CapDetails struct {
	Attempted          float64 `json:"attempted"`
	CurrentWindowTotal float64 `json:"current_window_total"`
	Cap                float64 `json:"cap"`
}
