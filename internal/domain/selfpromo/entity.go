package selfpromo

import (
	"time"

	"github.com/google/uuid"
)

// SelfPromo represents a business promoting its own content for platform credit
type SelfPromo struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	BusinessID uuid.UUID `db:"business_id"`
	PostLink   string    `db:"post_link"`

	Views int `db:"views"`
	Likes int `db:"likes"`

	// Credit granted once the post qualifies; write-once, zero until then
	CreditEarned float64 `db:"credit_earned"`
}

// Qualifies reports whether the post metrics reach the credit thresholds
func (p *SelfPromo) Qualifies(minViews, minLikes int) bool {
	return p.Views >= minViews && p.Likes >= minLikes
}

// Awarded reports whether credit was already granted for this post
func (p *SelfPromo) Awarded() bool {
	return p.CreditEarned > 0
}
