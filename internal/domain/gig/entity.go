package gig

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents gig status (matches gig_status enum)
type Status string

const (
	StatusPending   Status = "pending"
	StatusClaimed   Status = "claimed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// StoryType categorizes the kind of clip the business wants
type StoryType string

const (
	StoryCustomerReview StoryType = "customer_review"
	StoryBehindScenes   StoryType = "behind_scenes"
	StoryProductDemo    StoryType = "product_demo"
	StoryDayInLife      StoryType = "day_in_life"
)

// Gig represents a clip job posted by a local business
type Gig struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Owner (FK to users)
	BusinessID uuid.UUID `db:"business_id"`

	Title       string  `db:"title"`
	Description string  `db:"description"`
	Budget      float64 `db:"budget"`
	Goals       string  `db:"goals"`
	StoryType   string  `db:"story_type"`

	// Raw footage the clipper will edit, uploaded by the business
	RawFootageURL sql.NullString `db:"raw_footage_url"`

	// Cover image shown in gig listings
	CoverImageURL sql.NullString `db:"cover_image_url"`

	Status Status `db:"status"`

	// Set when a clipper claims the gig
	ClaimedBy uuid.NullUUID `db:"claimed_by"`
}

// IsPending returns true if the gig is open for claiming
func (g *Gig) IsPending() bool {
	return g.Status == StatusPending
}

// CanBeEditedBy checks if user can edit this gig
func (g *Gig) CanBeEditedBy(userID uuid.UUID) bool {
	return g.BusinessID == userID
}
