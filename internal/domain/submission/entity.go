package submission

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Submission represents a clipper's work on a claimed gig
type Submission struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	GigID     uuid.UUID `db:"gig_id"`
	ClipperID uuid.UUID `db:"clipper_id"`

	// Edited video and where it was posted
	VideoURL       sql.NullString `db:"video_url"`
	SocialPostLink sql.NullString `db:"social_post_link"`

	// Engagement metrics reported from the social platform
	Views    int `db:"views"`
	Likes    int `db:"likes"`
	Outcomes int `db:"outcomes"`

	// Bonus derived from current metrics, never accumulated
	Bonus float64 `db:"bonus"`

	Approved bool `db:"approved"`
}

// HasVideo reports whether the clipper has delivered the edited video
func (s *Submission) HasVideo() bool {
	return s.VideoURL.Valid
}

// CanBeEditedBy checks if the clipper owns this submission
func (s *Submission) CanBeEditedBy(userID uuid.UUID) bool {
	return s.ClipperID == userID
}
