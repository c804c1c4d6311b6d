package upload

import (
	"time"

	"github.com/google/uuid"
)

// Kind categorizes what the file is for
type Kind string

const (
	KindRawFootage Kind = "raw_footage" // business hands off source material
	KindClipVideo  Kind = "clip_video"  // clipper's edited result
	KindCoverImage Kind = "cover_image" // gig listing cover
)

// ValidKind checks a kind coming off the wire
func ValidKind(k string) bool {
	switch Kind(k) {
	case KindRawFootage, KindClipVideo, KindCoverImage:
		return true
	}
	return false
}

// IsVideo returns true for video kinds
func (k Kind) IsVideo() bool {
	return k == KindRawFootage || k == KindClipVideo
}

// Upload represents a stored media file
type Upload struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`
	Kind   Kind      `db:"kind"`

	OriginalName string `db:"original_name"`
	MimeType     string `db:"mime_type"`
	Size         int64  `db:"size"`

	StorageKey string `db:"storage_key"`
	URL        string `db:"url"`

	// Set for cover images only
	ThumbnailKey string `db:"thumbnail_key"`
	ThumbnailURL string `db:"thumbnail_url"`
	Width        int    `db:"width"`
	Height       int    `db:"height"`

	CreatedAt time.Time `db:"created_at"`
}
