package lesson

import (
	"time"

	"github.com/google/uuid"
)

// Question is a single multiple-choice quiz question
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`

	// Index into Options, stripped from API responses
	Correct int `json:"-"`
}

// Quiz is a lesson's quiz
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Lesson is a training unit with an attached quiz
type Lesson struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Quiz    Quiz   `json:"quiz"`
}

// CertLevel represents a certification level
type CertLevel string

const (
	LevelBasic CertLevel = "basic"
)

// Certification records a clipper's earned certification
type Certification struct {
	ID          uuid.UUID `db:"id"`
	ClipperID   uuid.UUID `db:"clipper_id"`
	Level       CertLevel `db:"level"`
	CompletedAt time.Time `db:"completed_at"`
}
