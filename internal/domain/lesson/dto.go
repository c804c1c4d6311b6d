package lesson

import (
	"time"

	"github.com/google/uuid"
)

// CompleteQuizRequest for POST /lessons/{id}/complete-quiz
type CompleteQuizRequest struct {
	Answers []int `json:"answers" validate:"required"`
}

// LessonResponse represents a lesson in API responses. Quiz questions are
// included without the correct-answer indices.
type LessonResponse struct {
	ID      int          `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Quiz    QuizResponse `json:"quiz"`
}

// QuizResponse is the client-facing quiz shape
type QuizResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

// QuestionResponse is a question without the answer key
type QuestionResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// ResponseFromLesson converts a lesson to its API shape
func ResponseFromLesson(l *Lesson) LessonResponse {
	questions := make([]QuestionResponse, 0, len(l.Quiz.Questions))
	for _, q := range l.Quiz.Questions {
		questions = append(questions, QuestionResponse{
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return LessonResponse{
		ID:      l.ID,
		Title:   l.Title,
		Content: l.Content,
		Quiz:    QuizResponse{Questions: questions},
	}
}

// CertificationResponse represents a certification in API responses
type CertificationResponse struct {
	ID          uuid.UUID `json:"id"`
	ClipperID   uuid.UUID `json:"clipper_id"`
	Level       CertLevel `json:"level"`
	CompletedAt time.Time `json:"completed_at"`
}

// ResponseFromCertification converts entity to response DTO
func ResponseFromCertification(c *Certification) CertificationResponse {
	return CertificationResponse{
		ID:          c.ID,
		ClipperID:   c.ClipperID,
		Level:       c.Level,
		CompletedAt: c.CompletedAt,
	}
}
