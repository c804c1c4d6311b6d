package lesson

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const passingScore = 70.0

// QuizResult summarizes a quiz attempt
type QuizResult struct {
	LessonID            int     `json:"lesson_id"`
	Score               float64 `json:"score"`
	Passed              bool    `json:"passed"`
	CorrectAnswers      int     `json:"correct_answers"`
	TotalQuestions      int     `json:"total_questions"`
	CertificationEarned bool    `json:"certification_earned"`
}

// Service handles lesson and certification logic
type Service struct {
	repo Repository
}

// NewService creates lesson service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all lessons
func (s *Service) List(ctx context.Context) []Lesson {
	return Catalog()
}

// GetByID returns a lesson by ID
func (s *Service) GetByID(ctx context.Context, id int) (*Lesson, error) {
	l := Find(id)
	if l == nil {
		return nil, ErrLessonNotFound
	}
	return l, nil
}

// CompleteQuiz scores an attempt and issues the basic certification on a
// first pass. Re-passing never issues a second certification.
func (s *Service) CompleteQuiz(ctx context.Context, clipperID uuid.UUID, lessonID int, answers []int) (*QuizResult, error) {
	l := Find(lessonID)
	if l == nil {
		return nil, ErrLessonNotFound
	}

	questions := l.Quiz.Questions
	if len(answers) != len(questions) {
		return nil, ErrAnswerCountMismatch
	}

	correct := 0
	for i, q := range questions {
		if answers[i] == q.Correct {
			correct++
		}
	}

	score := float64(correct) / float64(len(questions)) * 100
	result := &QuizResult{
		LessonID:       lessonID,
		Score:          score,
		Passed:         score >= passingScore,
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
	}

	if !result.Passed {
		return result, nil
	}

	existing, err := s.repo.GetCertification(ctx, clipperID, LevelBasic)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		cert := &Certification{
			ID:          uuid.New(),
			ClipperID:   clipperID,
			Level:       LevelBasic,
			CompletedAt: time.Now(),
		}
		if err := s.repo.CreateCertification(ctx, cert); err != nil {
			return nil, err
		}
		result.CertificationEarned = true

		log.Info().
			Str("clipper_id", clipperID.String()).
			Int("lesson_id", lessonID).
			Float64("score", score).
			Msg("Basic certification issued")
	}

	return result, nil
}

// ListCertifications returns the clipper's certifications
func (s *Service) ListCertifications(ctx context.Context, clipperID uuid.UUID) ([]*Certification, error) {
	return s.repo.ListCertifications(ctx, clipperID)
}

// IsCertified reports whether the clipper holds the basic certification.
// The submission domain uses this to gate gig claiming.
func (s *Service) IsCertified(ctx context.Context, clipperID uuid.UUID) (bool, error) {
	cert, err := s.repo.GetCertification(ctx, clipperID, LevelBasic)
	if err != nil {
		return false, err
	}
	return cert != nil, nil
}
