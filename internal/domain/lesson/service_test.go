package lesson

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	certs map[uuid.UUID][]*Certification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{certs: make(map[uuid.UUID][]*Certification)}
}

func (f *fakeRepo) CreateCertification(ctx context.Context, c *Certification) error {
	for _, existing := range f.certs[c.ClipperID] {
		if existing.Level == c.Level {
			return nil
		}
	}
	f.certs[c.ClipperID] = append(f.certs[c.ClipperID], c)
	return nil
}

func (f *fakeRepo) GetCertification(ctx context.Context, clipperID uuid.UUID, level CertLevel) (*Certification, error) {
	for _, c := range f.certs[clipperID] {
		if c.Level == level {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListCertifications(ctx context.Context, clipperID uuid.UUID) ([]*Certification, error) {
	return f.certs[clipperID], nil
}

func correctAnswers(l *Lesson) []int {
	out := make([]int, len(l.Quiz.Questions))
	for i, q := range l.Quiz.Questions {
		out[i] = q.Correct
	}
	return out
}

func TestCompleteQuizPassIssuesCertification(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	clipper := uuid.New()

	l, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("lesson lookup failed: %v", err)
	}

	result, err := svc.CompleteQuiz(context.Background(), clipper, 1, correctAnswers(l))
	if err != nil {
		t.Fatalf("quiz failed: %v", err)
	}

	if result.Score != 100 || !result.Passed {
		t.Errorf("all-correct attempt: score=%v passed=%v", result.Score, result.Passed)
	}
	if !result.CertificationEarned {
		t.Error("first pass should earn the certification")
	}

	certified, err := svc.IsCertified(context.Background(), clipper)
	if err != nil || !certified {
		t.Errorf("IsCertified = %v, %v; want true", certified, err)
	}
}

func TestCompleteQuizPassingBoundary(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	clipper := uuid.New()

	l, _ := svc.GetByID(context.Background(), 1)
	answers := correctAnswers(l)

	// 2 of 3 correct = 66.67%, below the 70% passing grade.
	answers[0] = (l.Quiz.Questions[0].Correct + 1) % len(l.Quiz.Questions[0].Options)

	result, err := svc.CompleteQuiz(context.Background(), clipper, 1, answers)
	if err != nil {
		t.Fatalf("quiz failed: %v", err)
	}
	if result.Passed {
		t.Errorf("2/3 should not pass, score=%v", result.Score)
	}
	if result.CertificationEarned {
		t.Error("failing attempt must not earn a certification")
	}

	if certified, _ := svc.IsCertified(context.Background(), clipper); certified {
		t.Error("clipper should not be certified after failing")
	}
}

func TestCompleteQuizCertificationIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	clipper := uuid.New()

	l, _ := svc.GetByID(context.Background(), 1)
	answers := correctAnswers(l)

	if _, err := svc.CompleteQuiz(context.Background(), clipper, 1, answers); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	result, err := svc.CompleteQuiz(context.Background(), clipper, 1, answers)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if result.CertificationEarned {
		t.Error("second pass must not earn a second certification")
	}

	certs, _ := svc.ListCertifications(context.Background(), clipper)
	if len(certs) != 1 {
		t.Errorf("certifications = %d, want 1", len(certs))
	}
}

func TestCompleteQuizValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	clipper := uuid.New()

	if _, err := svc.CompleteQuiz(context.Background(), clipper, 99, []int{0}); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}

	if _, err := svc.CompleteQuiz(context.Background(), clipper, 1, []int{0}); !errors.Is(err, ErrAnswerCountMismatch) {
		t.Fatalf("expected ErrAnswerCountMismatch, got %v", err)
	}
}
