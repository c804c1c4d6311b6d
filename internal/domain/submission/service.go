package submission

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/domain/bonus"
	"github.com/mx70/mx70-api/internal/domain/gig"
	"github.com/mx70/mx70-api/internal/domain/user"
)

// Certifier checks clipper certification before claiming
type Certifier interface {
	IsCertified(ctx context.Context, clipperID uuid.UUID) (bool, error)
}

// Notifier receives submission lifecycle events
type Notifier interface {
	GigClaimed(ctx context.Context, g *gig.Gig, clipperID uuid.UUID)
	MetricsUpdated(ctx context.Context, g *gig.Gig, s *Submission)
	SubmissionApproved(ctx context.Context, g *gig.Gig, s *Submission)
}

// Service handles submission business logic
type Service struct {
	repo      Repository
	gigRepo   gig.Repository
	userRepo  user.Repository
	engine    *bonus.Engine
	certifier Certifier
	notifier  Notifier
}

// NewService creates submission service
func NewService(repo Repository, gigRepo gig.Repository, userRepo user.Repository, engine *bonus.Engine, certifier Certifier) *Service {
	return &Service{
		repo:      repo,
		gigRepo:   gigRepo,
		userRepo:  userRepo,
		engine:    engine,
		certifier: certifier,
	}
}

// SetNotifier sets the notifier (optional)
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Claim lets a certified clipper take a pending gig
func (s *Service) Claim(ctx context.Context, gigID, clipperID uuid.UUID) (*Submission, error) {
	u, err := s.userRepo.GetByID(ctx, clipperID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.CanClaimGig() {
		return nil, ErrOnlyClippersCanWork
	}

	if s.certifier != nil {
		certified, err := s.certifier.IsCertified(ctx, clipperID)
		if err != nil {
			return nil, err
		}
		if !certified {
			return nil, ErrNotCertified
		}
	}

	g, err := s.gigRepo.GetByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGigNotFound
	}
	if !g.IsPending() {
		return nil, ErrGigNotPending
	}

	existing, err := s.repo.GetByGigAndClipper(ctx, gigID, clipperID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyClaimed
	}

	claimed, err := s.gigRepo.Claim(ctx, gigID, clipperID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrGigNotPending
	}

	now := time.Now()
	sub := &Submission{
		ID:        uuid.New(),
		GigID:     gigID,
		ClipperID: clipperID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.GigClaimed(ctx, g, clipperID)
	}

	log.Info().
		Str("gig_id", gigID.String()).
		Str("clipper_id", clipperID.String()).
		Msg("Gig claimed")

	return sub, nil
}

// SubmitVideo attaches the edited video and marks the gig completed
func (s *Service) SubmitVideo(ctx context.Context, id, clipperID uuid.UUID, req *SubmitVideoRequest) (*Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	if !sub.CanBeEditedBy(clipperID) {
		return nil, ErrNotSubmissionOwner
	}

	sub.VideoURL = sql.NullString{String: req.VideoURL, Valid: true}
	if req.SocialPostLink != "" {
		sub.SocialPostLink = sql.NullString{String: req.SocialPostLink, Valid: true}
	}
	sub.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	if err := s.gigRepo.UpdateStatus(ctx, sub.GigID, gig.StatusCompleted); err != nil {
		return nil, err
	}

	return sub, nil
}

// UpdateMetrics stores new metrics and recomputes the bonus from scratch
func (s *Service) UpdateMetrics(ctx context.Context, id, userID uuid.UUID, req *UpdateMetricsRequest) (*Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	g, err := s.gigRepo.GetByID(ctx, sub.GigID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGigNotFound
	}

	// The clipper who owns the submission or the business that owns the
	// gig may report metrics.
	if !sub.CanBeEditedBy(userID) && !g.CanBeEditedBy(userID) {
		return nil, ErrNotSubmissionOwner
	}

	newBonus, err := s.engine.Calculate(bonus.Metrics{
		Views:    req.Views,
		Likes:    req.Likes,
		Outcomes: req.Outcomes,
	})
	if err != nil {
		return nil, err
	}

	sub.Views = req.Views
	sub.Likes = req.Likes
	sub.Outcomes = req.Outcomes
	sub.Bonus = newBonus
	sub.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.MetricsUpdated(ctx, g, sub)
	}

	return sub, nil
}

// Approve marks a submission approved, gating payout
func (s *Service) Approve(ctx context.Context, id, businessID uuid.UUID) (*Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	g, err := s.gigRepo.GetByID(ctx, sub.GigID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGigNotFound
	}
	if !g.CanBeEditedBy(businessID) {
		return nil, ErrNotGigOwner
	}
	if sub.Approved {
		return nil, ErrAlreadyApproved
	}
	if !sub.HasVideo() {
		return nil, ErrVideoNotSubmitted
	}

	sub.Approved = true
	sub.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SubmissionApproved(ctx, g, sub)
	}

	log.Info().
		Str("submission_id", sub.ID.String()).
		Float64("bonus", sub.Bonus).
		Msg("Submission approved")

	return sub, nil
}

// Preview computes a bonus breakdown without touching any state
func (s *Service) Preview(req *PreviewRequest) (bonus.Breakdown, error) {
	return s.engine.Preview(bonus.Metrics{
		Views:    req.Views,
		Likes:    req.Likes,
		Outcomes: req.Outcomes,
	})
}

// GetByID returns submission by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

// ListMine returns the clipper's submissions
func (s *Service) ListMine(ctx context.Context, clipperID uuid.UUID) ([]*Submission, error) {
	return s.repo.ListByClipper(ctx, clipperID)
}

// ListForGig returns submissions for a gig the business owns
func (s *Service) ListForGig(ctx context.Context, gigID, businessID uuid.UUID) ([]*Submission, error) {
	g, err := s.gigRepo.GetByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGigNotFound
	}
	if !g.CanBeEditedBy(businessID) {
		return nil, ErrNotGigOwner
	}
	return s.repo.ListByGig(ctx, gigID)
}
