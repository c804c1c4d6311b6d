package selfpromo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/domain/credit"
	"github.com/mx70/mx70-api/internal/domain/user"
)

// CreditService defines the ledger operations the self-promo domain needs.
// The promo ID travels with the award as the ledger's source reference, so a
// post can never earn more than one credit even across retries.
type CreditService interface {
	AwardSelfPromoCredit(ctx context.Context, userID, promoID uuid.UUID) (*credit.Credit, error)
}

// Service handles self-promo business logic
type Service struct {
	repo          Repository
	userRepo      user.Repository
	creditService CreditService
	minViews      int
	minLikes      int
}

// NewService creates self-promo service
func NewService(repo Repository, userRepo user.Repository, creditService CreditService, minViews, minLikes int) *Service {
	return &Service{
		repo:          repo,
		userRepo:      userRepo,
		creditService: creditService,
		minViews:      minViews,
		minLikes:      minLikes,
	}
}

// Create registers a new self-promo post with zero metrics
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest) (*SelfPromo, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsBusiness() {
		return nil, ErrOnlyBusinessesPromote
	}

	now := time.Now()
	p := &SelfPromo{
		ID:         uuid.New(),
		BusinessID: userID,
		PostLink:   req.PostLink,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateMetrics persists new metrics and, on first qualification, attempts
// the self-promo credit award. The award happens at most once per post; a
// cap rejection leaves the post unawarded so a later window can retry.
func (s *Service) UpdateMetrics(ctx context.Context, id, userID uuid.UUID, req *UpdateMetricsRequest) (*SelfPromo, AwardOutcome, *credit.CapExceededError, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", nil, err
	}
	if p == nil {
		return nil, "", nil, ErrNotFound
	}
	if p.BusinessID != userID {
		return nil, "", nil, ErrNotOwner
	}

	p.Views = req.Views
	p.Likes = req.Likes
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, "", nil, err
	}

	if p.Awarded() {
		return p, OutcomeAlreadyAwarded, nil, nil
	}
	if !p.Qualifies(s.minViews, s.minLikes) {
		return p, OutcomeNotQualified, nil, nil
	}

	c, err := s.creditService.AwardSelfPromoCredit(ctx, p.BusinessID, p.ID)
	if err != nil {
		if errors.Is(err, credit.ErrAlreadyAwarded) {
			// The ledger row landed on an earlier attempt but the promo
			// update was lost. Catch the promo up from the existing credit.
			p.CreditEarned = c.Amount
			p.UpdatedAt = time.Now()
			if err := s.repo.Update(ctx, p); err != nil {
				return nil, "", nil, err
			}
			return p, OutcomeAlreadyAwarded, nil, nil
		}
		var capErr *credit.CapExceededError
		if errors.As(err, &capErr) {
			log.Info().
				Str("promo_id", p.ID.String()).
				Float64("window_total", capErr.CurrentWindowTotal).
				Msg("Self-promo credit rejected by monthly cap")
			return p, OutcomeCapRejected, capErr, nil
		}
		return nil, "", nil, err
	}

	p.CreditEarned = c.Amount
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, "", nil, err
	}

	log.Info().
		Str("promo_id", p.ID.String()).
		Str("business_id", p.BusinessID.String()).
		Float64("credit", c.Amount).
		Msg("Self-promo credit awarded")

	return p, OutcomeAwarded, nil, nil
}

// GetByID returns a post the caller owns
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*SelfPromo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.BusinessID != userID {
		return nil, ErrNotOwner
	}
	return p, nil
}

// ListMine returns the caller's self-promo posts
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*SelfPromo, error) {
	return s.repo.ListByBusiness(ctx, userID)
}
