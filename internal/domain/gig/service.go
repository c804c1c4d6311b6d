package gig

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/domain/credit"
	"github.com/mx70/mx70-api/internal/domain/user"
)

// CreditService defines the credit operations the gig domain needs
type CreditService interface {
	AwardGigPostCredit(ctx context.Context, userID uuid.UUID) (*credit.Credit, error)
}

// Service handles gig business logic
type Service struct {
	repo          Repository
	userRepo      user.Repository
	creditService CreditService
	minBudget     float64
}

// NewService creates gig service
func NewService(repo Repository, userRepo user.Repository, creditService CreditService, minBudget float64) *Service {
	return &Service{
		repo:          repo,
		userRepo:      userRepo,
		creditService: creditService,
		minBudget:     minBudget,
	}
}

// Create posts a new gig and awards the posting credit
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateGigRequest) (*Gig, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.CanPostGig() {
		return nil, ErrOnlyBusinessesCanPost
	}

	if req.Budget < s.minBudget {
		return nil, &BudgetError{Budget: req.Budget, Minimum: s.minBudget}
	}

	now := time.Now()
	g := &Gig{
		ID:          uuid.New(),
		BusinessID:  userID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Goals:       req.Goals,
		StoryType:   req.StoryType,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.RawFootageURL != "" {
		g.RawFootageURL = sql.NullString{String: req.RawFootageURL, Valid: true}
	}
	if req.CoverImageURL != "" {
		g.CoverImageURL = sql.NullString{String: req.CoverImageURL, Valid: true}
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	// Posting a gig earns a platform credit. A credit failure should not
	// roll back the gig itself, only be logged and retried out of band.
	if s.creditService != nil {
		if _, err := s.creditService.AwardGigPostCredit(ctx, userID); err != nil {
			log.Error().Err(err).
				Str("gig_id", g.ID.String()).
				Str("business_id", userID.String()).
				Msg("Failed to award gig post credit")
		}
	}

	return g, nil
}

// GetByID returns gig by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Gig, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGigNotFound
	}
	return g, nil
}

// Update updates a pending gig
func (s *Service) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, req *UpdateGigRequest) (*Gig, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGigNotFound
	}
	if !g.CanBeEditedBy(userID) {
		return nil, ErrNotGigOwner
	}
	if !g.IsPending() {
		return nil, ErrGigNotPending
	}

	if req.Title != "" {
		g.Title = req.Title
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.Budget != nil {
		if *req.Budget < s.minBudget {
			return nil, &BudgetError{Budget: *req.Budget, Minimum: s.minBudget}
		}
		g.Budget = *req.Budget
	}
	if req.Goals != nil {
		g.Goals = *req.Goals
	}
	if req.StoryType != "" {
		g.StoryType = req.StoryType
	}
	if req.RawFootageURL != "" {
		g.RawFootageURL = sql.NullString{String: req.RawFootageURL, Valid: true}
	}
	if req.CoverImageURL != "" {
		g.CoverImageURL = sql.NullString{String: req.CoverImageURL, Valid: true}
	}
	g.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Cancel cancels a pending gig
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Gig, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGigNotFound
	}
	if !g.CanBeEditedBy(userID) {
		return nil, ErrNotGigOwner
	}
	if !g.IsPending() {
		return nil, ErrCannotCancelClaimedGig
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	g.Status = StatusCancelled
	return g, nil
}

// ListAvailable returns pending gigs for clippers to browse
func (s *Service) ListAvailable(ctx context.Context, storyType *string, p *Pagination) ([]*Gig, int, error) {
	pending := StatusPending
	return s.repo.List(ctx, &Filter{Status: &pending, StoryType: storyType}, p)
}

// ListMine returns the caller's gigs, by role
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, role string, p *Pagination) ([]*Gig, int, error) {
	if role == string(user.RoleClipper) {
		return s.repo.ListByClipper(ctx, userID, p)
	}
	return s.repo.ListByBusiness(ctx, userID, p)
}
