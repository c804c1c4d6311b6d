package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/domain/gig"
	"github.com/mx70/mx70-api/internal/domain/submission"
	"github.com/mx70/mx70-api/internal/pkg/money"
	"github.com/mx70/mx70-api/internal/pkg/payment"
)

// Fees captures the platform fee schedule
type Fees struct {
	BusinessRate float64 // added on top of deposits
	ClipperRate  float64 // deducted from payouts
	BasePay      float64 // flat pay per approved submission
}

// Service handles escrow and payout logic
type Service struct {
	provider payment.Provider
	subRepo  submission.Repository
	gigRepo  gig.Repository
	fees     Fees
}

// NewService creates payment service
func NewService(provider payment.Provider, subRepo submission.Repository, gigRepo gig.Repository, fees Fees) *Service {
	return &Service{
		provider: provider,
		subRepo:  subRepo,
		gigRepo:  gigRepo,
		fees:     fees,
	}
}

// CreateDeposit charges the business the gig amount plus the platform fee
func (s *Service) CreateDeposit(ctx context.Context, businessID uuid.UUID, req *CreateDepositRequest) (*DepositResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	fee := money.RoundCents(req.Amount * s.fees.BusinessRate)
	total := money.RoundCents(req.Amount + fee)

	intent, err := s.provider.CreateIntent(ctx, payment.IntentRequest{
		Amount:      total,
		Currency:    "usd",
		Description: req.Description,
		Metadata: map[string]string{
			"business_id": businessID.String(),
		},
	})
	if err != nil {
		return nil, err
	}

	return &DepositResponse{
		ID:          intent.ID,
		BaseAmount:  req.Amount,
		PlatformFee: fee,
		TotalAmount: total,
		Status:      intent.Status,
	}, nil
}

// Payout pays the clipper base pay plus bonus, minus the clipper fee.
// Requires an approved submission on a gig the caller owns.
func (s *Service) Payout(ctx context.Context, businessID, submissionID uuid.UUID) (*PayoutResponse, error) {
	sub, err := s.subRepo.GetByID(ctx, submissionID)
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
	if g == nil || !g.CanBeEditedBy(businessID) {
		return nil, ErrNotGigOwner
	}
	if !sub.Approved {
		return nil, ErrNotApproved
	}

	earnings := s.fees.BasePay + sub.Bonus
	fee := money.RoundCents(earnings * s.fees.ClipperRate)
	amount := money.RoundCents(earnings - fee)

	payout, err := s.provider.CreatePayout(ctx, payment.PayoutRequest{
		Amount:      amount,
		Currency:    "usd",
		Destination: sub.ClipperID.String(),
		Metadata: map[string]string{
			"submission_id": sub.ID.String(),
		},
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("submission_id", sub.ID.String()).
		Str("clipper_id", sub.ClipperID.String()).
		Float64("amount", amount).
		Msg("Payout processed")

	return &PayoutResponse{
		PayoutID:     payout.ID,
		BasePay:      s.fees.BasePay,
		Bonus:        sub.Bonus,
		PlatformFee:  fee,
		PayoutAmount: amount,
		Status:       payout.Status,
	}, nil
}

// HandleWebhook processes provider callbacks
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*payment.WebhookEvent, error) {
	if !s.provider.VerifyWebhook(payload, signature) {
		return nil, ErrInvalidSignature
	}

	event, err := s.provider.ParseWebhook(payload)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("provider", event.Provider).
		Str("event_type", event.EventType).
		Str("status", event.Status).
		Msg("Payment webhook received")

	return event, nil
}
