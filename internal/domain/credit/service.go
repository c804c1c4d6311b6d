package credit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/pkg/clock"
	"github.com/mx70/mx70-api/internal/pkg/money"
)

// Service owns credit accrual, cap enforcement and balance classification.
// Award operations for the same user are serialized: the trailing-window sum
// followed by the conditional insert is a check-then-act sequence that must
// not interleave.
type Service struct {
	repo  Repository
	cfg   Config
	clock clock.Clock

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewService creates credit service
func NewService(repo Repository, cfg Config, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.New()
	}
	return &Service{
		repo:  repo,
		cfg:   cfg,
		clock: clk,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Service) userLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// AwardGigPostCredit grants the fixed gig-posting credit. This source carries
// no monthly cap.
func (s *Service) AwardGigPostCredit(ctx context.Context, userID uuid.UUID) (*Credit, error) {
	return s.award(ctx, userID, SourceGigPost, s.cfg.GigPostAmount, nil)
}

// AwardSelfPromoCredit grants the fixed self-promo credit, enforcing the
// trailing-window cap. The promo ID is recorded on the credit row as its
// source reference; the ledger holds at most one credit per reference, so
// re-awarding the same promo is rejected even when the caller's own
// awarded-state write was lost. On that rejection the existing credit is
// returned alongside ErrAlreadyAwarded so the caller can repair its state.
//
// A *CapExceededError is a business rejection, not a fault: the award did not
// happen and the user may retry once the window slides past older credits.
func (s *Service) AwardSelfPromoCredit(ctx context.Context, userID, promoID uuid.UUID) (*Credit, error) {
	return s.award(ctx, userID, SourceSelfPromo, s.cfg.SelfPromoAmount, &promoID)
}

func (s *Service) award(ctx context.Context, userID uuid.UUID, source Source, amount float64, ref *uuid.UUID) (*Credit, error) {
	if !source.IsValid() {
		return nil, ErrInvalidSource
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	now := s.clock.Now()
	c := &Credit{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    money.RoundCents(amount),
		Source:    source,
		SourceRef: ref,
		Expiry:    now.AddDate(0, s.cfg.ExpiryMonths, 0),
		CreatedAt: now,
	}

	if !s.cfg.CappedSources[source] {
		if err := s.repo.Insert(ctx, c); err != nil {
			return nil, err
		}
		log.Info().
			Str("user_id", userID.String()).
			Str("source", string(source)).
			Float64("amount", c.Amount).
			Time("expiry", c.Expiry).
			Msg("credit awarded")
		return c, nil
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	windowStart := now.Add(-s.cfg.CapWindow)
	windowTotal, inserted, err := s.repo.InsertChecked(ctx, c, windowStart, s.cfg.MonthlyCap)
	if errors.Is(err, ErrAlreadyAwarded) {
		existing, getErr := s.repo.GetBySourceRef(ctx, *ref)
		if getErr != nil {
			return nil, getErr
		}
		return existing, ErrAlreadyAwarded
	}
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, &CapExceededError{
			AttemptedAmount:    c.Amount,
			CurrentWindowTotal: windowTotal,
			Cap:                s.cfg.MonthlyCap,
		}
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("source", string(source)).
		Float64("amount", c.Amount).
		Float64("window_total", windowTotal).
		Msg("capped credit awarded")
	return c, nil
}

// WindowTotal returns the sum of a user's self-promo credits issued within the
// trailing cap window ending now.
func (s *Service) WindowTotal(ctx context.Context, userID uuid.UUID) (float64, error) {
	since := s.clock.Now().Add(-s.cfg.CapWindow)
	return s.repo.SumBySourceSince(ctx, userID, SourceSelfPromo, since)
}

// MonthlyCap exposes the configured self-promo cap for display alongside
// WindowTotal.
func (s *Service) MonthlyCap() float64 {
	return s.cfg.MonthlyCap
}

// BalanceAsOf partitions the user's credits into active and expired as of the
// given instant. A credit expiring exactly at asOf counts as expired. The
// result is a pure function of the stored rows and asOf.
func (s *Service) BalanceAsOf(ctx context.Context, userID uuid.UUID, asOf time.Time) (*Balance, error) {
	credits, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := &Balance{
		ActiveCredits:  make([]Credit, 0),
		ExpiredCredits: make([]Credit, 0),
	}
	for _, c := range credits {
		if c.ExpiredAt(asOf) {
			b.ExpiredTotal += c.Amount
			b.ExpiredCredits = append(b.ExpiredCredits, c)
		} else {
			b.ActiveTotal += c.Amount
			b.ActiveCredits = append(b.ActiveCredits, c)
		}
	}
	b.ActiveTotal = money.RoundCents(b.ActiveTotal)
	b.ExpiredTotal = money.RoundCents(b.ExpiredTotal)
	return b, nil
}

// CurrentBalance is BalanceAsOf at the service clock's now.
func (s *Service) CurrentBalance(ctx context.Context, userID uuid.UUID) (*Balance, error) {
	return s.BalanceAsOf(ctx, userID, s.clock.Now())
}

// ListByUser returns the user's full credit history.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Credit, error) {
	return s.repo.ListByUser(ctx, userID)
}
