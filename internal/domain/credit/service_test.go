package credit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/credit"
	"github.com/mx70/mx70-api/internal/pkg/clock"
)

// fakeRepo keeps credits in memory and mirrors the transactional semantics of
// the real repository: InsertChecked holds one lock around sum + insert.
type fakeRepo struct {
	mu      sync.Mutex
	credits []credit.Credit

	insertErr error
}

func (f *fakeRepo) Insert(ctx context.Context, c *credit.Credit) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits = append(f.credits, *c)
	return nil
}

func (f *fakeRepo) InsertChecked(ctx context.Context, c *credit.Credit, windowStart time.Time, cap float64) (float64, bool, error) {
	if f.insertErr != nil {
		return 0, false, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if c.SourceRef != nil {
		for _, existing := range f.credits {
			if existing.SourceRef != nil && *existing.SourceRef == *c.SourceRef {
				return 0, false, credit.ErrAlreadyAwarded
			}
		}
	}

	var total float64
	for _, existing := range f.credits {
		if existing.UserID == c.UserID && existing.Source == c.Source && !existing.CreatedAt.Before(windowStart) {
			total += existing.Amount
		}
	}
	if total >= cap {
		return total, false, nil
	}
	f.credits = append(f.credits, *c)
	return total, true, nil
}

func (f *fakeRepo) GetBySourceRef(ctx context.Context, ref uuid.UUID) (*credit.Credit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.credits {
		if c.SourceRef != nil && *c.SourceRef == ref {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) SumBySourceSince(ctx context.Context, userID uuid.UUID, source credit.Source, since time.Time) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, c := range f.credits {
		if c.UserID == userID && c.Source == source && !c.CreatedAt.Before(since) {
			total += c.Amount
		}
	}
	return total, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]credit.Credit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]credit.Credit, 0)
	for _, c := range f.credits {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestService(repo *fakeRepo, clk clock.Clock) *credit.Service {
	return credit.NewService(repo, credit.DefaultConfig(), clk)
}

func TestGigPostCreditUncapped(t *testing.T) {
	repo := &fakeRepo{}
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)
	userID := uuid.New()

	// Far past any monthly cap: every award must land.
	for i := 0; i < 10; i++ {
		c, err := svc.AwardGigPostCredit(context.Background(), userID)
		if err != nil {
			t.Fatalf("award %d failed: %v", i, err)
		}
		if c.Amount != 5.0 {
			t.Fatalf("expected 5.0 per gig post, got %v", c.Amount)
		}
		wantExpiry := clk.T.AddDate(0, 6, 0)
		if !c.Expiry.Equal(wantExpiry) {
			t.Fatalf("expected expiry %v, got %v", wantExpiry, c.Expiry)
		}
	}

	if len(repo.credits) != 10 {
		t.Fatalf("expected 10 credit rows, got %d", len(repo.credits))
	}
}

func TestSelfPromoCapRejectsAtCap(t *testing.T) {
	repo := &fakeRepo{}
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)
	userID := uuid.New()

	// 5.0 issued: awarding 10.0 reaches the cap exactly and is allowed.
	repo.credits = append(repo.credits, credit.Credit{
		ID: uuid.New(), UserID: userID, Amount: 5.0,
		Source: credit.SourceSelfPromo, CreatedAt: clk.T.Add(-24 * time.Hour),
	})

	if _, err := svc.AwardSelfPromoCredit(context.Background(), userID, uuid.New()); err != nil {
		t.Fatalf("award reaching cap exactly should succeed: %v", err)
	}

	// Now at exactly 15.0 in the window: next award is rejected.
	_, err := svc.AwardSelfPromoCredit(context.Background(), userID, uuid.New())
	capErr, ok := credit.IsCapExceeded(err)
	if !ok {
		t.Fatalf("expected CapExceededError, got %v", err)
	}
	if capErr.CurrentWindowTotal != 15.0 {
		t.Errorf("expected window total 15.0, got %v", capErr.CurrentWindowTotal)
	}
	if capErr.Cap != 15.0 {
		t.Errorf("expected cap 15.0, got %v", capErr.Cap)
	}
	if capErr.AttemptedAmount != 10.0 {
		t.Errorf("expected attempted 10.0, got %v", capErr.AttemptedAmount)
	}
}

func TestSelfPromoCapWindowSlides(t *testing.T) {
	repo := &fakeRepo{}
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)
	userID := uuid.New()

	// 15.0 issued 31 days ago: outside the trailing window, award succeeds.
	old := clk.T.Add(-31 * 24 * time.Hour)
	repo.credits = append(repo.credits,
		credit.Credit{ID: uuid.New(), UserID: userID, Amount: 10.0, Source: credit.SourceSelfPromo, CreatedAt: old},
		credit.Credit{ID: uuid.New(), UserID: userID, Amount: 5.0, Source: credit.SourceSelfPromo, CreatedAt: old},
	)

	if _, err := svc.AwardSelfPromoCredit(context.Background(), userID, uuid.New()); err != nil {
		t.Fatalf("award outside window should succeed: %v", err)
	}
}

func TestSelfPromoCapIgnoresGigPostCredits(t *testing.T) {
	repo := &fakeRepo{}
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)
	userID := uuid.New()

	// Plenty of gig-post credits in the window: self-promo cap unaffected.
	for i := 0; i < 5; i++ {
		if _, err := svc.AwardGigPostCredit(context.Background(), userID); err != nil {
			t.Fatalf("gig post award failed: %v", err)
		}
	}

	if _, err := svc.AwardSelfPromoCredit(context.Background(), userID, uuid.New()); err != nil {
		t.Fatalf("self-promo award should ignore gig-post credits: %v", err)
	}
}

func TestConcurrentAwardsRespectCap(t *testing.T) {
	repo := &fakeRepo{}
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)
	userID := uuid.New()

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	success := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AwardSelfPromoCredit(context.Background(), userID, uuid.New())
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			if _, ok := credit.IsCapExceeded(err); !ok {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Cap 15, award 10: first passes (0 < 15), second passes (10 < 15),
	// third sees 20 >= 15. Two awards at most.
	if success != 2 {
		t.Fatalf("expected exactly 2 successful awards, got %d", success)
	}
}

func TestBalancePartition(t *testing.T) {
	repo := &fakeRepo{}
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)
	userID := uuid.New()
	asOf := clk.T

	repo.credits = []credit.Credit{
		{ID: uuid.New(), UserID: userID, Amount: 5.0, Source: credit.SourceGigPost, Expiry: asOf.Add(-time.Second)},
		{ID: uuid.New(), UserID: userID, Amount: 10.0, Source: credit.SourceSelfPromo, Expiry: asOf},
		{ID: uuid.New(), UserID: userID, Amount: 5.0, Source: credit.SourceGigPost, Expiry: asOf.Add(time.Second)},
	}

	b, err := svc.BalanceAsOf(context.Background(), userID, asOf)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}

	// expiry < asOf and expiry == asOf are expired; only expiry > asOf is active.
	if b.ExpiredTotal != 15.0 {
		t.Errorf("expected expired total 15.0, got %v", b.ExpiredTotal)
	}
	if b.ActiveTotal != 5.0 {
		t.Errorf("expected active total 5.0, got %v", b.ActiveTotal)
	}
	if len(b.ExpiredCredits) != 2 || len(b.ActiveCredits) != 1 {
		t.Errorf("expected 2 expired / 1 active, got %d / %d", len(b.ExpiredCredits), len(b.ActiveCredits))
	}
}

func TestBalanceIsPureOverAsOf(t *testing.T) {
	repo := &fakeRepo{}
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)
	userID := uuid.New()

	if _, err := svc.AwardGigPostCredit(context.Background(), userID); err != nil {
		t.Fatalf("award failed: %v", err)
	}

	before, err := svc.BalanceAsOf(context.Background(), userID, clk.T)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if before.ActiveTotal != 5.0 || before.ExpiredTotal != 0 {
		t.Fatalf("expected 5.0 active before expiry, got %+v", before)
	}

	// Same rows, asOf pushed past the expiry horizon: now expired.
	after, err := svc.BalanceAsOf(context.Background(), userID, clk.T.AddDate(0, 6, 0))
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if after.ActiveTotal != 0 || after.ExpiredTotal != 5.0 {
		t.Fatalf("expected 5.0 expired after horizon, got %+v", after)
	}
}

func TestAwardPersistenceFailureNoPartialCredit(t *testing.T) {
	repo := &fakeRepo{insertErr: context.DeadlineExceeded}
	clk := &clock.Fixed{T: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)
	userID := uuid.New()

	if _, err := svc.AwardGigPostCredit(context.Background(), userID); err == nil {
		t.Fatal("expected storage error to surface")
	}
	if _, err := svc.AwardSelfPromoCredit(context.Background(), userID, uuid.New()); err == nil {
		t.Fatal("expected storage error to surface")
	}
	if len(repo.credits) != 0 {
		t.Fatalf("no credit may exist after failed awards, found %d", len(repo.credits))
	}
}

func TestSelfPromoAwardOncePerPromo(t *testing.T) {
	repo := &fakeRepo{}
	clk := &clock.Fixed{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(repo, clk)

	userID := uuid.New()
	promoID := uuid.New()

	first, err := svc.AwardSelfPromoCredit(context.Background(), userID, promoID)
	if err != nil {
		t.Fatalf("first award: %v", err)
	}

	second, err := svc.AwardSelfPromoCredit(context.Background(), userID, promoID)
	if !errors.Is(err, credit.ErrAlreadyAwarded) {
		t.Fatalf("expected ErrAlreadyAwarded, got %v", err)
	}
	if second == nil || second.ID != first.ID {
		t.Fatalf("duplicate award must return the existing credit")
	}
	if len(repo.credits) != 1 {
		t.Fatalf("ledger must hold one row for the promo, found %d", len(repo.credits))
	}
}

func TestWindowTotalCountsOnlyCappedCreditsInWindow(t *testing.T) {
	repo := &fakeRepo{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := &clock.Fixed{T: now}
	svc := newTestService(repo, clk)

	userID := uuid.New()

	if _, err := svc.AwardSelfPromoCredit(context.Background(), userID, uuid.New()); err != nil {
		t.Fatalf("self promo award: %v", err)
	}
	if _, err := svc.AwardGigPostCredit(context.Background(), userID); err != nil {
		t.Fatalf("gig post award: %v", err)
	}
	// Outside the trailing 30-day window.
	old := uuid.New()
	repo.credits = append(repo.credits, credit.Credit{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    10.0,
		Source:    credit.SourceSelfPromo,
		SourceRef: &old,
		Expiry:    now.Add(24 * time.Hour),
		CreatedAt: now.Add(-31 * 24 * time.Hour),
	})

	total, err := svc.WindowTotal(context.Background(), userID)
	if err != nil {
		t.Fatalf("window total: %v", err)
	}
	if total != 10.0 {
		t.Fatalf("window total = %v, want 10.0", total)
	}
}
