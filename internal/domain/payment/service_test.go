package payment

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/gig"
	"github.com/mx70/mx70-api/internal/domain/submission"
	"github.com/mx70/mx70-api/internal/pkg/payment"
)

type fakeSubRepo struct {
	subs map[uuid.UUID]*submission.Submission
}

func (f *fakeSubRepo) Create(ctx context.Context, s *submission.Submission) error { return nil }

func (f *fakeSubRepo) GetByID(ctx context.Context, id uuid.UUID) (*submission.Submission, error) {
	return f.subs[id], nil
}

func (f *fakeSubRepo) GetByGigAndClipper(ctx context.Context, gigID, clipperID uuid.UUID) (*submission.Submission, error) {
	return nil, nil
}

func (f *fakeSubRepo) Update(ctx context.Context, s *submission.Submission) error { return nil }

func (f *fakeSubRepo) ListByClipper(ctx context.Context, clipperID uuid.UUID) ([]*submission.Submission, error) {
	return nil, nil
}

func (f *fakeSubRepo) ListByGig(ctx context.Context, gigID uuid.UUID) ([]*submission.Submission, error) {
	return nil, nil
}

func (f *fakeSubRepo) ListApprovedByClipper(ctx context.Context, clipperID uuid.UUID) ([]*submission.Submission, error) {
	return nil, nil
}

type fakeGigRepo struct {
	gigs map[uuid.UUID]*gig.Gig
}

func (f *fakeGigRepo) Create(ctx context.Context, g *gig.Gig) error { return nil }

func (f *fakeGigRepo) GetByID(ctx context.Context, id uuid.UUID) (*gig.Gig, error) {
	return f.gigs[id], nil
}

func (f *fakeGigRepo) Update(ctx context.Context, g *gig.Gig) error { return nil }

func (f *fakeGigRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status gig.Status) error {
	return nil
}

func (f *fakeGigRepo) Claim(ctx context.Context, id uuid.UUID, clipperID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeGigRepo) List(ctx context.Context, filter *gig.Filter, p *gig.Pagination) ([]*gig.Gig, int, error) {
	return nil, 0, nil
}

func (f *fakeGigRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, p *gig.Pagination) ([]*gig.Gig, int, error) {
	return nil, 0, nil
}

func (f *fakeGigRepo) ListByClipper(ctx context.Context, clipperID uuid.UUID, p *gig.Pagination) ([]*gig.Gig, int, error) {
	return nil, 0, nil
}

func defaultFees() Fees {
	return Fees{BusinessRate: 0.08, ClipperRate: 0.12, BasePay: 100.0}
}

func newFixture() (*Service, uuid.UUID, *submission.Submission) {
	businessID := uuid.New()
	g := &gig.Gig{ID: uuid.New(), BusinessID: businessID, Status: gig.StatusCompleted}
	sub := &submission.Submission{
		ID:        uuid.New(),
		GigID:     g.ID,
		ClipperID: uuid.New(),
		VideoURL:  sql.NullString{String: "https://cdn.example.com/clip.mp4", Valid: true},
		Bonus:     15.6,
		Approved:  true,
	}

	svc := NewService(
		payment.NewMockProvider(),
		&fakeSubRepo{subs: map[uuid.UUID]*submission.Submission{sub.ID: sub}},
		&fakeGigRepo{gigs: map[uuid.UUID]*gig.Gig{g.ID: g}},
		defaultFees(),
	)
	return svc, businessID, sub
}

func TestCreateDepositAddsBusinessFee(t *testing.T) {
	svc, businessID, _ := newFixture()

	resp, err := svc.CreateDeposit(context.Background(), businessID, &CreateDepositRequest{
		Amount: 100.0,
	})
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if resp.PlatformFee != 8.0 {
		t.Errorf("platform fee = %v, want 8.0", resp.PlatformFee)
	}
	if resp.TotalAmount != 108.0 {
		t.Errorf("total = %v, want 108.0", resp.TotalAmount)
	}
}

func TestCreateDepositRejectsNonPositive(t *testing.T) {
	svc, businessID, _ := newFixture()

	_, err := svc.CreateDeposit(context.Background(), businessID, &CreateDepositRequest{Amount: 0})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestPayoutDeductsClipperFee(t *testing.T) {
	svc, businessID, sub := newFixture()

	resp, err := svc.Payout(context.Background(), businessID, sub.ID)
	if err != nil {
		t.Fatalf("payout failed: %v", err)
	}

	// (100 + 15.6) = 115.6, fee 12% = 13.87, net 101.73
	if resp.BasePay != 100.0 || resp.Bonus != 15.6 {
		t.Errorf("earnings components = %v + %v", resp.BasePay, resp.Bonus)
	}
	if resp.PlatformFee != 13.87 {
		t.Errorf("platform fee = %v, want 13.87", resp.PlatformFee)
	}
	if resp.PayoutAmount != 101.73 {
		t.Errorf("payout = %v, want 101.73", resp.PayoutAmount)
	}
}

func TestPayoutRequiresApproval(t *testing.T) {
	svc, businessID, sub := newFixture()
	sub.Approved = false

	_, err := svc.Payout(context.Background(), businessID, sub.ID)
	if !errors.Is(err, ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved, got %v", err)
	}
}

func TestPayoutRequiresGigOwnership(t *testing.T) {
	svc, _, sub := newFixture()

	_, err := svc.Payout(context.Background(), uuid.New(), sub.ID)
	if !errors.Is(err, ErrNotGigOwner) {
		t.Fatalf("expected ErrNotGigOwner, got %v", err)
	}
}

func TestPayoutUnknownSubmission(t *testing.T) {
	svc, businessID, _ := newFixture()

	_, err := svc.Payout(context.Background(), businessID, uuid.New())
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}
