package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/credit"
	"github.com/mx70/mx70-api/internal/domain/gig"
	"github.com/mx70/mx70-api/internal/domain/lesson"
	"github.com/mx70/mx70-api/internal/domain/payment"
	"github.com/mx70/mx70-api/internal/domain/submission"
)

type fakeGigLister struct {
	byBusiness map[uuid.UUID][]*gig.Gig
	byClipper  map[uuid.UUID][]*gig.Gig
}

func (f *fakeGigLister) ListByBusiness(ctx context.Context, businessID uuid.UUID, p *gig.Pagination) ([]*gig.Gig, int, error) {
	gigs := f.byBusiness[businessID]
	return gigs, len(gigs), nil
}

func (f *fakeGigLister) ListByClipper(ctx context.Context, clipperID uuid.UUID, p *gig.Pagination) ([]*gig.Gig, int, error) {
	gigs := f.byClipper[clipperID]
	return gigs, len(gigs), nil
}

func (f *fakeGigLister) GetByID(ctx context.Context, id uuid.UUID) (*gig.Gig, error) {
	for _, gigs := range f.byBusiness {
		for _, g := range gigs {
			if g.ID == id {
				return g, nil
			}
		}
	}
	for _, gigs := range f.byClipper {
		for _, g := range gigs {
			if g.ID == id {
				return g, nil
			}
		}
	}
	return nil, nil
}

type fakeSubmissionLister struct {
	byClipper map[uuid.UUID][]*submission.Submission
	byGig     map[uuid.UUID][]*submission.Submission
}

func (f *fakeSubmissionLister) ListByClipper(ctx context.Context, clipperID uuid.UUID) ([]*submission.Submission, error) {
	return f.byClipper[clipperID], nil
}

func (f *fakeSubmissionLister) ListByGig(ctx context.Context, gigID uuid.UUID) ([]*submission.Submission, error) {
	return f.byGig[gigID], nil
}

type fakeCreditReader struct {
	balance *credit.Balance
}

func (f *fakeCreditReader) CurrentBalance(ctx context.Context, userID uuid.UUID) (*credit.Balance, error) {
	return f.balance, nil
}

type fakeCertLister struct {
	certs []*lesson.Certification
}

func (f *fakeCertLister) ListCertifications(ctx context.Context, clipperID uuid.UUID) ([]*lesson.Certification, error) {
	return f.certs, nil
}

func testFees() payment.Fees {
	return payment.Fees{BusinessRate: 0.08, ClipperRate: 0.12, BasePay: 100.0}
}

func TestOverviewBusinessCollectsSubmissionsAcrossGigs(t *testing.T) {
	businessID := uuid.New()
	gigA := &gig.Gig{ID: uuid.New(), BusinessID: businessID, StoryType: "customer_review", Status: gig.StatusClaimed}
	gigB := &gig.Gig{ID: uuid.New(), BusinessID: businessID, StoryType: "product_demo", Status: gig.StatusPending}

	gigs := &fakeGigLister{byBusiness: map[uuid.UUID][]*gig.Gig{businessID: {gigA, gigB}}}
	subs := &fakeSubmissionLister{byGig: map[uuid.UUID][]*submission.Submission{
		gigA.ID: {{ID: uuid.New(), GigID: gigA.ID, Views: 500}},
		gigB.ID: {{ID: uuid.New(), GigID: gigB.ID}, {ID: uuid.New(), GigID: gigB.ID}},
	}}
	credits := &fakeCreditReader{balance: &credit.Balance{ActiveTotal: 12.5, ExpiredTotal: 5.0}}

	svc := NewService(gigs, subs, credits, &fakeCertLister{}, testFees())

	overview, err := svc.Overview(context.Background(), businessID, "business_local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overview.Gigs) != 2 {
		t.Errorf("expected 2 gigs, got %d", len(overview.Gigs))
	}
	if len(overview.Submissions) != 3 {
		t.Errorf("expected 3 submissions across gigs, got %d", len(overview.Submissions))
	}
	if overview.TotalCredits != 17.5 {
		t.Errorf("expected total credits 17.5, got %v", overview.TotalCredits)
	}
	if overview.Balance.ActiveTotal != 12.5 {
		t.Errorf("expected active total 12.5, got %v", overview.Balance.ActiveTotal)
	}
}

func TestOverviewClipperScopesToOwnSubmissions(t *testing.T) {
	clipperID := uuid.New()
	claimed := &gig.Gig{ID: uuid.New(), Status: gig.StatusClaimed}

	gigs := &fakeGigLister{byClipper: map[uuid.UUID][]*gig.Gig{clipperID: {claimed}}}
	subs := &fakeSubmissionLister{byClipper: map[uuid.UUID][]*submission.Submission{
		clipperID: {{ID: uuid.New(), GigID: claimed.ID, ClipperID: clipperID}},
	}}
	credits := &fakeCreditReader{balance: &credit.Balance{}}

	svc := NewService(gigs, subs, credits, &fakeCertLister{}, testFees())

	overview, err := svc.Overview(context.Background(), clipperID, "clipper")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overview.Gigs) != 1 || len(overview.Submissions) != 1 {
		t.Errorf("expected 1 gig and 1 submission, got %d and %d",
			len(overview.Gigs), len(overview.Submissions))
	}
}

func TestBusinessAnalyticsROIAndStoryTypes(t *testing.T) {
	businessID := uuid.New()
	review := &gig.Gig{ID: uuid.New(), BusinessID: businessID, StoryType: "customer_review", Status: gig.StatusCompleted, Budget: 150}
	demo := &gig.Gig{ID: uuid.New(), BusinessID: businessID, StoryType: "product_demo", Status: gig.StatusPending, Budget: 50}

	gigs := &fakeGigLister{byBusiness: map[uuid.UUID][]*gig.Gig{businessID: {review, demo}}}
	subs := &fakeSubmissionLister{byGig: map[uuid.UUID][]*submission.Submission{
		review.ID: {{ID: uuid.New(), GigID: review.ID, Views: 1000, Likes: 100, Outcomes: 20}},
	}}

	svc := NewService(gigs, subs, &fakeCreditReader{}, &fakeCertLister{}, testFees())

	analytics, err := svc.Analytics(context.Background(), businessID, "business_local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := analytics.BusinessSummary
	if s == nil {
		t.Fatal("expected business summary")
	}
	if s.TotalGigs != 2 || s.ActiveGigs != 1 || s.CompletedGigs != 1 {
		t.Errorf("unexpected gig counts: %+v", s)
	}
	if s.TotalSpent != 200 {
		t.Errorf("expected total spent 200, got %v", s.TotalSpent)
	}
	// 20 outcomes at $10 against $200 spent.
	if s.ROIPercent != 100 {
		t.Errorf("expected ROI 100%%, got %v", s.ROIPercent)
	}

	reviewStats := analytics.ByStoryType["customer_review"]
	if reviewStats == nil || reviewStats.TotalViews != 1000 || reviewStats.AvgViews != 1000 {
		t.Errorf("unexpected customer_review stats: %+v", reviewStats)
	}
	demoStats := analytics.ByStoryType["product_demo"]
	if demoStats == nil || demoStats.GigsCount != 1 || demoStats.TotalViews != 0 {
		t.Errorf("unexpected product_demo stats: %+v", demoStats)
	}
}

func TestClipperAnalyticsFeeAdjustedEarnings(t *testing.T) {
	clipperID := uuid.New()
	g := &gig.Gig{ID: uuid.New(), StoryType: "behind_scenes", Status: gig.StatusCompleted}

	approved := &submission.Submission{
		ID: uuid.New(), GigID: g.ID, ClipperID: clipperID,
		Views: 1000, Likes: 100, Outcomes: 20,
		Bonus: 15.6, Approved: true,
	}
	pending := &submission.Submission{
		ID: uuid.New(), GigID: g.ID, ClipperID: clipperID,
		Views: 200, Likes: 10,
	}

	gigs := &fakeGigLister{byClipper: map[uuid.UUID][]*gig.Gig{clipperID: {g}}}
	subs := &fakeSubmissionLister{byClipper: map[uuid.UUID][]*submission.Submission{
		clipperID: {approved, pending},
	}}
	certs := &fakeCertLister{certs: []*lesson.Certification{
		{ID: uuid.New(), ClipperID: clipperID, Level: lesson.LevelBasic},
	}}

	svc := NewService(gigs, subs, &fakeCreditReader{}, certs, testFees())

	analytics, err := svc.Analytics(context.Background(), clipperID, "clipper")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := analytics.ClipperSummary
	if s == nil {
		t.Fatal("expected clipper summary")
	}
	if s.TotalGigs != 2 || s.CompletedGigs != 1 || s.PendingApproval != 1 {
		t.Errorf("unexpected submission counts: %+v", s)
	}
	// base 100 + bonus 15.6 = 115.6, minus 12% fee (13.87) = 101.73.
	if s.TotalEarnings != 101.73 {
		t.Errorf("expected earnings 101.73, got %v", s.TotalEarnings)
	}
	if s.TotalBonuses != 15.6 {
		t.Errorf("expected bonuses 15.6, got %v", s.TotalBonuses)
	}
	if s.TotalViews != 1200 {
		t.Errorf("expected views from all submissions, got %d", s.TotalViews)
	}
	if len(analytics.Certifications) != 1 || analytics.Certifications[0].Level != lesson.LevelBasic {
		t.Errorf("expected basic certification in analytics, got %+v", analytics.Certifications)
	}
	if len(analytics.RecentActivity) != 2 {
		t.Errorf("expected 2 activity entries, got %d", len(analytics.RecentActivity))
	}
}
