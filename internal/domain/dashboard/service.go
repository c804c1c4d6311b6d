package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/credit"
	"github.com/mx70/mx70-api/internal/domain/gig"
	"github.com/mx70/mx70-api/internal/domain/lesson"
	"github.com/mx70/mx70-api/internal/domain/payment"
	"github.com/mx70/mx70-api/internal/domain/submission"
	"github.com/mx70/mx70-api/internal/domain/user"
	"github.com/mx70/mx70-api/internal/pkg/money"
)

// outcomeValue is the assumed dollar value of one tracked outcome,
// used for the ROI estimate.
const outcomeValue = 10.0

// maxOverviewItems bounds the gig list pulled into a single overview.
const maxOverviewItems = 100

// recentActivityLimit caps the activity feed on the analytics page.
const recentActivityLimit = 5

// GigLister is the slice of gig.Repository the dashboard reads from
type GigLister interface {
	ListByBusiness(ctx context.Context, businessID uuid.UUID, p *gig.Pagination) ([]*gig.Gig, int, error)
	ListByClipper(ctx context.Context, clipperID uuid.UUID, p *gig.Pagination) ([]*gig.Gig, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*gig.Gig, error)
}

// SubmissionLister is the slice of submission.Repository the dashboard reads from
type SubmissionLister interface {
	ListByClipper(ctx context.Context, clipperID uuid.UUID) ([]*submission.Submission, error)
	ListByGig(ctx context.Context, gigID uuid.UUID) ([]*submission.Submission, error)
}

// CreditReader exposes the ledger's balance partition
type CreditReader interface {
	CurrentBalance(ctx context.Context, userID uuid.UUID) (*credit.Balance, error)
}

// CertificationLister exposes a clipper's earned certifications
type CertificationLister interface {
	ListCertifications(ctx context.Context, clipperID uuid.UUID) ([]*lesson.Certification, error)
}

// Service aggregates cross-domain data for the dashboard
type Service struct {
	gigs    GigLister
	subs    SubmissionLister
	credits CreditReader
	certs   CertificationLister
	fees    payment.Fees
}

// NewService creates dashboard service
func NewService(gigs GigLister, subs SubmissionLister, credits CreditReader, certs CertificationLister, fees payment.Fees) *Service {
	return &Service{
		gigs:    gigs,
		subs:    subs,
		credits: credits,
		certs:   certs,
		fees:    fees,
	}
}

// Overview returns the role-scoped dashboard: the user's gigs, the
// submissions attached to them, and the credit balance partition.
func (s *Service) Overview(ctx context.Context, userID uuid.UUID, role string) (*Overview, error) {
	var (
		gigs []*gig.Gig
		subs []*submission.Submission
		err  error
	)

	page := &gig.Pagination{Page: 1, Limit: maxOverviewItems}

	if role == string(user.RoleBusiness) {
		gigs, _, err = s.gigs.ListByBusiness(ctx, userID, page)
		if err != nil {
			return nil, fmt.Errorf("dashboard overview gigs: %w", err)
		}
		for _, g := range gigs {
			gigSubs, err := s.subs.ListByGig(ctx, g.ID)
			if err != nil {
				return nil, fmt.Errorf("dashboard overview submissions: %w", err)
			}
			subs = append(subs, gigSubs...)
		}
	} else {
		subs, err = s.subs.ListByClipper(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("dashboard overview submissions: %w", err)
		}
		gigs, _, err = s.gigs.ListByClipper(ctx, userID, page)
		if err != nil {
			return nil, fmt.Errorf("dashboard overview gigs: %w", err)
		}
	}

	balance, err := s.credits.CurrentBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard overview balance: %w", err)
	}

	return NewOverview(role, gigs, subs, balance), nil
}

// Analytics dispatches to the role-specific report
func (s *Service) Analytics(ctx context.Context, userID uuid.UUID, role string) (*Analytics, error) {
	if role == string(user.RoleBusiness) {
		return s.businessAnalytics(ctx, userID)
	}
	return s.clipperAnalytics(ctx, userID)
}

func (s *Service) businessAnalytics(ctx context.Context, businessID uuid.UUID) (*Analytics, error) {
	gigs, _, err := s.gigs.ListByBusiness(ctx, businessID, &gig.Pagination{Page: 1, Limit: maxOverviewItems})
	if err != nil {
		return nil, fmt.Errorf("business analytics gigs: %w", err)
	}

	summary := BusinessSummary{TotalGigs: len(gigs)}
	byStory := map[string]*StoryTypeStats{}

	for _, g := range gigs {
		switch g.Status {
		case gig.StatusPending, gig.StatusClaimed:
			summary.ActiveGigs++
		case gig.StatusCompleted:
			summary.CompletedGigs++
		}
		summary.TotalSpent += g.Budget

		subs, err := s.subs.ListByGig(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("business analytics submissions: %w", err)
		}

		stats := byStory[g.StoryType]
		if stats == nil {
			stats = &StoryTypeStats{}
			byStory[g.StoryType] = stats
		}
		stats.GigsCount++
		for _, sub := range subs {
			summary.TotalViews += sub.Views
			summary.TotalLikes += sub.Likes
			summary.TotalOutcomes += sub.Outcomes
			stats.TotalViews += sub.Views
			stats.TotalLikes += sub.Likes
			stats.TotalOutcomes += sub.Outcomes
		}
	}

	for _, stats := range byStory {
		if stats.GigsCount > 0 {
			stats.AvgViews = float64(stats.TotalViews) / float64(stats.GigsCount)
		}
	}

	// Crude ROI: tracked outcomes at a flat value against total budget.
	if summary.TotalSpent > 0 {
		summary.ROIPercent = float64(summary.TotalOutcomes) * outcomeValue / summary.TotalSpent * 100
	}

	return &Analytics{
		Role:            string(user.RoleBusiness),
		BusinessSummary: &summary,
		ByStoryType:     byStory,
		RecentActivity:  businessActivity(gigs),
	}, nil
}

func (s *Service) clipperAnalytics(ctx context.Context, clipperID uuid.UUID) (*Analytics, error) {
	subs, err := s.subs.ListByClipper(ctx, clipperID)
	if err != nil {
		return nil, fmt.Errorf("clipper analytics submissions: %w", err)
	}

	summary := ClipperSummary{TotalGigs: len(subs)}
	for _, sub := range subs {
		summary.TotalViews += sub.Views
		summary.TotalLikes += sub.Likes
		summary.TotalOutcomes += sub.Outcomes

		if !sub.Approved {
			summary.PendingApproval++
			continue
		}
		summary.CompletedGigs++
		summary.TotalBonuses += sub.Bonus

		// Mirror the payout math: flat base pay plus bonus, minus the
		// clipper-side platform fee.
		earnings := s.fees.BasePay + sub.Bonus
		fee := money.RoundCents(earnings * s.fees.ClipperRate)
		summary.TotalEarnings += money.RoundCents(earnings - fee)
	}
	summary.TotalEarnings = money.RoundCents(summary.TotalEarnings)
	summary.TotalBonuses = money.RoundCents(summary.TotalBonuses)

	if summary.CompletedGigs > 0 {
		summary.AvgViewsPerGig = float64(summary.TotalViews) / float64(summary.CompletedGigs)
		summary.AvgLikesPerGig = float64(summary.TotalLikes) / float64(summary.CompletedGigs)
	}

	certs, err := s.certs.ListCertifications(ctx, clipperID)
	if err != nil {
		return nil, fmt.Errorf("clipper analytics certifications: %w", err)
	}

	activity, err := s.clipperActivity(ctx, subs)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Role:           string(user.RoleClipper),
		ClipperSummary: &summary,
		Certifications: NewCertificationList(certs),
		RecentActivity: activity,
	}, nil
}

func businessActivity(gigs []*gig.Gig) []Activity {
	activities := make([]Activity, 0, recentActivityLimit)
	for _, g := range gigs {
		if len(activities) == recentActivityLimit {
			break
		}
		activities = append(activities, Activity{
			Type:        "gig_posted",
			Description: fmt.Sprintf("Posted gig: %s", g.StoryType),
			Amount:      g.Budget,
			Date:        g.CreatedAt,
			Status:      string(g.Status),
		})
	}
	return activities
}

func (s *Service) clipperActivity(ctx context.Context, subs []*submission.Submission) ([]Activity, error) {
	activities := make([]Activity, 0, recentActivityLimit)
	for _, sub := range subs {
		if len(activities) == recentActivityLimit {
			break
		}

		description := "Submitted video"
		if g, err := s.gigs.GetByID(ctx, sub.GigID); err == nil && g != nil {
			description = fmt.Sprintf("Submitted video for: %s", g.StoryType)
		}

		activities = append(activities, Activity{
			Type:        "submission",
			Description: description,
			Views:       sub.Views,
			Likes:       sub.Likes,
			Bonus:       sub.Bonus,
			Date:        sub.CreatedAt,
			Approved:    sub.Approved,
		})
	}
	return activities, nil
}
