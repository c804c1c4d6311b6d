package dashboard

import (
	"time"

	"github.com/mx70/mx70-api/internal/domain/credit"
	"github.com/mx70/mx70-api/internal/domain/gig"
	"github.com/mx70/mx70-api/internal/domain/lesson"
	"github.com/mx70/mx70-api/internal/domain/submission"
	"github.com/mx70/mx70-api/internal/pkg/money"
)

// Overview is the role-scoped dashboard payload
type Overview struct {
	Role         string                          `json:"role"`
	Gigs         []gig.GigResponse               `json:"gigs"`
	Submissions  []submission.SubmissionResponse `json:"submissions"`
	Balance      *credit.Balance                 `json:"balance"`
	TotalCredits float64                         `json:"total_credits"`
}

// NewOverview assembles the overview payload. TotalCredits counts every
// credit ever awarded; the balance carries the active/expired split.
func NewOverview(role string, gigs []*gig.Gig, subs []*submission.Submission, balance *credit.Balance) *Overview {
	o := &Overview{
		Role:        role,
		Gigs:        make([]gig.GigResponse, 0, len(gigs)),
		Submissions: make([]submission.SubmissionResponse, 0, len(subs)),
		Balance:     balance,
	}
	for _, g := range gigs {
		o.Gigs = append(o.Gigs, gig.GigResponseFromEntity(g))
	}
	for _, s := range subs {
		o.Submissions = append(o.Submissions, submission.ResponseFromEntity(s))
	}
	if balance != nil {
		o.TotalCredits = money.RoundCents(balance.ActiveTotal + balance.ExpiredTotal)
	}
	return o
}

// BusinessSummary aggregates a business's gig performance
type BusinessSummary struct {
	TotalGigs     int     `json:"total_gigs"`
	ActiveGigs    int     `json:"active_gigs"`
	CompletedGigs int     `json:"completed_gigs"`
	TotalSpent    float64 `json:"total_spent"`
	TotalViews    int     `json:"total_views"`
	TotalLikes    int     `json:"total_likes"`
	TotalOutcomes int     `json:"total_outcomes"`
	ROIPercent    float64 `json:"roi_percentage"`
}

// StoryTypeStats aggregates submission metrics per story type
type StoryTypeStats struct {
	GigsCount     int     `json:"gigs_count"`
	TotalViews    int     `json:"total_views"`
	TotalLikes    int     `json:"total_likes"`
	TotalOutcomes int     `json:"total_outcomes"`
	AvgViews      float64 `json:"avg_views"`
}

// ClipperSummary aggregates a clipper's earnings and performance
type ClipperSummary struct {
	TotalGigs       int     `json:"total_gigs"`
	CompletedGigs   int     `json:"completed_gigs"`
	PendingApproval int     `json:"pending_approval"`
	TotalEarnings   float64 `json:"total_earnings"`
	TotalBonuses    float64 `json:"total_bonuses"`
	TotalViews      int     `json:"total_views"`
	TotalLikes      int     `json:"total_likes"`
	TotalOutcomes   int     `json:"total_outcomes"`
	AvgViewsPerGig  float64 `json:"avg_views_per_gig"`
	AvgLikesPerGig  float64 `json:"avg_likes_per_gig"`
}

// CertificationInfo is a certification entry on the analytics page
type CertificationInfo struct {
	Level       lesson.CertLevel `json:"level"`
	CompletedAt time.Time        `json:"completed_at"`
}

// NewCertificationList converts certification entities
func NewCertificationList(certs []*lesson.Certification) []CertificationInfo {
	out := make([]CertificationInfo, 0, len(certs))
	for _, c := range certs {
		out = append(out, CertificationInfo{Level: c.Level, CompletedAt: c.CompletedAt})
	}
	return out
}

// Activity is one entry in the recent-activity feed
type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount,omitempty"`
	Views       int       `json:"views,omitempty"`
	Likes       int       `json:"likes,omitempty"`
	Bonus       float64   `json:"bonus,omitempty"`
	Status      string    `json:"status,omitempty"`
	Approved    bool      `json:"approved,omitempty"`
	Date        time.Time `json:"date"`
}

// Analytics is the role-specific analytics payload
type Analytics struct {
	Role            string                     `json:"role"`
	BusinessSummary *BusinessSummary           `json:"business_summary,omitempty"`
	ClipperSummary  *ClipperSummary            `json:"clipper_summary,omitempty"`
	ByStoryType     map[string]*StoryTypeStats `json:"performance_by_story_type,omitempty"`
	Certifications  []CertificationInfo        `json:"certifications,omitempty"`
	RecentActivity  []Activity                 `json:"recent_activity"`
}
