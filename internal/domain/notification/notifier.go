package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/domain/gig"
	"github.com/mx70/mx70-api/internal/domain/submission"
	"github.com/mx70/mx70-api/internal/domain/user"
	"github.com/mx70/mx70-api/internal/pkg/email"
)

// Dispatcher fans submission lifecycle events out to WebSocket clients
// and the email queue. It implements submission.Notifier.
type Dispatcher struct {
	hub       *Hub
	emails    *email.Service
	userRepo  user.Repository
	publicURL string
}

// NewDispatcher creates a notification dispatcher. emails may be nil
// when SMTP is not configured; WebSocket pushes still happen.
func NewDispatcher(hub *Hub, emails *email.Service, userRepo user.Repository, publicURL string) *Dispatcher {
	return &Dispatcher{
		hub:       hub,
		emails:    emails,
		userRepo:  userRepo,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// GigClaimed notifies the gig's business that a clipper picked up the gig
func (d *Dispatcher) GigClaimed(ctx context.Context, g *gig.Gig, clipperID uuid.UUID) {
	d.hub.SendToUser(g.BusinessID, &Event{
		Type:  EventGigClaimed,
		GigID: g.ID,
		Data: map[string]interface{}{
			"title":      g.Title,
			"clipper_id": clipperID,
			"status":     g.Status,
		},
	})

	if d.emails == nil {
		return
	}
	owner, err := d.userRepo.GetByID(ctx, g.BusinessID)
	if err != nil || owner == nil {
		log.Error().Err(err).Str("gig_id", g.ID.String()).Msg("Failed to load gig owner for claim email")
		return
	}
	d.emails.SendGigClaimed(
		owner.Email,
		displayName(owner),
		g.Title,
		fmt.Sprintf("%.2f", g.Budget),
		fmt.Sprintf("%s/gigs/%s", d.publicURL, g.ID),
	)
}

// MetricsUpdated pushes fresh metrics and the recomputed bonus to both
// sides of the gig. Dashboard-only, no email.
func (d *Dispatcher) MetricsUpdated(ctx context.Context, g *gig.Gig, s *submission.Submission) {
	event := &Event{
		Type:         EventMetricsUpdated,
		GigID:        g.ID,
		SubmissionID: s.ID,
		Data: map[string]interface{}{
			"views":    s.Views,
			"likes":    s.Likes,
			"outcomes": s.Outcomes,
			"bonus":    s.Bonus,
		},
	}
	d.hub.SendToUser(g.BusinessID, event)
	d.hub.SendToUser(s.ClipperID, event)
}

// SubmissionApproved notifies the clipper that their work was approved
func (d *Dispatcher) SubmissionApproved(ctx context.Context, g *gig.Gig, s *submission.Submission) {
	d.hub.SendToUser(s.ClipperID, &Event{
		Type:         EventSubmissionApproved,
		GigID:        g.ID,
		SubmissionID: s.ID,
		Data: map[string]interface{}{
			"title": g.Title,
			"bonus": s.Bonus,
		},
	})

	if d.emails == nil {
		return
	}
	clipper, err := d.userRepo.GetByID(ctx, s.ClipperID)
	if err != nil || clipper == nil {
		log.Error().Err(err).Str("submission_id", s.ID.String()).Msg("Failed to load clipper for approval email")
		return
	}
	d.emails.SendSubmissionApproved(
		clipper.Email,
		displayName(clipper),
		g.Title,
		fmt.Sprintf("%.2f", s.Bonus),
		fmt.Sprintf("%s/submissions/%s", d.publicURL, s.ID),
	)
}

// displayName derives a greeting name from the email local part
func displayName(u *user.User) string {
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
