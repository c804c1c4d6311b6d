package email

import (
	"bytes"
	"context"
	"html/template"
	"sync"

	"github.com/rs/zerolog/log"
)

// Service handles email sending with templates
type Service struct {
	client       *SendGridClient
	templates    map[string]*template.Template
	baseTemplate *template.Template
	queue        chan *QueuedEmail
	wg           sync.WaitGroup
}

// QueuedEmail represents an email in the send queue
type QueuedEmail struct {
	To           string
	ToName       string
	Subject      string
	TemplateName string
	Data         interface{}
}

// NewService creates email service
func NewService(config SendGridConfig) *Service {
	s := &Service{
		client:    NewSendGridClient(config),
		templates: make(map[string]*template.Template),
		queue:     make(chan *QueuedEmail, 100),
	}

	// Load base template
	s.baseTemplate, _ = template.New("base").Parse(BaseTemplate)

	// Load all templates
	s.loadTemplates()

	// Start async worker
	s.wg.Add(1)
	go s.worker()

	return s
}

// loadTemplates loads all email templates
func (s *Service) loadTemplates() {
	templates := map[string]string{
		"welcome":             WelcomeTemplate,
		"gig_claimed":         GigClaimedTemplate,
		"submission_approved": SubmissionApprovedTemplate,
		"credit_awarded":      CreditAwardedTemplate,
	}

	for name, content := range templates {
		tmpl, err := template.New(name).Parse(content)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Failed to parse email template")
			continue
		}
		s.templates[name] = tmpl
	}
}

// worker processes queued emails asynchronously
func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		ctx := context.Background()
		if err := s.send(ctx, email); err != nil {
			log.Error().Err(err).
				Str("to", email.To).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
	}
}

// send actually sends the email
func (s *Service) send(ctx context.Context, email *QueuedEmail) error {
	// Render template
	tmpl, ok := s.templates[email.TemplateName]
	if !ok {
		log.Warn().Str("template", email.TemplateName).Msg("Template not found")
		return nil
	}

	var contentBuf bytes.Buffer
	if err := tmpl.Execute(&contentBuf, email.Data); err != nil {
		return err
	}

	// Wrap in base template
	var htmlBuf bytes.Buffer
	if err := s.baseTemplate.Execute(&htmlBuf, map[string]interface{}{
		"Content": template.HTML(contentBuf.String()),
	}); err != nil {
		return err
	}

	return s.client.Send(ctx, &EmailMessage{
		To:          email.To,
		ToName:      email.ToName,
		Subject:     email.Subject,
		HTMLContent: htmlBuf.String(),
	})
}

// Queue adds an email to the async send queue
func (s *Service) Queue(to, toName, templateName, subject string, data interface{}) {
	select {
	case s.queue <- &QueuedEmail{
		To:           to,
		ToName:       toName,
		Subject:      subject,
		TemplateName: templateName,
		Data:         data,
	}:
	default:
		log.Warn().Str("to", to).Msg("Email queue full, dropping email")
	}
}

// SendSync sends an email synchronously (blocking)
func (s *Service) SendSync(ctx context.Context, to, toName, templateName, subject string, data interface{}) error {
	return s.send(ctx, &QueuedEmail{
		To:           to,
		ToName:       toName,
		Subject:      subject,
		TemplateName: templateName,
		Data:         data,
	})
}

// Close stops the email worker
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}

// --- Convenience methods for specific emails ---

// SendWelcome sends welcome email to new user
func (s *Service) SendWelcome(to, toName, userName, role, dashboardURL string) {
	s.Queue(to, toName, "welcome", "Welcome to MX70!", map[string]string{
		"UserName":     userName,
		"Role":         role,
		"DashboardURL": dashboardURL,
	})
}

// SendGigClaimed notifies the business that a clipper took their gig
func (s *Service) SendGigClaimed(to, toName, gigTitle, budget, gigURL string) {
	s.Queue(to, toName, "gig_claimed", "🎬 Your gig was claimed", map[string]string{
		"GigTitle": gigTitle,
		"Budget":   budget,
		"GigURL":   gigURL,
	})
}

// SendSubmissionApproved notifies the clipper their work was approved
func (s *Service) SendSubmissionApproved(to, toName, gigTitle, bonus, submissionURL string) {
	s.Queue(to, toName, "submission_approved", "✅ Your submission was approved", map[string]string{
		"GigTitle":      gigTitle,
		"Bonus":         bonus,
		"SubmissionURL": submissionURL,
	})
}

// SendCreditAwarded notifies a user about a new platform credit
func (s *Service) SendCreditAwarded(to, toName, amount, reason, expiry, dashboardURL string) {
	s.Queue(to, toName, "credit_awarded", "💰 Credit earned", map[string]string{
		"Amount":       amount,
		"Reason":       reason,
		"Expiry":       expiry,
		"DashboardURL": dashboardURL,
	})
}
