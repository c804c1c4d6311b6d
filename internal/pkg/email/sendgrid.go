package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendGridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridConfig holds SendGrid configuration
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridClient sends emails through the SendGrid v3 mail API
type SendGridClient struct {
	config     SendGridConfig
	httpClient *http.Client
}

// NewSendGridClient creates a new SendGrid email client
func NewSendGridClient(config SendGridConfig) *SendGridClient {
	return &SendGridClient{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// EmailMessage represents an email to send
type EmailMessage struct {
	To          string
	ToName      string
	Subject     string
	HTMLContent string
	TextContent string
}

type sendGridRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send delivers a single email. SendGrid requires text/plain before
// text/html when both parts are present.
func (c *SendGridClient) Send(ctx context.Context, msg *EmailMessage) error {
	request := sendGridRequest{
		Personalizations: []sendGridPersonalization{
			{To: []sendGridAddress{{Email: msg.To, Name: msg.ToName}}},
		},
		From: sendGridAddress{
			Email: c.config.FromEmail,
			Name:  c.config.FromName,
		},
		Subject: msg.Subject,
	}

	if msg.TextContent != "" {
		request.Content = append(request.Content, sendGridContent{
			Type:  "text/plain",
			Value: msg.TextContent,
		})
	}
	if msg.HTMLContent != "" {
		request.Content = append(request.Content, sendGridContent{
			Type:  "text/html",
			Value: msg.HTMLContent,
		})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendGridEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
