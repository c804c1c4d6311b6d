package payment

import (
	"context"
	"fmt"
)

// Provider constants
const (
	ProviderMock   = "mock"
	ProviderStripe = "stripe"
)

// Provider defines the interface all payment providers implement.
// This abstraction allows switching between the mock provider and a real
// processor without touching the payment domain.
type Provider interface {
	// CreateIntent initiates a charge and returns the intent the client
	// confirms (client secret flow)
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)

	// CreatePayout sends money to a connected account
	CreatePayout(ctx context.Context, req PayoutRequest) (*Payout, error)

	// VerifyWebhook validates webhook signature and returns whether it's authentic
	VerifyWebhook(payload []byte, signature string) bool

	// ParseWebhook parses provider-specific webhook data into standardized format
	ParseWebhook(payload []byte) (*WebhookEvent, error)

	// Name returns the provider identifier
	Name() string
}

// IntentRequest is a standardized charge creation request
type IntentRequest struct {
	Amount      float64 // Total amount to charge, in currency units
	Currency    string
	Description string
	Metadata    map[string]string
}

// Intent is a standardized charge creation response
type Intent struct {
	ID           string
	AmountCents  int64
	Currency     string
	Status       string
	ClientSecret string
}

// PayoutRequest is a standardized payout request
type PayoutRequest struct {
	Amount      float64
	Currency    string
	Destination string // connected account identifier
	Metadata    map[string]string
}

// Payout is a standardized payout response
type Payout struct {
	ID          string
	AmountCents int64
	Currency    string
	Status      string
}

// WebhookEvent is a standardized webhook event
type WebhookEvent struct {
	Provider   string
	EventType  string // e.g. "payment.succeeded", "payout.paid"
	ExternalID string
	Amount     float64
	Status     string // standardized: "completed", "failed", "pending"
	RawData    string
}

// Factory creates payment provider instances
type Factory struct {
	providers map[string]Provider
}

// NewFactory creates a new provider factory
func NewFactory() *Factory {
	return &Factory{providers: make(map[string]Provider)}
}

// Register adds a payment provider to the factory
func (f *Factory) Register(name string, provider Provider) {
	f.providers[name] = provider
}

// Get retrieves a payment provider by name
func (f *Factory) Get(name string) (Provider, error) {
	provider, exists := f.providers[name]
	if !exists {
		return nil, fmt.Errorf("payment provider '%s' not found", name)
	}
	return provider, nil
}
