package payment

import (
	"context"
	"fmt"
	"math"
	"time"
)

// MockProvider simulates a payment processor. Used until a real processor
// account is provisioned; every call succeeds and nothing moves money.
type MockProvider struct{}

// NewMockProvider creates the mock provider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return ProviderMock
}

func (p *MockProvider) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	id := fmt.Sprintf("pi_mock_%d", time.Now().UnixNano())
	return &Intent{
		ID:           id,
		AmountCents:  int64(math.Round(req.Amount * 100)),
		Currency:     req.Currency,
		Status:       "requires_payment_method",
		ClientSecret: id + "_secret",
	}, nil
}

func (p *MockProvider) CreatePayout(ctx context.Context, req PayoutRequest) (*Payout, error) {
	return &Payout{
		ID:          fmt.Sprintf("po_mock_%d", time.Now().UnixNano()),
		AmountCents: int64(math.Round(req.Amount * 100)),
		Currency:    req.Currency,
		Status:      "paid",
	}, nil
}

func (p *MockProvider) VerifyWebhook(payload []byte, signature string) bool {
	return true
}

func (p *MockProvider) ParseWebhook(payload []byte) (*WebhookEvent, error) {
	return &WebhookEvent{
		Provider:  ProviderMock,
		EventType: "payment.succeeded",
		Status:    "completed",
		RawData:   string(payload),
	}, nil
}
