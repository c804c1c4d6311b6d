package payment

// CreateDepositRequest for POST /payments/deposit
type CreateDepositRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=500"`
}

// DepositResponse describes the created escrow intent
type DepositResponse struct {
	ID          string  `json:"id"`
	BaseAmount  float64 `json:"base_amount"`
	PlatformFee float64 `json:"platform_fee"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// PayoutResponse describes a processed clipper payout
type PayoutResponse struct {
	PayoutID     string  `json:"payout_id"`
	BasePay      float64 `json:"base_pay"`
	Bonus        float64 `json:"bonus"`
	PlatformFee  float64 `json:"platform_fee"`
	PayoutAmount float64 `json:"amount"`
	Status       string  `json:"status"`
}
