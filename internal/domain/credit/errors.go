package credit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSource is returned for an unknown credit source.
	ErrInvalidSource = errors.New("invalid credit source")

	// ErrInvalidAmount is returned when amount is <= 0
	ErrInvalidAmount = errors.New("invalid amount: must be greater than 0")

	// ErrAlreadyAwarded is returned when the ledger already holds a credit
	// for the same source reference. The award service returns the existing
	// credit alongside it so callers can repair derived state.
	ErrAlreadyAwarded = errors.New("credit already awarded for this source")

	ErrInternal = errors.New("internal error")
)

// CapExceededError is the recoverable business rejection returned when a
// self-promo award would land on a user already at the trailing-window cap.
// Callers render it as "limit reached", not as a fault.
type CapExceededError struct {
	AttemptedAmount    float64
	CurrentWindowTotal float64
	Cap                float64
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("monthly self-promo credit cap reached: %.2f of %.2f already issued in trailing window",
		e.CurrentWindowTotal, e.Cap)
}

// IsCapExceeded reports whether err is a cap rejection and returns it typed.
func IsCapExceeded(err error) (*CapExceededError, bool) {
	var capErr *CapExceededError
	if errors.As(err, &capErr) {
		return capErr, true
	}
	return nil, false
}
