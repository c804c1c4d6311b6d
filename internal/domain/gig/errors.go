package gig

import (
	"errors"
	"fmt"
)

var (
	ErrGigNotFound            = errors.New("gig not found")
	ErrNotGigOwner            = errors.New("you can only edit your own gigs")
	ErrGigNotPending          = errors.New("gig is not open for claiming")
	ErrOnlyBusinessesCanPost  = errors.New("only businesses can post gigs")
	ErrCannotCancelClaimedGig = errors.New("cannot cancel a claimed gig")
)

// BudgetError is returned when the gig budget is below the platform minimum
type BudgetError struct {
	Budget  float64
	Minimum float64
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("budget %.2f is below the minimum of %.2f", e.Budget, e.Minimum)
}

// IsBudgetError reports whether err is a budget rejection
func IsBudgetError(err error) bool {
	var be *BudgetError
	return errors.As(err, &be)
}
