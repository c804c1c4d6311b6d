package payment

import "errors"

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotGigOwner        = errors.New("you can only pay out your own gigs")
	ErrNotApproved        = errors.New("submission must be approved before payout")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
)
