package submission

import "errors"

var (
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrGigNotFound         = errors.New("gig not found")
	ErrGigNotPending       = errors.New("gig is not open for claiming")
	ErrAlreadyClaimed      = errors.New("you already have a submission for this gig")
	ErrNotSubmissionOwner  = errors.New("you do not own this submission")
	ErrNotGigOwner         = errors.New("you do not own the gig for this submission")
	ErrNotCertified        = errors.New("basic certification required to claim gigs")
	ErrAlreadyApproved     = errors.New("submission is already approved")
	ErrVideoNotSubmitted   = errors.New("submission has no video yet")
	ErrOnlyClippersCanWork = errors.New("only clippers can claim gigs")
)
