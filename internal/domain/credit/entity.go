package credit

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies what earned a credit.
type Source string

const (
	SourceGigPost   Source = "gig_post"
	SourceSelfPromo Source = "self_promo"
)

// IsValid reports whether s is a known credit source.
func (s Source) IsValid() bool {
	return s == SourceGigPost || s == SourceSelfPromo
}

// Credit is one accrual row. Rows are immutable after insertion; only their
// active/expired interpretation changes as the clock passes Expiry.
type Credit struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID uuid.UUID `db:"user_id" json:"user_id"`
	Amount float64   `db:"amount" json:"amount"`
	Source Source    `db:"source" json:"source"`

	// SourceRef links the credit to the record that earned it (the self-promo
	// post ID). Unique in the ledger, so one such record can never accrue
	// twice even across retries.
	SourceRef *uuid.UUID `db:"source_ref" json:"source_ref,omitempty"`

	Expiry    time.Time `db:"expiry" json:"expiry"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ExpiredAt reports whether the credit is expired as of the given instant.
// A credit whose expiry equals the instant counts as expired.
func (c *Credit) ExpiredAt(asOf time.Time) bool {
	return !c.Expiry.After(asOf)
}

// Balance partitions a user's credits into active and expired as of one instant.
type Balance struct {
	ActiveTotal    float64  `json:"active_total"`
	ExpiredTotal   float64  `json:"expired_total"`
	ActiveCredits  []Credit `json:"active_credits"`
	ExpiredCredits []Credit `json:"expired_credits"`
}

// Config holds the award amounts and capping policy for the ledger.
// Gig-post credits are deliberately uncapped while self-promo credits carry a
// trailing 30-day cap; the asymmetry is a product decision carried over from
// the pricing model, expressed here as an explicit per-source flag.
type Config struct {
	GigPostAmount   float64
	SelfPromoAmount float64

	// MonthlyCap bounds self-promo credits issued in any trailing CapWindow.
	MonthlyCap float64
	CapWindow  time.Duration

	// ExpiryMonths is added to the award instant to produce Credit.Expiry.
	ExpiryMonths int

	// CappedSources marks which sources the monthly cap applies to.
	CappedSources map[Source]bool
}

// DefaultConfig returns the production ledger policy: $5 per gig post
// (uncapped), $10 per qualifying self-promo capped at $15 per trailing
// 30 days, credits expiring six months after award.
func DefaultConfig() Config {
	return Config{
		GigPostAmount:   5.0,
		SelfPromoAmount: 10.0,
		MonthlyCap:      15.0,
		CapWindow:       30 * 24 * time.Hour,
		ExpiryMonths:    6,
		CappedSources: map[Source]bool{
			SourceSelfPromo: true,
		},
	}
}
