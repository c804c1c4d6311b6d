package money

import "math"

// RoundCents rounds a dollar amount to two decimal places, half away from zero.
// All user-visible monetary values (bonuses, credits, payouts) pass through here
// before being stored or returned.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
