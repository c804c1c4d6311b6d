package bonus

import "errors"

var (
	// ErrNegativeMetric is returned when any metric input is negative.
	ErrNegativeMetric = errors.New("metric must be non-negative")
)
