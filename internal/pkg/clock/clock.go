package clock

import "time"

// Clock abstracts wall-clock reads so time-window logic stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// New returns a Clock backed by time.Now.
func New() Clock {
	return realClock{}
}

// Fixed is a Clock pinned to a settable instant. Not safe for concurrent Set.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.T = f.T.Add(d)
}
