package bonus

import (
	"fmt"

	"github.com/mx70/mx70-api/internal/pkg/money"
)

// Metrics is the engagement input for a single submission.
type Metrics struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Outcomes int `json:"outcomes"`
}

// Breakdown is the diagnostic view of one calculation. It is what the preview
// endpoint returns; committing a bonus only stores FinalBonus.
type Breakdown struct {
	ViewsBonus     float64 `json:"views_bonus"`
	ViewsRate      string  `json:"views_rate,omitempty"`
	LikesBonus     float64 `json:"likes_bonus"`
	LikesRate      string  `json:"likes_rate,omitempty"`
	OutcomesBonus  float64 `json:"outcomes_bonus"`
	OutcomesRate   string  `json:"outcomes_rate,omitempty"`
	MeetsMinimum   bool    `json:"meets_minimum"`
	TotalBeforeCap float64 `json:"total_before_cap"`
	CapApplied     bool    `json:"cap_applied"`
	FinalBonus     float64 `json:"final_bonus"`
}

// Engine converts engagement metrics into a capped dollar bonus. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates a bonus engine with the given rate schedule.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Calculate returns the committed bonus value for the given metrics.
// The bonus is always derived in full from the current metrics, never
// adjusted incrementally.
func (e *Engine) Calculate(m Metrics) (float64, error) {
	b, err := e.Preview(m)
	if err != nil {
		return 0, err
	}
	return b.FinalBonus, nil
}

// Preview computes the full breakdown without touching any stored state.
// Identical inputs always produce identical breakdowns.
func (e *Engine) Preview(m Metrics) (Breakdown, error) {
	if err := validateMetrics(m); err != nil {
		return Breakdown{}, err
	}

	var b Breakdown

	// Both minimums must be met jointly; otherwise the bonus is exactly zero
	// regardless of outcomes.
	if m.Views < e.cfg.MinViews || m.Likes < e.cfg.MinLikes {
		return b, nil
	}
	b.MeetsMinimum = true

	viewRate, viewLabel := e.viewBand(m.Views)
	b.ViewsBonus = float64(m.Views) * viewRate
	b.ViewsRate = viewLabel

	likeRate, likeLabel := e.likeBand(m.Likes)
	b.LikesBonus = float64(m.Likes) * likeRate
	b.LikesRate = likeLabel

	b.OutcomesBonus = float64(m.Outcomes) * e.cfg.OutcomeRate * e.cfg.OutcomeWeight
	b.OutcomesRate = fmt.Sprintf("$%g/outcome (%.0f%% weight)", e.cfg.OutcomeRate, e.cfg.OutcomeWeight*100)

	switch e.cfg.Policy {
	case PolicyWeightedEngagement:
		b.TotalBeforeCap = (b.ViewsBonus+b.LikesBonus)*e.cfg.EngagementWeight + b.OutcomesBonus
	default:
		b.TotalBeforeCap = b.ViewsBonus + b.LikesBonus + b.OutcomesBonus
	}

	if b.TotalBeforeCap > e.cfg.Cap {
		b.CapApplied = true
		b.FinalBonus = e.cfg.Cap
	} else {
		b.FinalBonus = money.RoundCents(b.TotalBeforeCap)
	}

	return b, nil
}

func (e *Engine) viewBand(views int) (rate float64, label string) {
	switch {
	case views < e.cfg.MidViewThreshold:
		return e.cfg.LowViewRate, fmt.Sprintf("$%g/view", e.cfg.LowViewRate)
	case views < e.cfg.HighViewThreshold:
		return e.cfg.MidViewRate, fmt.Sprintf("$%g/view", e.cfg.MidViewRate)
	default:
		return e.cfg.HighViewRate, fmt.Sprintf("$%g/view", e.cfg.HighViewRate)
	}
}

func (e *Engine) likeBand(likes int) (rate float64, label string) {
	switch {
	case likes < e.cfg.MidLikeThreshold:
		return e.cfg.LowLikeRate, fmt.Sprintf("$%g/like", e.cfg.LowLikeRate)
	case likes < e.cfg.HighLikeThreshold:
		return e.cfg.MidLikeRate, fmt.Sprintf("$%g/like", e.cfg.MidLikeRate)
	default:
		return e.cfg.HighLikeRate, fmt.Sprintf("$%g/like", e.cfg.HighLikeRate)
	}
}

func validateMetrics(m Metrics) error {
	if m.Views < 0 {
		return fmt.Errorf("%w: views %d", ErrNegativeMetric, m.Views)
	}
	if m.Likes < 0 {
		return fmt.Errorf("%w: likes %d", ErrNegativeMetric, m.Likes)
	}
	if m.Outcomes < 0 {
		return fmt.Errorf("%w: outcomes %d", ErrNegativeMetric, m.Outcomes)
	}
	return nil
}
