package bonus

// CombinationPolicy selects how the engagement and outcome components are
// combined into the raw bonus.
type CombinationPolicy string

const (
	// PolicyStraightSum adds views, likes and outcomes components directly.
	// This is the platform default.
	PolicyStraightSum CombinationPolicy = "straight_sum"

	// PolicyWeightedEngagement scales (views + likes) by EngagementWeight
	// before adding the outcomes component.
	PolicyWeightedEngagement CombinationPolicy = "weighted_engagement"
)

// Default tier thresholds and rates. Views and likes are each paid on a
// three-band schedule; a count equal to a threshold falls into the higher band.
const (
	DefaultMinViews = 300
	DefaultMinLikes = 30

	DefaultMidViewThreshold  = 500
	DefaultHighViewThreshold = 2000
	DefaultLowViewRate       = 0.005
	DefaultMidViewRate       = 0.01
	DefaultHighViewRate      = 0.015

	DefaultMidLikeThreshold  = 50
	DefaultHighLikeThreshold = 200
	DefaultLowLikeRate       = 0.03
	DefaultMidLikeRate       = 0.05
	DefaultHighLikeRate      = 0.07

	DefaultOutcomeRate   = 0.10
	DefaultOutcomeWeight = 0.30

	DefaultEngagementWeight = 0.70

	DefaultCap = 75.0
)

// Config holds the full rate schedule for the bonus engine. It is immutable
// after construction; the engine never reads global state.
type Config struct {
	MinViews int
	MinLikes int

	MidViewThreshold  int
	HighViewThreshold int
	LowViewRate       float64
	MidViewRate       float64
	HighViewRate      float64

	MidLikeThreshold  int
	HighLikeThreshold int
	LowLikeRate       float64
	MidLikeRate       float64
	HighLikeRate      float64

	OutcomeRate   float64
	OutcomeWeight float64

	Policy           CombinationPolicy
	EngagementWeight float64

	Cap float64
}

// DefaultConfig returns the production rate schedule with the straight-sum
// combination policy.
func DefaultConfig() Config {
	return Config{
		MinViews: DefaultMinViews,
		MinLikes: DefaultMinLikes,

		MidViewThreshold:  DefaultMidViewThreshold,
		HighViewThreshold: DefaultHighViewThreshold,
		LowViewRate:       DefaultLowViewRate,
		MidViewRate:       DefaultMidViewRate,
		HighViewRate:      DefaultHighViewRate,

		MidLikeThreshold:  DefaultMidLikeThreshold,
		HighLikeThreshold: DefaultHighLikeThreshold,
		LowLikeRate:       DefaultLowLikeRate,
		MidLikeRate:       DefaultMidLikeRate,
		HighLikeRate:      DefaultHighLikeRate,

		OutcomeRate:   DefaultOutcomeRate,
		OutcomeWeight: DefaultOutcomeWeight,

		Policy:           PolicyStraightSum,
		EngagementWeight: DefaultEngagementWeight,

		Cap: DefaultCap,
	}
}
