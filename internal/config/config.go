// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Keys are flat and match the koanf tags, so PACER_RATING_GOOD maps to rating_good.
// - New() returns the defaults every other layer overrides.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// MetricsAddr enables the operator endpoint when non-empty, e.g. "127.0.0.1:9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// PollIntervalMS is the clock sampling period.
	PollIntervalMS int `koanf:"poll_interval_ms"`

	// FeedbackDurationMS is how long the last move's feedback stays visible.
	FeedbackDurationMS int `koanf:"feedback_duration_ms"`

	// FeedSize bounds the frame feed between the poller and the display.
	FeedSize int `koanf:"feed_size"`

	// Position thresholds on the signed delta in seconds.
	PositionDominating float64 `koanf:"position_dominating"`
	PositionAhead      float64 `koanf:"position_ahead"`
	PositionEven       float64 `koanf:"position_even"`
	PositionBehind     float64 `koanf:"position_behind"`

	// Urgency thresholds on the user's remaining seconds.
	UrgencyRelaxed  float64 `koanf:"urgency_relaxed"`
	UrgencyAlert    float64 `koanf:"urgency_alert"`
	UrgencyHigh     float64 `koanf:"urgency_high"`
	UrgencyCritical float64 `koanf:"urgency_critical"`
	UrgencyPremove  float64 `koanf:"urgency_premove"`

	// Budget model.
	BudgetBaseMoves         float64 `koanf:"budget_base_moves"`
	BudgetMinMoves          float64 `koanf:"budget_min_moves"`
	BudgetSafetyFactor      float64 `koanf:"budget_safety_factor"`
	BudgetScrambleThreshold float64 `koanf:"budget_scramble_threshold"`
	BudgetScrambleSeconds   float64 `koanf:"budget_scramble_seconds"`

	// Rating bounds on time spent divided by budget.
	RatingPremove   float64 `koanf:"rating_premove"`
	RatingExcellent float64 `koanf:"rating_excellent"`
	RatingGood      float64 `koanf:"rating_good"`
	RatingSlow      float64 `koanf:"rating_slow"`
	RatingCostly    float64 `koanf:"rating_costly"`

	// Momentum window and thresholds on the mean ratio.
	MomentumWindow  int     `koanf:"momentum_window"`
	MomentumGaining float64 `koanf:"momentum_gaining"`
	MomentumLosing  float64 `koanf:"momentum_losing"`

	// TurnEpsilon is the minimum clock decrease that counts as ticking.
	TurnEpsilon float64 `koanf:"turn_epsilon"`

	// BoundaryContraction is the move-list shrink ratio that signals a new game.
	BoundaryContraction float64 `koanf:"boundary_contraction"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		MetricsAddr:        "",
		PollIntervalMS:     50,
		FeedbackDurationMS: 2500,
		FeedSize:           64,

		PositionDominating: 5,
		PositionAhead:      2,
		PositionEven:       1,
		PositionBehind:     -2.5,

		UrgencyRelaxed:  25,
		UrgencyAlert:    15,
		UrgencyHigh:     8,
		UrgencyCritical: 4,
		UrgencyPremove:  2,

		BudgetBaseMoves:         35,
		BudgetMinMoves:          8,
		BudgetSafetyFactor:      0.85,
		BudgetScrambleThreshold: 10,
		BudgetScrambleSeconds:   0.5,

		RatingPremove:   0.15,
		RatingExcellent: 0.5,
		RatingGood:      1.0,
		RatingSlow:      1.5,
		RatingCostly:    2.5,

		MomentumWindow:  5,
		MomentumGaining: 0.5,
		MomentumLosing:  1.4,

		TurnEpsilon:         0.01,
		BoundaryContraction: 0.3,
	}
}

// PollInterval returns the sampling period as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// FeedbackDuration returns the feedback freshness window as a duration.
func (c *Config) FeedbackDuration() time.Duration {
	return time.Duration(c.FeedbackDurationMS) * time.Millisecond
}
