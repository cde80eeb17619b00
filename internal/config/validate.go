package config

import (
	"fmt"
	"math"
)

// Validate checks that thresholds are ordered and every knob is in range.
// All problems are reported through ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.PollIntervalMS <= 0 {
		return invalid("poll_interval_ms must be positive, got %d", c.PollIntervalMS)
	}
	if c.FeedbackDurationMS < 0 {
		return invalid("feedback_duration_ms must not be negative, got %d", c.FeedbackDurationMS)
	}
	if c.FeedSize <= 0 {
		return invalid("feed_size must be positive, got %d", c.FeedSize)
	}
	if !descending(c.PositionDominating, c.PositionAhead, c.PositionEven) {
		return invalid("position thresholds must satisfy dominating > ahead > even")
	}
	if c.PositionEven < 0 || c.PositionBehind > -c.PositionEven {
		return invalid("position_behind must be at most -position_even")
	}
	if !descending(c.UrgencyRelaxed, c.UrgencyAlert, c.UrgencyHigh, c.UrgencyCritical, c.UrgencyPremove) || c.UrgencyPremove < 0 {
		return invalid("urgency thresholds must be non-negative and strictly descending")
	}
	if c.BudgetBaseMoves <= 0 || c.BudgetMinMoves < 1 {
		return invalid("budget_base_moves must be positive and budget_min_moves at least 1")
	}
	if !(c.BudgetSafetyFactor > 0 && c.BudgetSafetyFactor <= 1) {
		return invalid("budget_safety_factor must be in (0, 1], got %v", c.BudgetSafetyFactor)
	}
	if c.BudgetScrambleThreshold < 0 || !(c.BudgetScrambleSeconds > 0) {
		return invalid("budget scramble threshold must be non-negative and scramble seconds positive")
	}
	if !ascending(0, c.RatingPremove, c.RatingExcellent, c.RatingGood, c.RatingSlow, c.RatingCostly) {
		return invalid("rating bounds must be positive and strictly ascending")
	}
	if c.MomentumWindow <= 0 {
		return invalid("momentum_window must be positive, got %d", c.MomentumWindow)
	}
	if c.MomentumGaining > c.MomentumLosing {
		return invalid("momentum_gaining must not exceed momentum_losing")
	}
	if !(c.TurnEpsilon >= 0) {
		return invalid("turn_epsilon must not be negative")
	}
	if !(c.BoundaryContraction > 0 && c.BoundaryContraction < 1) {
		return invalid("boundary_contraction must be in (0, 1), got %v", c.BoundaryContraction)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func descending(vals ...float64) bool {
	for i := 1; i < len(vals); i++ {
		if math.IsNaN(vals[i]) || !(vals[i-1] > vals[i]) {
			return false
		}
	}
	return true
}

func ascending(vals ...float64) bool {
	for i := 1; i < len(vals); i++ {
		if math.IsNaN(vals[i]) || !(vals[i-1] < vals[i]) {
			return false
		}
	}
	return true
}
