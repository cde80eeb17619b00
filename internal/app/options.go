package app

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/pacer/internal/domain/boundary"
	"github.com/okian/pacer/internal/domain/budget"
	"github.com/okian/pacer/internal/domain/classify"
	"github.com/okian/pacer/internal/domain/momentum"
	"github.com/okian/pacer/internal/domain/rating"
	"github.com/okian/pacer/pkg/logger"
)

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithClassifier sets the position and urgency classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(s *Session) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithBudgetCalculator sets the per-move budget model.
func WithBudgetCalculator(c *budget.Calculator) Option {
	return func(s *Session) {
		if c != nil {
			s.budget = c
		}
	}
}

// WithRater sets the move rating table.
func WithRater(r *rating.Rater) Option {
	return func(s *Session) {
		if r != nil {
			s.rater = r
		}
	}
}

// WithMomentumTracker sets the rolling momentum window.
func WithMomentumTracker(t *momentum.Tracker) Option {
	return func(s *Session) {
		if t != nil {
			s.momentum = t
		}
	}
}

// WithTurnEpsilon sets the minimum clock decrease that counts as ticking.
func WithTurnEpsilon(eps float64) Option {
	return func(s *Session) {
		if eps >= 0 {
			s.epsilon = eps
		}
	}
}

// WithBoundaryDetector sets how a new game is recognised.
func WithBoundaryDetector(d boundary.Detector) Option {
	return func(s *Session) {
		if d != nil {
			s.boundary = d
		}
	}
}

// WithFeedbackDuration sets how long the last move stays in frames.
func WithFeedbackDuration(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.feedbackDuration = d
		}
	}
}

// WithClock sets the clock used for readings without a timestamp.
func WithClock(c clockwork.Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}
