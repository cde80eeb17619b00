// Package rating classifies a move by comparing time spent to its budget.
package rating

import (
	"math"

	"github.com/okian/pacer/internal/domain/model"
)

// DegenerateRatio stands in for an unbounded ratio when the inputs cannot be
// divided meaningfully (non-positive budget, negative or NaN time spent).
const DegenerateRatio = 999.0

// goodRatioCeiling separates on-budget moves from overspends for feedback.
const goodRatioCeiling = 1.0

// Bounds are inclusive upper ratio limits; anything above Costly is CRITICAL.
type Bounds struct {
	Premove   float64
	Excellent float64
	Good      float64
	Slow      float64
	Costly    float64
}

// DefaultBounds returns the tuned bullet rating table.
func DefaultBounds() Bounds {
	return Bounds{
		Premove:   0.15,
		Excellent: 0.5,
		Good:      1.0,
		Slow:      1.5,
		Costly:    2.5,
	}
}

// Option applies a configuration option to the Rater.
type Option func(*Rater)

// WithBounds replaces the rating table.
func WithBounds(b Bounds) Option {
	return func(r *Rater) {
		r.bounds = b
	}
}

// Result is the MoveRecord-shaped outcome of rating one move.
type Result struct {
	Rating    model.Rating
	Ratio     float64
	TimeSpent float64
	Budget    float64
}

// IsGood reports whether the move stayed within its budget.
func (r Result) IsGood() bool {
	return r.Ratio <= goodRatioCeiling
}

// Overspend is how many seconds beyond the budget the move took. Negative
// values mean time was banked.
func (r Result) Overspend() float64 {
	return r.TimeSpent - r.Budget
}

// Rater applies a rating table. It is stateless after construction.
type Rater struct {
	bounds Bounds
}

// NewRater creates a Rater with the default table.
func NewRater(opts ...Option) *Rater {
	r := &Rater{bounds: DefaultBounds()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rate classifies a move. It is total: every input yields a rating, and
// degenerate inputs yield CRITICAL.
func (r *Rater) Rate(timeSpent, budget float64) Result {
	ratio := DegenerateRatio
	if budget > 0 && timeSpent >= 0 {
		ratio = timeSpent / budget
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			ratio = DegenerateRatio
		}
	}
	return Result{
		Rating:    r.Classify(ratio),
		Ratio:     ratio,
		TimeSpent: timeSpent,
		Budget:    budget,
	}
}

// Classify maps a ratio to a rating; first inclusive bound wins.
func (r *Rater) Classify(ratio float64) model.Rating {
	b := r.bounds
	switch {
	case ratio <= b.Premove:
		return model.RatingPremove
	case ratio <= b.Excellent:
		return model.RatingExcellent
	case ratio <= b.Good:
		return model.RatingGood
	case ratio <= b.Slow:
		return model.RatingSlow
	case ratio <= b.Costly:
		return model.RatingCostly
	default:
		return model.RatingCritical
	}
}
