// Package budget estimates a fair per-move time allowance from remaining time.
package budget

import (
	"math"

	"github.com/okian/pacer/internal/domain/types"
)

// Default budget configuration constants.
const (
	defaultBaseMoves         = 35.0
	defaultMinMoves          = 8.0
	defaultSafetyFactor      = 0.85
	defaultScrambleThreshold = 10.0
	defaultScrambleBudget    = 0.5
	secondsPerMinute         = 60.0
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithBaseMoves sets the moves-remaining estimate for one minute on the clock.
func WithBaseMoves(n float64) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.baseMoves = n
		}
	}
}

// WithMinMoves sets the floor on the moves-remaining estimate.
func WithMinMoves(n float64) Option {
	return func(c *Calculator) {
		if n >= 1 {
			c.minMoves = n
		}
	}
}

// WithSafetyFactor sets the fraction of the even split actually granted.
func WithSafetyFactor(f float64) Option {
	return func(c *Calculator) {
		if f > 0 && f <= 1 {
			c.safetyFactor = f
		}
	}
}

// WithScramble sets the low-time threshold and the flat budget used at or below it.
func WithScramble(threshold, flat float64) Option {
	return func(c *Calculator) {
		if threshold >= 0 && flat > 0 {
			c.scrambleThreshold = threshold
			c.scrambleBudget = flat
		}
	}
}

// Calculator computes per-move budgets. It is stateless after construction.
type Calculator struct {
	baseMoves         float64
	minMoves          float64
	safetyFactor      float64
	scrambleThreshold float64
	scrambleBudget    float64
}

// NewCalculator creates a Calculator with the bullet defaults.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		baseMoves:         defaultBaseMoves,
		minMoves:          defaultMinMoves,
		safetyFactor:      defaultSafetyFactor,
		scrambleThreshold: defaultScrambleThreshold,
		scrambleBudget:    defaultScrambleBudget,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Budget returns the allowance in seconds for a move started with remaining
// seconds on the clock. The result is always strictly positive.
func (c *Calculator) Budget(remaining float64) float64 {
	if c.InScramble(remaining) {
		return c.scrambleBudget
	}
	b := remaining / c.EstimatedMoves(remaining) * c.safetyFactor
	if !(b > 0) || math.IsInf(b, 0) {
		return c.scrambleBudget
	}
	return b
}

// EstimatedMoves returns the square-root decay estimate of moves left, never
// below the configured floor.
func (c *Calculator) EstimatedMoves(remaining float64) float64 {
	if !(remaining > 0) {
		return c.minMoves
	}
	est := math.Round(c.baseMoves * math.Sqrt(remaining/secondsPerMinute))
	return math.Max(c.minMoves, est)
}

// InScramble reports whether remaining is in the flat-budget regime. NaN counts.
func (c *Calculator) InScramble(remaining float64) bool {
	return !(remaining > c.scrambleThreshold)
}

// ScrambleBudget returns the flat allowance.
func (c *Calculator) ScrambleBudget() float64 {
	return c.scrambleBudget
}

// Curve evaluates the budget at each remaining time, in the given order.
func (c *Calculator) Curve(points []float64) []types.BudgetRow {
	rows := make([]types.BudgetRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, types.BudgetRow{
			Remaining:      p,
			EstimatedMoves: c.EstimatedMoves(p),
			Budget:         c.Budget(p),
			Scramble:       c.InScramble(p),
		})
	}
	return rows
}

// Steps returns from, from-step, ... down to (and including) to.
func Steps(from, to, step float64) []float64 {
	if !(step > 0) || from < to {
		return nil
	}
	var out []float64
	for v := from; v >= to-1e-9; v -= step {
		out = append(out, math.Round(v*1000)/1000)
	}
	return out
}
