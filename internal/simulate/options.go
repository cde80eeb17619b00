package simulate

import (
	"time"

	"github.com/okian/pacer/internal/domain/budget"
	"github.com/okian/pacer/pkg/logger"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithMoves sets the number of full moves (one user and one opponent move) per game.
func WithMoves(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.moves = n
		}
	}
}

// WithGames sets how many games are played back to back.
func WithGames(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.games = n
		}
	}
}

// WithBaseTime sets the starting time on both clocks.
func WithBaseTime(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.base = d
		}
	}
}

// WithInterval sets the sampling interval.
func WithInterval(d time.Duration) Option {
	return func(g *Generator) {
		if d >= time.Millisecond {
			g.interval = d
		}
	}
}

// WithSeed fixes the random source so the same options yield the same script.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithThinkRange sets the think time as a range of multiples of the budget.
func WithThinkRange(low, high float64) Option {
	return func(g *Generator) {
		if low > 0 && high >= low {
			g.thinkLow, g.thinkHigh = low, high
		}
	}
}

// WithPremoveChance sets the probability that a move is played instantly.
func WithPremoveChance(p float64) Option {
	return func(g *Generator) {
		if p >= 0 && p <= 1 {
			g.premove = p
		}
	}
}

// WithBudgetCalculator sets the model both players pace themselves by.
func WithBudgetCalculator(c *budget.Calculator) Option {
	return func(g *Generator) {
		if c != nil {
			g.budget = c
		}
	}
}

// WithLogger sets a custom logger for the generator.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
