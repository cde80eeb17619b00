// Package simulate generates synthetic bullet games as clock scripts.
package simulate

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/okian/pacer/internal/adapters/reader"
	"github.com/okian/pacer/internal/domain/budget"
	"github.com/okian/pacer/pkg/logger"
)

const (
	defaultMoves     = 30
	defaultGames     = 1
	defaultBase      = time.Minute
	defaultInterval  = 50 * time.Millisecond
	defaultThinkLow  = 0.3
	defaultThinkHigh = 1.7
	defaultPremove   = 0.1

	// idle ticks shown before the first move and after the last one
	leadInTicks  = 10
	leadOutTicks = 20
)

// Generator builds scripts in which both players pace themselves around the
// budget for their remaining time, with some jitter and the odd premove.
type Generator struct {
	moves     int
	games     int
	base      time.Duration
	interval  time.Duration
	seed      uint64
	thinkLow  float64
	thinkHigh float64
	premove   float64
	budget    *budget.Calculator
	logger    logger.Logger
}

// New creates a generator for one 30-move game at 1+0.
func New(opts ...Option) *Generator {
	g := &Generator{
		moves:     defaultMoves,
		games:     defaultGames,
		base:      defaultBase,
		interval:  defaultInterval,
		seed:      1,
		thinkLow:  defaultThinkLow,
		thinkHigh: defaultThinkHigh,
		premove:   defaultPremove,
		budget:    budget.NewCalculator(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// game is the running state of one simulated game, in milliseconds.
type game struct {
	user, opp int64
	plies     int
	flagged   bool
}

// Generate plays every game and returns the sampled script. The user moves first.
func (g *Generator) Generate(ctx context.Context) (*reader.Script, error) {
	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible, not secret
	b := &scriptBuilder{}

	for n := 0; n < g.games; n++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulate game %d: %w", n+1, err)
		}
		st := g.play(rng, b)
		g.logger.Debug(ctx, "game simulated",
			logger.Int("game", n+1),
			logger.Int("plies", st.plies),
			logger.Bool("flagged", st.flagged),
			logger.Duration("user_left", time.Duration(st.user)*time.Millisecond),
			logger.Duration("opp_left", time.Duration(st.opp)*time.Millisecond),
		)
	}

	s := &reader.Script{
		Name:           fmt.Sprintf("simulated %dx%d moves at %s, seed %d", g.games, g.moves, g.base, g.seed),
		PollIntervalMS: int(g.interval / time.Millisecond),
		Samples:        b.samples,
	}
	g.logger.Info(ctx, "script generated",
		logger.Int("games", g.games),
		logger.Int("samples", len(s.Samples)),
		logger.Int("ticks", s.Ticks()),
	)
	return s, nil
}

func (g *Generator) play(rng *rand.Rand, b *scriptBuilder) game {
	st := game{user: g.base.Milliseconds(), opp: g.base.Milliseconds()}

	b.hold(&st, leadInTicks)
	for i := 0; i < g.moves && !st.flagged; i++ {
		g.think(rng, b, &st, &st.user)
		if st.flagged {
			break
		}
		st.plies++
		g.think(rng, b, &st, &st.opp)
		if !st.flagged {
			st.plies++
		}
	}
	b.hold(&st, leadOutTicks)
	return st
}

// think runs one side's clock down for a move, emitting a sample per tick.
func (g *Generator) think(rng *rand.Rand, b *scriptBuilder, st *game, clock *int64) {
	step := g.interval.Milliseconds()
	ticks := g.thinkTicks(rng, float64(*clock)/1000, step)
	for t := 0; t < ticks; t++ {
		*clock -= step
		if *clock <= 0 {
			*clock = 0
			st.flagged = true
		}
		b.hold(st, 1)
		if st.flagged {
			return
		}
	}
}

func (g *Generator) thinkTicks(rng *rand.Rand, remaining float64, step int64) int {
	if rng.Float64() < g.premove {
		return 1
	}
	factor := g.thinkLow + rng.Float64()*(g.thinkHigh-g.thinkLow)
	seconds := g.budget.Budget(remaining) * factor
	return max(1, int(math.Round(seconds*1000/float64(step))))
}

// scriptBuilder appends samples, folding repeats into Hold.
type scriptBuilder struct {
	samples []reader.Sample
}

func (b *scriptBuilder) hold(st *game, ticks int) {
	user, opp := FormatClock(st.user), FormatClock(st.opp)
	if n := len(b.samples); n > 0 {
		last := &b.samples[n-1]
		if *last.User == user && *last.Opp == opp && last.Moves != nil && *last.Moves == st.plies {
			last.Hold = max(last.Hold, 1) + ticks
			return
		}
	}
	smp := reader.Sample{User: &user, Opp: &opp, Moves: reader.Count(st.plies)}
	if ticks > 1 {
		smp.Hold = ticks
	}
	b.samples = append(b.samples, smp)
}

// FormatClock renders milliseconds as "m:ss.ss" from a minute up, "s.ss" below.
func FormatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	cs := (ms + 5) / 10
	if cs >= 6000 {
		return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
	}
	return fmt.Sprintf("%d.%02d", cs/100, cs%100)
}
