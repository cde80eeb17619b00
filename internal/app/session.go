// Package app hosts the pacing session: the single owner of per-game state
// that turns one clock reading per tick into one presentation frame.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/okian/pacer/internal/domain/boundary"
	"github.com/okian/pacer/internal/domain/budget"
	"github.com/okian/pacer/internal/domain/classify"
	"github.com/okian/pacer/internal/domain/clocktext"
	"github.com/okian/pacer/internal/domain/model"
	"github.com/okian/pacer/internal/domain/momentum"
	"github.com/okian/pacer/internal/domain/rating"
	"github.com/okian/pacer/internal/domain/turn"
	"github.com/okian/pacer/internal/domain/types"
	"github.com/okian/pacer/pkg/logger"
	"github.com/okian/pacer/pkg/metrics"
)

// DefaultFeedbackDuration is how long a completed move stays in frames.
const DefaultFeedbackDuration = 2500 * time.Millisecond

// Skip reasons reported in metrics and logs.
const (
	skipMissing    = "missing_clock"
	skipUnparsable = "unparsable_clock"
)

// Reading is what a clock reader observes in one tick. A nil text means the
// clock was not visible at all. MoveListSize is only consulted when
// MoveListSeen is set.
type Reading struct {
	UserText     *string
	OppText      *string
	MoveListSize int
	MoveListSeen bool
	At           time.Time
}

// Text returns a pointer to s, for building readings.
func Text(s string) *string { return &s }

// Session is the explicit session context. Every method is safe for
// concurrent use, though ticks are expected from a single poller.
type Session struct {
	mu sync.Mutex

	classifier       *classify.Classifier
	budget           *budget.Calculator
	rater            *rating.Rater
	momentum         *momentum.Tracker
	boundary         boundary.Detector
	epsilon          float64
	feedbackDuration time.Duration
	clock            clockwork.Clock
	logger           logger.Logger

	turn *turn.Machine

	id         string
	startedAt  time.Time
	ticks      int64
	skipped    int64
	resets     int
	wasSkipped bool
	lastMove   *model.MoveRecord
	lastMoveAt time.Time
	ratings    map[model.Rating]int
	last       model.Frame
}

// New constructs a Session with default thresholds.
func New(opts ...Option) *Session {
	s := &Session{
		classifier:       classify.New(),
		budget:           budget.NewCalculator(),
		rater:            rating.NewRater(),
		momentum:         momentum.NewTracker(),
		boundary:         boundary.NewContractionDetector(),
		epsilon:          turn.DefaultEpsilon,
		feedbackDuration: DefaultFeedbackDuration,
		clock:            clockwork.NewRealClock(),
		logger:           logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.turn = turn.NewMachine(s.budget, turn.WithEpsilon(s.epsilon))
	s.logger = s.logger.Named("session")
	s.clearLocked()

	return s
}

// ID returns the current session identifier. It changes on every reset.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Advance runs one tick and returns the frame for the presentation layer.
// It never panics; an unexpected failure yields a LOSING/PREMOVE frame.
func (s *Session) Advance(ctx context.Context, r Reading) (f model.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.clock.Now()
	at := r.At
	if at.IsZero() {
		at = start
	}
	s.ticks++

	defer func() {
		if rec := recover(); rec != nil {
			metrics.RecordRecoveredPanic()
			s.logger.Error(ctx, "tick failed; degrading frame",
				logger.Int64("tick", s.ticks),
				logger.String("panic", fmt.Sprint(rec)),
			)
			f = s.degradedFrame(at)
		}
		s.last = f
		metrics.RecordTick(float64(s.clock.Since(start)) / float64(time.Millisecond))
	}()

	if r.MoveListSeen && s.boundary.Observe(r.MoveListSize) {
		s.resetLocked(ctx, "new_game")
	}

	userSec, userOK := parse(r.UserText)
	oppSec, oppOK := parse(r.OppText)

	f = model.Frame{
		SessionID:   s.id,
		Tick:        s.ticks,
		At:          at,
		UserText:    deref(r.UserText),
		OppText:     deref(r.OppText),
		UserSeconds: userSec,
		OppSeconds:  oppSec,
		Delta:       userSec - oppSec,
	}
	f.Position = s.classifier.Position(f.Delta)
	f.Urgency = s.classifier.Urgency(userSec)
	f.Budget = s.budget.Budget(userSec)

	if !userOK || !oppOK {
		s.skip(ctx, r, &f)
	} else {
		s.wasSkipped = false
		sample := model.ClockSample{UserSeconds: userSec, OppSeconds: oppSec, SampledAt: at}
		if done, ok := s.turn.Advance(sample); ok {
			f.Move = s.record(ctx, done)
		}
	}

	f.Momentum = s.momentum.Current()
	f.LastMove = s.freshLastMove(at)

	metrics.UpdateState(int(f.Position), int(f.Urgency), momentumGauge(f.Momentum), f.Budget, f.UserSeconds, f.Delta)

	return f
}

// skip marks a tick that carries no usable clock data. Classifiers still see
// the sentinel but no turn transition is inferred.
func (s *Session) skip(ctx context.Context, r Reading, f *model.Frame) {
	f.Skipped = true
	s.skipped++

	reason := skipUnparsable
	if r.UserText == nil || r.OppText == nil {
		reason = skipMissing
	}
	metrics.RecordSkippedTick(reason)

	// Only the first tick of a gap is worth a warning; a hidden clock can
	// last for thousands of ticks.
	if !s.wasSkipped {
		s.logger.Warn(ctx, "no usable clock data",
			logger.String("reason", reason),
			logger.String("user", f.UserText),
			logger.String("opp", f.OppText),
		)
	}
	s.wasSkipped = true
}

// record rates a completed turn and feeds it to the momentum window.
func (s *Session) record(ctx context.Context, done turn.Completed) *model.MoveRecord {
	res := s.rater.Rate(done.TimeSpent, done.BudgetAtStart)
	rec := model.MoveRecord{
		Number:    done.Number,
		TimeSpent: res.TimeSpent,
		Budget:    res.Budget,
		Ratio:     res.Ratio,
		Rating:    res.Rating,
		Timestamp: done.At,
	}

	s.momentum.Record(rec)
	s.ratings[rec.Rating]++
	s.lastMove = &rec
	s.lastMoveAt = done.At

	metrics.RecordMove(rec.Rating.String(), rec.Ratio, rec.TimeSpent)
	s.logger.Debug(ctx, "move rated",
		logger.Int("move", rec.Number),
		logger.Float64("spent", rec.TimeSpent),
		logger.Float64("budget", rec.Budget),
		logger.Float64("ratio", rec.Ratio),
		logger.Stringer("rating", rec.Rating),
		logger.Bool("good", res.IsGood()),
	)

	out := rec
	return &out
}

// freshLastMove returns a copy of the last move while its feedback is still
// within the display window.
func (s *Session) freshLastMove(now time.Time) *model.MoveRecord {
	if s.lastMove == nil || now.Sub(s.lastMoveAt) > s.feedbackDuration {
		return nil
	}
	out := *s.lastMove
	return &out
}

func (s *Session) degradedFrame(at time.Time) model.Frame {
	return model.Frame{
		SessionID:   s.id,
		Tick:        s.ticks,
		At:          at,
		Skipped:     true,
		UserSeconds: 0,
		OppSeconds:  clocktext.Sentinel,
		Delta:       -clocktext.Sentinel,
		Position:    model.PositionLosing,
		Urgency:     model.UrgencyPremove,
		Budget:      s.budget.ScrambleBudget(),
		Momentum:    model.MomentumNeutral,
	}
}

// Reset starts a fresh session: new id, empty history, idle turn machine.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(ctx, "requested")
}

func (s *Session) resetLocked(ctx context.Context, reason string) {
	prev := s.id
	s.clearLocked()
	s.resets++
	metrics.RecordSessionReset()
	s.logger.Info(ctx, "session reset",
		logger.String("reason", reason),
		logger.String("previous_session", prev),
		logger.String("session_id", s.id),
	)
}

func (s *Session) clearLocked() {
	s.id = uuid.NewString()
	s.startedAt = s.clock.Now()
	s.turn.Reset()
	s.momentum.Reset()
	s.lastMove = nil
	s.lastMoveAt = time.Time{}
	s.wasSkipped = false
	s.ratings = make(map[model.Rating]int)
}

// Stats returns a snapshot of the session for the operator endpoint and logs.
func (s *Session) Stats() types.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	ratings := make(map[string]int, len(s.ratings))
	moves := 0
	for r, n := range s.ratings {
		ratings[r.String()] = n
		moves += n
	}

	st := types.SessionStats{
		SessionID:    s.id,
		StartedAt:    s.startedAt,
		Ticks:        s.ticks,
		SkippedTicks: s.skipped,
		Resets:       s.resets,
		Moves:        moves,
		TurnState:    s.turn.State().String(),
		Position:     s.last.Position,
		Urgency:      s.last.Urgency,
		Momentum:     s.momentum.Current(),
		MeanRatio:    s.momentum.MeanRatio(),
		Budget:       s.last.Budget,
		Ratings:      ratings,
	}
	if s.lastMove != nil {
		lm := *s.lastMove
		st.LastMove = &lm
	}
	return st
}

// RelaxedThreshold exposes the urgency ceiling for the presentation bar.
func (s *Session) RelaxedThreshold() float64 {
	return s.classifier.RelaxedThreshold()
}

func parse(text *string) (float64, bool) {
	if text == nil {
		return clocktext.Sentinel, false
	}
	return clocktext.Parse(*text)
}

func deref(text *string) string {
	if text == nil {
		return ""
	}
	return *text
}

func momentumGauge(m model.Momentum) float64 {
	switch m {
	case model.MomentumGaining:
		return 1
	case model.MomentumLosing:
		return -1
	default:
		return 0
	}
}
