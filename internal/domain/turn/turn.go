// Package turn detects the start and end of the user's turns from a stream of
// clock samples and emits one completed move per turn.
package turn

import (
	"time"

	"github.com/okian/pacer/internal/domain/model"
)

// DefaultEpsilon absorbs sampling jitter and display rounding.
const DefaultEpsilon = 0.01

// State is the machine's coarse state.
type State int

// Machine states.
const (
	StateIdle State = iota
	StateUserTurnActive
)

func (s State) String() string {
	if s == StateUserTurnActive {
		return "USER_TURN_ACTIVE"
	}
	return "IDLE"
}

// Budgeter supplies the allowance for a move given remaining time at its start.
type Budgeter interface {
	Budget(remaining float64) float64
}

// Completed is a turn that just ended, before rating.
type Completed struct {
	Number        int       // 1-based move index
	StartSeconds  float64   // user's remaining time when the turn started
	EndSeconds    float64   // user's remaining time when the turn ended
	TimeSpent     float64   // StartSeconds - EndSeconds
	BudgetAtStart float64   // budget evaluated against StartSeconds
	At            time.Time // sample time of the ending tick
}

// Machine is the turn-detection state machine. It never blocks and is
// re-evaluated once per polling tick. Not safe for concurrent use.
type Machine struct {
	budgeter Budgeter
	epsilon  float64

	prevUser       *float64
	prevOpp        *float64
	turnStart      *float64
	userWasTicking bool
	oppWasTicking  bool
	moveCount      int
}

// Option applies a configuration option to the Machine.
type Option func(*Machine)

// WithEpsilon sets the minimum decrease that counts as a ticking clock.
func WithEpsilon(eps float64) Option {
	return func(m *Machine) {
		if eps >= 0 {
			m.epsilon = eps
		}
	}
}

// NewMachine creates a Machine that prices moves with b.
func NewMachine(b Budgeter, opts ...Option) *Machine {
	m := &Machine{
		budgeter: b,
		epsilon:  DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Advance feeds one sample. It reports a completed turn on the tick where the
// user's clock stops after having run.
func (m *Machine) Advance(s model.ClockSample) (Completed, bool) {
	userTicking := ticking(m.prevUser, s.UserSeconds, m.epsilon)
	oppTicking := ticking(m.prevOpp, s.OppSeconds, m.epsilon)

	var (
		done Completed
		ok   bool
	)

	// The current sample already reflects elapsed time, so the turn started
	// at the previous reading.
	if userTicking && !m.userWasTicking {
		start := *m.prevUser
		m.turnStart = &start
	}

	if !userTicking && m.userWasTicking && m.turnStart != nil {
		start := *m.turnStart
		m.moveCount++
		done = Completed{
			Number:        m.moveCount,
			StartSeconds:  start,
			EndSeconds:    s.UserSeconds,
			TimeSpent:     start - s.UserSeconds,
			BudgetAtStart: m.budgeter.Budget(start),
			At:            s.SampledAt,
		}
		ok = true
		m.turnStart = nil
	}

	user, opp := s.UserSeconds, s.OppSeconds
	m.prevUser = &user
	m.prevOpp = &opp
	m.userWasTicking = userTicking
	m.oppWasTicking = oppTicking

	return done, ok
}

func ticking(prev *float64, cur, eps float64) bool {
	return prev != nil && cur < *prev-eps
}

// State returns IDLE or USER_TURN_ACTIVE.
func (m *Machine) State() State {
	if m.turnStart != nil {
		return StateUserTurnActive
	}
	return StateIdle
}

// TurnStart returns the remaining time recorded at the start of the current turn.
func (m *Machine) TurnStart() (float64, bool) {
	if m.turnStart == nil {
		return 0, false
	}
	return *m.turnStart, true
}

// OpponentTicking reports whether the opponent's clock ran on the last sample.
func (m *Machine) OpponentTicking() bool {
	return m.oppWasTicking
}

// MoveCount returns the number of completed user moves.
func (m *Machine) MoveCount() int {
	return m.moveCount
}

// Reset returns the machine to its initial state.
func (m *Machine) Reset() {
	m.prevUser = nil
	m.prevOpp = nil
	m.turnStart = nil
	m.userWasTicking = false
	m.oppWasTicking = false
	m.moveCount = 0
}
