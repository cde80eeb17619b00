// Package momentum tracks a bounded window of recent move ratios and derives a trend.
package momentum

import "github.com/okian/pacer/internal/domain/model"

// Default momentum configuration constants.
const (
	defaultWindow           = 5
	defaultGainingThreshold = 0.5
	defaultLosingThreshold  = 1.4
	minRecordsForSignal     = 2
)

// Tracker keeps the most recent moves in insertion order and evicts the
// oldest once the window is full. It is not safe for concurrent use; the
// owning session serializes access.
type Tracker struct {
	window  int
	gaining float64
	losing  float64
	records []model.MoveRecord
}

// NewTracker creates a Tracker with configuration options.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		window:  defaultWindow,
		gaining: defaultGainingThreshold,
		losing:  defaultLosingThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.records = make([]model.MoveRecord, 0, t.window)
	return t
}

// Record appends a move, evicting the oldest when the window overflows.
func (t *Tracker) Record(m model.MoveRecord) {
	if len(t.records) == t.window {
		copy(t.records, t.records[1:])
		t.records = t.records[:len(t.records)-1]
	}
	t.records = append(t.records, m)
}

// Current returns the trend over the window. Fewer than two moves carry no signal.
func (t *Tracker) Current() model.Momentum {
	if len(t.records) < minRecordsForSignal {
		return model.MomentumNeutral
	}
	avg := t.MeanRatio()
	switch {
	case avg < t.gaining:
		return model.MomentumGaining
	case avg > t.losing:
		return model.MomentumLosing
	default:
		return model.MomentumNeutral
	}
}

// MeanRatio is the arithmetic mean of the window's ratios, 0 when empty.
func (t *Tracker) MeanRatio() float64 {
	if len(t.records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range t.records {
		sum += r.Ratio
	}
	return sum / float64(len(t.records))
}

// Len returns the number of moves in the window.
func (t *Tracker) Len() int {
	return len(t.records)
}

// Window returns the configured capacity.
func (t *Tracker) Window() int {
	return t.window
}

// Records returns a copy of the window, oldest first.
func (t *Tracker) Records() []model.MoveRecord {
	out := make([]model.MoveRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Reset empties the window.
func (t *Tracker) Reset() {
	t.records = t.records[:0]
}
