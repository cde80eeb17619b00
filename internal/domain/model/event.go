// Package model contains domain models passed between layers.
package model

import "time"

// ClockSample is one polling tick worth of clock readings, already parsed to seconds.
type ClockSample struct {
	UserSeconds float64   // user's remaining time
	OppSeconds  float64   // opponent's remaining time
	SampledAt   time.Time // when the reading was taken
}

// Delta is the signed time lead of the user; positive means the user has more time.
func (s ClockSample) Delta() float64 {
	return s.UserSeconds - s.OppSeconds
}

// MoveRecord describes one completed user move. It is immutable once created.
type MoveRecord struct {
	Number    int       // 1-based move index within the session
	TimeSpent float64   // seconds the user's clock ran during the move
	Budget    float64   // allowance computed at the start of the move
	Ratio     float64   // TimeSpent / Budget
	Rating    Rating    // classification of Ratio
	Timestamp time.Time // when the move completion was observed
}

// Frame is everything the presentation layer receives for a single tick.
type Frame struct {
	SessionID string
	Tick      int64
	At        time.Time

	// Skipped is set when the tick carried no usable clock data. Only the
	// sentinel-derived classification fields are meaningful in that case.
	Skipped bool

	UserText    string
	OppText     string
	UserSeconds float64
	OppSeconds  float64
	Delta       float64
	Position    Position
	Urgency     Urgency
	Budget      float64
	Momentum    Momentum

	// Move is non-nil only on the tick a move completed.
	Move *MoveRecord
	// LastMove is the most recent move while its feedback is still fresh.
	LastMove *MoveRecord
}
