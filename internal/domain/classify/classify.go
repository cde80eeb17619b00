// Package classify maps clock deltas and remaining times to qualitative buckets.
package classify

import (
	"math"

	"github.com/okian/pacer/internal/domain/model"
)

// Default position thresholds, in seconds of delta.
const (
	defaultDominating = 5.0
	defaultAhead      = 2.0
	defaultEven       = 1.0
	defaultBehind     = -2.5
)

// Default urgency thresholds, in seconds of the user's remaining time.
const (
	defaultRelaxed  = 25.0
	defaultAlert    = 15.0
	defaultHigh     = 8.0
	defaultCritical = 4.0
	defaultPremove  = 2.0
)

// PositionThresholds are compared with >= in order Dominating, Ahead, Even band, Behind.
type PositionThresholds struct {
	Dominating float64
	Ahead      float64
	Even       float64 // half-width of the band around zero
	Behind     float64 // negative
}

// UrgencyThresholds are compared with strict > in descending order.
type UrgencyThresholds struct {
	Relaxed  float64
	Alert    float64
	High     float64
	Critical float64
	// Premove is informational: anything at or below Critical is PREMOVE.
	Premove float64
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithPositionThresholds replaces the position thresholds.
func WithPositionThresholds(t PositionThresholds) Option {
	return func(c *Classifier) {
		c.position = t
	}
}

// WithUrgencyThresholds replaces the urgency thresholds.
func WithUrgencyThresholds(t UrgencyThresholds) Option {
	return func(c *Classifier) {
		c.urgency = t
	}
}

// Classifier holds the configured threshold tables. It is immutable after New.
type Classifier struct {
	position PositionThresholds
	urgency  UrgencyThresholds
}

// New creates a Classifier with the bullet defaults.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		position: DefaultPositionThresholds(),
		urgency:  DefaultUrgencyThresholds(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultPositionThresholds returns the tuned bullet thresholds.
func DefaultPositionThresholds() PositionThresholds {
	return PositionThresholds{
		Dominating: defaultDominating,
		Ahead:      defaultAhead,
		Even:       defaultEven,
		Behind:     defaultBehind,
	}
}

// DefaultUrgencyThresholds returns the tuned bullet thresholds.
func DefaultUrgencyThresholds() UrgencyThresholds {
	return UrgencyThresholds{
		Relaxed:  defaultRelaxed,
		Alert:    defaultAlert,
		High:     defaultHigh,
		Critical: defaultCritical,
		Premove:  defaultPremove,
	}
}

// Position classifies a signed delta. Boundaries resolve to the higher bucket.
// A NaN delta reads as LOSING.
func (c *Classifier) Position(delta float64) model.Position {
	p := c.position
	switch {
	case math.IsNaN(delta):
		return model.PositionLosing
	case delta >= p.Dominating:
		return model.PositionDominating
	case delta >= p.Ahead:
		return model.PositionAhead
	case delta >= -p.Even && delta <= p.Even:
		return model.PositionEven
	case delta >= p.Behind:
		return model.PositionBehind
	default:
		return model.PositionLosing
	}
}

// Urgency classifies the user's remaining seconds. Comparisons are strict, so
// exactly 25s with the defaults is ALERT, not RELAXED. NaN reads as PREMOVE.
func (c *Classifier) Urgency(seconds float64) model.Urgency {
	u := c.urgency
	switch {
	case seconds > u.Relaxed:
		return model.UrgencyRelaxed
	case seconds > u.Alert:
		return model.UrgencyAlert
	case seconds > u.High:
		return model.UrgencyHigh
	case seconds > u.Critical:
		return model.UrgencyCritical
	default:
		return model.UrgencyPremove
	}
}

// RelaxedThreshold exposes the top urgency threshold, used to scale urgency bars.
func (c *Classifier) RelaxedThreshold() float64 {
	return c.urgency.Relaxed
}
