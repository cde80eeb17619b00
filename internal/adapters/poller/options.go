package poller

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/pacer/pkg/logger"
)

// Option applies a configuration option to the Poller.
type Option func(*Poller)

// WithInterval sets the sampling period.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithClock sets the clock driving the ticker. Tests pass a fake clock.
func WithClock(c clockwork.Clock) Option {
	return func(p *Poller) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithLogger sets a custom logger for the poller.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}
