// Package poller drives a session at a fixed sampling rate.
package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/pacer/internal/adapters/mq/feed"
	"github.com/okian/pacer/internal/app"
	"github.com/okian/pacer/internal/domain/model"
	"github.com/okian/pacer/pkg/logger"
	"github.com/okian/pacer/pkg/metrics"
)

// DefaultInterval matches the update rate of the on-board display.
const DefaultInterval = 50 * time.Millisecond

// ClockReader yields one reading per call. io.EOF ends the run.
type ClockReader interface {
	Read(ctx context.Context) (app.Reading, error)
}

// Advancer turns a reading into a frame.
type Advancer interface {
	Advance(ctx context.Context, r app.Reading) model.Frame
}

// Sink receives every frame.
type Sink interface {
	Publish(ctx context.Context, f model.Frame) error
}

// Poller samples a ClockReader on a ticker and forwards frames to a Sink.
// Ticks run sequentially and never overlap.
type Poller struct {
	reader   ClockReader
	session  Advancer
	sink     Sink
	clock    clockwork.Clock
	interval time.Duration
	logger   logger.Logger

	ticks atomic.Int64

	// Shutdown control
	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
}

// New creates a Poller with configuration options.
func New(reader ClockReader, session Advancer, sink Sink, opts ...Option) *Poller {
	p := &Poller{
		reader:   reader,
		session:  session,
		sink:     sink,
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		logger:   logger.Nop(),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("poller")

	return p
}

// Run ticks until the input ends or the poller is stopped; both return nil.
// Only an unexpected publish failure is returned as an error.
func (p *Poller) Run(ctx context.Context) error {
	defer close(p.done)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info(ctx, "polling started", logger.Duration("interval", p.interval))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info(ctx, "polling stopped", logger.Int64("ticks", p.ticks.Load()))
			return nil
		case <-p.shutdown:
			p.logger.Info(ctx, "polling shut down", logger.Int64("ticks", p.ticks.Load()))
			return nil
		case <-ticker.Chan():
			err := p.Tick(ctx)
			switch {
			case err == nil:
			case errors.Is(err, io.EOF):
				p.logger.Info(ctx, "clock input exhausted", logger.Int64("ticks", p.ticks.Load()))
				return nil
			case errors.Is(err, feed.ErrClosed):
				p.logger.Info(ctx, "frame consumer closed", logger.Int64("ticks", p.ticks.Load()))
				return nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return nil
			default:
				return err
			}
		}
	}
}

// Tick performs exactly one read, advance, publish cycle. Reader failures
// other than io.EOF become a skipped tick rather than an error; such a tick
// carries no move list, so it can never look like a new game.
func (p *Poller) Tick(ctx context.Context) error {
	r, err := p.reader.Read(ctx)
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	if err != nil {
		metrics.RecordReaderError()
		p.logger.Warn(ctx, "clock read failed; skipping tick", logger.Error(err))
		r = app.Reading{At: p.clock.Now()}
	}

	p.ticks.Add(1)
	f := p.session.Advance(ctx, r)

	if err := p.sink.Publish(ctx, f); err != nil {
		return fmt.Errorf("publish frame %d: %w", f.Tick, err)
	}
	return nil
}

// Ticks returns the number of completed ticks.
func (p *Poller) Ticks() int64 {
	return p.ticks.Load()
}

// Shutdown stops Run and waits for it to return. It may be called more than once.
func (p *Poller) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
