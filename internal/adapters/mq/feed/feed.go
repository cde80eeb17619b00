// Package feed carries frames from the polling loop to the presentation layer.
//
// Publishing never blocks: when the consumer falls behind, the oldest waiting
// frame is discarded so the display always catches up to the newest state.
package feed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/pacer/internal/domain/model"
	"github.com/okian/pacer/pkg/metrics"
)

const defaultCapacity = 64

// Feed provides non-blocking publish and channel-based consumption of frames.
type Feed interface {
	// Publish hands a frame to the consumer. It returns ErrClosed after Close.
	Publish(ctx context.Context, f model.Frame) error

	// Frames returns the channel the consumer ranges over. It is closed by Close.
	Frames() <-chan model.Frame

	// Len returns the number of frames waiting.
	Len() int

	// Close stops the feed. Frames already published can still be drained.
	Close() error
}

// InMemoryFeed implements Feed using a buffered channel.
type InMemoryFeed struct {
	frames   chan model.Frame
	capacity int
	dropped  atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryFeed creates a feed with configuration options.
func NewInMemoryFeed(opts ...Option) *InMemoryFeed {
	f := &InMemoryFeed{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(f)
	}
	f.frames = make(chan model.Frame, f.capacity)
	metrics.UpdateFeedDepth(0)
	return f
}

// Publish adds a frame, evicting the oldest waiting frame when full.
func (f *InMemoryFeed) Publish(ctx context.Context, fr model.Frame) error { //nolint:gocritic // frames travel by value
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for {
		select {
		case f.frames <- fr:
			metrics.UpdateFeedDepth(len(f.frames))
			return nil
		default:
		}
		// Full: make room by discarding the oldest frame, then retry.
		select {
		case <-f.frames:
			f.dropped.Add(1)
			metrics.RecordFeedDrop()
		default:
		}
	}
}

// Frames returns the consumer channel.
func (f *InMemoryFeed) Frames() <-chan model.Frame {
	return f.frames
}

// Len returns the number of waiting frames.
func (f *InMemoryFeed) Len() int {
	return len(f.frames)
}

// Dropped returns how many frames were discarded because the consumer lagged.
func (f *InMemoryFeed) Dropped() int64 {
	return f.dropped.Load()
}

// Close closes the consumer channel. It is idempotent.
func (f *InMemoryFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	close(f.frames)
	f.closed = true
	return nil
}

// IsClosed reports whether Close has been called.
func (f *InMemoryFeed) IsClosed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}
