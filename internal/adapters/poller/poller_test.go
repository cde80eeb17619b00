package poller_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pacer/internal/adapters/mq/feed"
	"github.com/okian/pacer/internal/adapters/poller"
	"github.com/okian/pacer/internal/app"
	"github.com/okian/pacer/internal/domain/model"
)

var errFlaky = errors.New("screen grab failed")

// scriptedReader returns its readings in order, then io.EOF. A nil entry
// stands for a read failure.
type scriptedReader struct {
	mu       sync.Mutex
	readings []*app.Reading
}

func (r *scriptedReader) Read(context.Context) (app.Reading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.readings) == 0 {
		return app.Reading{}, io.EOF
	}
	next := r.readings[0]
	r.readings = r.readings[1:]
	if next == nil {
		return app.Reading{}, errFlaky
	}
	return *next, nil
}

func reading(user, opp string) *app.Reading {
	return &app.Reading{UserText: app.Text(user), OppText: app.Text(opp)}
}

func readingWithMoves(user, opp string, moves int) *app.Reading {
	r := reading(user, opp)
	r.MoveListSize = moves
	r.MoveListSeen = true
	return r
}

func receive(f *feed.InMemoryFeed) (model.Frame, bool) {
	select {
	case fr, ok := <-f.Frames():
		return fr, ok
	case <-time.After(2 * time.Second):
		return model.Frame{}, false
	}
}

func TestPoller_Tick(t *testing.T) {
	Convey("Given a poller over a scripted reader", t, func() {
		ctx := context.Background()
		clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
		reader := &scriptedReader{readings: []*app.Reading{reading("10", "20"), nil}}
		sink := feed.NewInMemoryFeed(feed.WithCapacity(8))
		p := poller.New(reader, app.New(app.WithClock(clock)), sink, poller.WithClock(clock))

		Convey("When ticking once", func() {
			err := p.Tick(ctx)
			fr, ok := receive(sink)

			Convey("Then one frame is published", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(fr.UserSeconds, ShouldEqual, 10)
				So(fr.Skipped, ShouldBeFalse)
				So(p.Ticks(), ShouldEqual, 1)
			})
		})

		Convey("When the reader fails", func() {
			So(p.Tick(ctx), ShouldBeNil)
			receive(sink)
			err := p.Tick(ctx)
			fr, ok := receive(sink)

			Convey("Then the tick is skipped rather than aborted", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(fr.Skipped, ShouldBeTrue)
				So(fr.At.Equal(clock.Now()), ShouldBeTrue)
			})
		})

		Convey("When the reader is exhausted", func() {
			_ = p.Tick(ctx)
			_ = p.Tick(ctx)
			err := p.Tick(ctx)

			Convey("Then io.EOF is reported", func() {
				So(errors.Is(err, io.EOF), ShouldBeTrue)
				So(p.Ticks(), ShouldEqual, 2)
			})
		})
	})
}

func TestPoller_ReadFailureMidGame(t *testing.T) {
	Convey("Given a game in progress with a move list", t, func() {
		ctx := context.Background()
		clock := clockwork.NewFakeClock()
		reader := &scriptedReader{readings: []*app.Reading{
			readingWithMoves("60", "60", 40),
			readingWithMoves("60", "60", 40),
			readingWithMoves("59.5", "60", 41),
			readingWithMoves("59.5", "60", 41),
			readingWithMoves("59.0", "60", 42),
			nil,
			readingWithMoves("59.0", "60", 42),
		}}
		sink := feed.NewInMemoryFeed(feed.WithCapacity(16))
		session := app.New(app.WithClock(clock))
		p := poller.New(reader, session, sink, poller.WithClock(clock))

		for i := 0; i < 5; i++ {
			So(p.Tick(ctx), ShouldBeNil)
			receive(sink)
		}
		before := session.Stats()
		So(before.Moves, ShouldEqual, 1)

		Convey("When one read fails and play resumes", func() {
			So(p.Tick(ctx), ShouldBeNil)
			failed, _ := receive(sink)
			So(p.Tick(ctx), ShouldBeNil)
			resumed, _ := receive(sink)
			after := session.Stats()

			Convey("Then the failed tick is skipped and the game carries on", func() {
				So(failed.Skipped, ShouldBeTrue)
				So(failed.SessionID, ShouldEqual, before.SessionID)
				So(after.SessionID, ShouldEqual, before.SessionID)
				So(after.Resets, ShouldEqual, 0)
				So(after.SkippedTicks, ShouldEqual, 1)
			})

			Convey("And the turn started before the failure completes after it", func() {
				So(resumed.Move, ShouldNotBeNil)
				So(resumed.Move.Number, ShouldEqual, 2)
				So(resumed.Move.TimeSpent, ShouldAlmostEqual, 0.5, 1e-9)
				So(after.Moves, ShouldEqual, 2)
			})
		})
	})
}

func TestPoller_Run(t *testing.T) {
	Convey("Given a running poller on a fake clock", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		clock := clockwork.NewFakeClock()
		reader := &scriptedReader{readings: []*app.Reading{
			reading("10.0", "20"),
			reading("10.0", "20"),
			reading("7.5", "20"),
			reading("7.5", "20"),
		}}
		sink := feed.NewInMemoryFeed(feed.WithCapacity(8))
		p := poller.New(reader, app.New(app.WithClock(clock)), sink,
			poller.WithClock(clock), poller.WithInterval(50*time.Millisecond))

		errCh := make(chan error, 1)
		go func() { errCh <- p.Run(ctx) }()
		So(clock.BlockUntilContext(ctx, 1), ShouldBeNil)

		Convey("When the clock advances one interval per tick", func() {
			var frames []model.Frame
			for i := 0; i < 4; i++ {
				clock.Advance(50 * time.Millisecond)
				fr, ok := receive(sink)
				So(ok, ShouldBeTrue)
				frames = append(frames, fr)
			}
			clock.Advance(50 * time.Millisecond)

			Convey("Then each interval yields one frame and the move completes", func() {
				So(frames[3].Move, ShouldNotBeNil)
				So(frames[3].Move.TimeSpent, ShouldAlmostEqual, 2.5, 1e-9)
				for i, fr := range frames {
					So(fr.Tick, ShouldEqual, int64(i+1))
				}
			})

			Convey("And the run ends cleanly at end of input", func() {
				So(<-errCh, ShouldBeNil)
				So(p.Ticks(), ShouldEqual, 4)
			})
		})

		Convey("When shut down", func() {
			err := p.Shutdown(ctx)

			Convey("Then Run returns without error", func() {
				So(err, ShouldBeNil)
				So(<-errCh, ShouldBeNil)
			})

			Convey("And a second shutdown is harmless", func() {
				So(func() { err = p.Shutdown(ctx) }, ShouldNotPanic)
				So(err, ShouldBeNil)
			})
		})

		Convey("When the consumer closes the feed", func() {
			_ = sink.Close()
			clock.Advance(50 * time.Millisecond)

			Convey("Then Run stops", func() {
				So(<-errCh, ShouldBeNil)
			})
		})
	})
}
