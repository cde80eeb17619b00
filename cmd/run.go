package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/pacer/internal/adapters/http/api"
	"github.com/okian/pacer/internal/adapters/mq/feed"
	"github.com/okian/pacer/internal/adapters/poller"
	"github.com/okian/pacer/internal/adapters/present"
	"github.com/okian/pacer/internal/app"
	"github.com/okian/pacer/pkg/logger"
)

// run drives one clock source through session, feed and display until the
// source ends or ctx is cancelled, then prints the session summary.
func (c *cli) run(ctx context.Context, out io.Writer, rd poller.ClockReader, interval time.Duration) error {
	session := app.New(append(app.OptionsFromConfig(c.cfg), app.WithLogger(c.log))...)
	frames := feed.NewInMemoryFeed(feed.WithCapacity(c.cfg.FeedSize))
	p := poller.New(rd, session, frames, poller.WithInterval(interval), poller.WithLogger(c.log))
	hud := present.NewHUD(out,
		present.WithColor(c.useColor()),
		present.WithLive(c.live),
		present.WithBoardTint(c.tint),
		present.WithRelaxedThreshold(session.RelaxedThreshold()),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if addr := c.cfg.MetricsAddr; addr != "" {
		srv := api.NewServer(session, api.WithLogger(c.log))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Serve(runCtx, addr); err != nil {
				c.log.Error(runCtx, "operator endpoint stopped", logger.Error(err))
			}
		}()
	}

	hudErr := make(chan error, 1)
	go func() { hudErr <- hud.Run(runCtx, frames.Frames()) }()

	runErr := p.Run(runCtx)
	_ = frames.Close()
	dispErr := <-hudErr
	cancel()
	wg.Wait()

	if err := errors.Join(runErr, dispErr); err != nil {
		return err
	}

	st := session.Stats()
	c.log.Info(ctx, "session finished",
		logger.String("session_id", st.SessionID),
		logger.Int("moves", st.Moves),
		logger.Int64("ticks", st.Ticks),
		logger.Int64("dropped_frames", frames.Dropped()),
	)
	if err := present.SummaryTable(out, st, c.useColor()); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}
