package console

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run drives g until ctx is done or a frame fails. Every tick of trigger is
// one refresh interrupt. The interrupt context drains the previous frame and
// then hands the next one to the frame loop through a one-slot channel.
func (c *Console) Run(ctx context.Context, g Game, trigger <-chan time.Time) error {
	start := make(chan struct{}, 1)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-trigger:
				if !c.VBlank() {
					continue
				}
				c.busy.Store(true)
				select {
				case start <- struct{}{}:
				default:
				}
			}
		}
	})

	eg.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-start:
			}
			if err := c.Frame(g); err != nil {
				return c.Halt(err)
			}
		}
	})

	c.log.Debug("running")
	err := eg.Wait()
	c.log.Debug("stopped", "frames", c.frames.Load(), "overruns", c.overruns.Load())
	return err
}
