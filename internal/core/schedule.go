package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
)

// StartSchedule runs discovery and directory scans on the given standard
// cron specs. An empty spec disables that job. A tick that arrives while the
// previous run of the same job is still going is skipped.
func (c *Core) StartSchedule(discoverSpec, inventorySpec string) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.scheduler != nil {
		return errors.New("schedule already started")
	}

	scheduler := cron.New()

	if discoverSpec != "" {
		_, err := scheduler.AddFunc(discoverSpec, func() {
			c.runScheduled("discover", func(ctx context.Context) error {
				report, err := c.DiscoverServers(ctx)

				if err == nil {
					c.log.Info().
						Str("run", report.ID).
						Int("servers", len(report.Servers)).
						Msg("scheduled discovery complete")
				}

				return err
			})
		})

		if err != nil {
			return fmt.Errorf("invalid discover schedule %q: %w", discoverSpec, err)
		}
	}

	if inventorySpec != "" {
		_, err := scheduler.AddFunc(inventorySpec, func() {
			c.runScheduled("inventory", func(ctx context.Context) error {
				report, err := c.ScanDirectories(ctx)

				if err == nil {
					c.log.Info().
						Int("files", report.Total).
						Msg("scheduled directory scan complete")
				}

				return err
			})
		})

		if err != nil {
			return fmt.Errorf("invalid inventory schedule %q: %w", inventorySpec, err)
		}
	}

	scheduler.Start()

	c.scheduler = scheduler

	c.log.Info().
		Str("discover", discoverSpec).
		Str("inventory", inventorySpec).
		Msg("schedule started")

	return nil
}

// Stop stops the schedule and waits for running jobs to finish
func (c *Core) Stop() {
	c.mux.Lock()
	scheduler := c.scheduler
	c.scheduler = nil
	c.mux.Unlock()

	if scheduler == nil {
		return
	}

	<-scheduler.Stop().Done()

	c.log.Info().Msg("schedule stopped")
}

func (c *Core) runScheduled(job string, run func(ctx context.Context) error) {
	err := run(context.Background())

	if errors.Is(err, ErrRunInProgress) {
		c.log.Warn().Str("job", job).Msg("previous run still going, skipping")
		return
	}

	if err != nil {
		c.log.Error().Err(err).Str("job", job).Msg("scheduled run failed")
	}
}
