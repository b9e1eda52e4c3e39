package discovery

import (
	"context"

	"github.com/projectdiscovery/mapcidr"
	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/robgonnella/backupcheck/internal/metrics"
	"github.com/robgonnella/backupcheck/internal/worker"
)

// SubnetSweeper is an implementation of the Sweeper interface. Its worker
// pool lives as long as the sweeper and bounds concurrent probes across
// every sweep.
type SubnetSweeper struct {
	capability Capability
	prober     Prober
	pool       *worker.Pool
	metrics    *metrics.Metrics
	log        logger.Logger
}

// NewSubnetSweeper returns a new instance of SubnetSweeper
func NewSubnetSweeper(
	capability Capability,
	prober Prober,
	pool *worker.Pool,
	m *metrics.Metrics,
) *SubnetSweeper {
	if pool == nil {
		pool = worker.NewPool(worker.DefaultSize)
	}

	return &SubnetSweeper{
		capability: capability,
		prober:     prober,
		pool:       pool,
		metrics:    m,
		log:        logger.New().Component("sweeper"),
	}
}

// Pool returns the sweeper's worker pool
func (s *SubnetSweeper) Pool() *worker.Pool {
	return s.pool
}

// Sweep finds the live hosts in cidr then probes them concurrently.
// Successful results are handed to onResult on the calling goroutine as they
// complete. Failed probes are recorded in the report and never stop the
// sweep. If onResult returns an error, probes not yet started are skipped,
// running probes are drained and the error is returned with the partial
// report.
func (s *SubnetSweeper) Sweep(
	ctx context.Context,
	cidr string,
	onResult func(*ProbeResult) error,
) (*SweepReport, error) {
	report := &SweepReport{
		Subnet: cidr,
		Live:   []string{},
		Probed: []*ProbeResult{},
		Failed: []*ProbeResult{},
	}

	log := s.log.With("subnet", cidr)

	if count, err := mapcidr.AddressCount(cidr); err == nil {
		log.Info().Uint64("addresses", count).Msg("starting liveness sweep")
	}

	live, err := s.capability.LivenessSweep(ctx, cidr)

	if err != nil {
		s.metrics.SweepFinished(false, 0)
		return report, exception.NewSubnetError(cidr, err)
	}

	report.Live = live

	log.Info().Int("live", len(live)).Msg("liveness sweep complete")

	if len(live) == 0 {
		s.metrics.SweepFinished(true, 0)
		return report, nil
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered so workers never block on a consumer that has stopped reading
	results := make(chan *ProbeResult, len(live))
	submitted := make(chan int, 1)

	go func() {
		n := 0

		for _, ip := range live {
			target := ip

			err := s.pool.Go(sweepCtx, func() {
				s.metrics.ProbeStarted()
				r := s.prober.Probe(sweepCtx, target)
				s.metrics.ProbeFinished(!r.Failed())
				results <- r
			})

			if err != nil {
				break
			}

			n++
		}

		submitted <- n
	}()

	var callbackErr error

	expected := -1
	received := 0

	for expected < 0 || received < expected {
		select {
		case n := <-submitted:
			expected = n
		case r := <-results:
			received++

			if callbackErr != nil {
				// draining after a callback failure
				continue
			}

			if r.Failed() {
				log.Warn().Err(r.Err).Str("ip", r.IP).Msg("probe failed")
				report.Failed = append(report.Failed, r)
				continue
			}

			if onResult != nil {
				if err := onResult(r); err != nil {
					callbackErr = err
					cancel()
					continue
				}
			}

			report.Probed = append(report.Probed, r)
		}
	}

	if callbackErr != nil {
		s.metrics.SweepFinished(false, len(live))
		return report, callbackErr
	}

	if err := ctx.Err(); err != nil {
		s.metrics.SweepFinished(false, len(live))
		return report, err
	}

	s.metrics.SweepFinished(true, len(live))

	log.Info().
		Int("probed", len(report.Probed)).
		Int("failed", len(report.Failed)).
		Msg("sweep complete")

	return report, nil
}
