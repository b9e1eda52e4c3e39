package discovery

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/robgonnella/backupcheck/internal/metrics"
	"github.com/robgonnella/backupcheck/internal/server"
)

// ScannerService implements our discovery Service. Subnets are swept one
// after another and every successful probe is upserted into the registry as
// soon as it arrives.
type ScannerService struct {
	capability Capability
	sweeper    Sweeper
	registry   server.Registry
	metrics    *metrics.Metrics
	now        func() time.Time
	log        logger.Logger
}

// NewScannerService returns a new instance of ScannerService
func NewScannerService(
	capability Capability,
	sweeper Sweeper,
	registry server.Registry,
	m *metrics.Metrics,
) *ScannerService {
	return &ScannerService{
		capability: capability,
		sweeper:    sweeper,
		registry:   registry,
		metrics:    m,
		now:        time.Now,
		log:        logger.New().Component("discovery"),
	}
}

// Run sweeps each subnet in order and upserts every host found. An empty
// subnet list is a *exception.ConfigurationError and a privilege problem is
// a *exception.PrivilegeError; neither attempts any sweep. A failed subnet
// is recorded in the report and the run moves on. A registry failure ends
// the run and is returned with everything written so far.
func (s *ScannerService) Run(ctx context.Context, subnets []string) (*RunReport, error) {
	report := &RunReport{
		ID:            uuid.New().String(),
		Servers:       []*server.Server{},
		FailedSubnets: map[string]error{},
		Subnets:       []*SweepReport{},
		StartedAt:     s.now(),
	}

	defer func() {
		report.FinishedAt = s.now()
		s.metrics.RunFinished(report.Duration())
	}()

	log := s.log.With("run", report.ID)

	if len(subnets) == 0 {
		return report, exception.NewConfigurationError(
			"subnets_to_scan",
			"at least one subnet is required",
			exception.ErrNoSubnets,
		)
	}

	if err := s.capability.CheckPrivilege(); err != nil {
		log.Error().Err(err).Msg("discovery cannot run")
		return report, err
	}

	log.Info().Strs("subnets", subnets).Msg("starting discovery run")

	for _, subnet := range subnets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		sweep, err := s.sweeper.Sweep(ctx, subnet, func(r *ProbeResult) error {
			saved, err := s.registry.Upsert(ctx, r.ToServer())

			s.metrics.Upserted(err == nil)

			if err != nil {
				if !exception.IsRegistryError(err) {
					err = exception.NewRegistryError("upsert", r.Hostname, err)
				}

				return err
			}

			report.Servers = append(report.Servers, saved)

			return nil
		})

		if sweep != nil {
			report.Subnets = append(report.Subnets, sweep)
		}

		if err == nil {
			continue
		}

		switch {
		case exception.IsRegistryError(err):
			log.Error().Err(err).Str("subnet", subnet).Msg("registry failure, ending run")
			return report, err
		case exception.IsPrivilegeError(err), errors.Is(err, exception.ErrCapabilityUnavailable):
			log.Error().Err(err).Str("subnet", subnet).Msg("discovery cannot run")
			return report, err
		case ctx.Err() != nil:
			return report, ctx.Err()
		default:
			log.Warn().Err(err).Str("subnet", subnet).Msg("subnet sweep failed, continuing")
			report.FailedSubnets[subnet] = err
		}
	}

	log.Info().
		Int("servers", len(report.Servers)).
		Int("failedSubnets", len(report.FailedSubnets)).
		Msg("discovery run complete")

	return report, nil
}
