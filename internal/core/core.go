package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/robgonnella/backupcheck/internal/config"
	"github.com/robgonnella/backupcheck/internal/discovery"
	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/freshness"
	"github.com/robgonnella/backupcheck/internal/inventory"
	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/robgonnella/backupcheck/internal/metrics"
	"github.com/robgonnella/backupcheck/internal/server"
)

// ErrRunInProgress returned when a discovery run or directory scan is
// requested while the previous one is still going
var ErrRunInProgress = errors.New("a scan of this kind is already running")

// ConfigService interface for reading and updating the configuration
type ConfigService interface {
	Get() (*config.Config, error)
	Update(conf *config.Config) (*config.Config, error)
}

// Inventory interface for refreshing and reading the file inventory
type Inventory interface {
	Rescan(ctx context.Context, dirs []string) (*inventory.RescanReport, error)
	GetAllFiles(ctx context.Context) ([]*inventory.File, error)
}

// Core represents our core data structure
type Core struct {
	configService ConfigService
	discovery     discovery.Service
	registry      server.Registry
	inventory     Inventory
	metrics       *metrics.Metrics
	scheduler     *cron.Cron
	now           func() time.Time
	discoverMux   sync.Mutex
	inventoryMux  sync.Mutex
	mux           sync.Mutex
	log           logger.Logger
}

// New returns new core module
func New(
	configService ConfigService,
	discoveryService discovery.Service,
	registry server.Registry,
	inventory Inventory,
	m *metrics.Metrics,
) *Core {
	return &Core{
		configService: configService,
		discovery:     discoveryService,
		registry:      registry,
		inventory:     inventory,
		metrics:       m,
		now:           time.Now,
		log:           logger.New().Component("core"),
	}
}

// Metrics returns the collectors shared by every component
func (c *Core) Metrics() *metrics.Metrics {
	return c.metrics
}

// Conf returns the current configuration
func (c *Core) Conf() (*config.Config, error) {
	return c.configService.Get()
}

// UpdateConfig validates and stores a new configuration
func (c *Core) UpdateConfig(conf *config.Config) (*config.Config, error) {
	return c.configService.Update(conf)
}

// DiscoverServers sweeps every configured subnet and upserts what it finds.
// Only one discovery runs at a time.
func (c *Core) DiscoverServers(ctx context.Context) (*discovery.RunReport, error) {
	if !c.discoverMux.TryLock() {
		return nil, ErrRunInProgress
	}

	defer c.discoverMux.Unlock()

	conf, err := c.configService.Get()

	if err != nil {
		return nil, err
	}

	return c.discovery.Run(ctx, conf.SubnetsToScan)
}

// ScanDirectories rebuilds the file inventory from the configured
// directories. Only one directory scan runs at a time.
func (c *Core) ScanDirectories(ctx context.Context) (*inventory.RescanReport, error) {
	if !c.inventoryMux.TryLock() {
		return nil, ErrRunInProgress
	}

	defer c.inventoryMux.Unlock()

	conf, err := c.configService.Get()

	if err != nil {
		return nil, err
	}

	return c.inventory.Rescan(ctx, conf.DirectoriesToScan)
}

// ServerStatuses returns every server with its backup freshness verdict
func (c *Core) ServerStatuses(ctx context.Context) ([]*freshness.Status, error) {
	servers, err := c.registry.GetAllServers(ctx)

	if err != nil {
		return nil, err
	}

	statuses, err := c.classify(ctx, servers)

	if err != nil {
		return nil, err
	}

	c.recordFreshness(statuses)

	return statuses, nil
}

// ServerStatusesIn returns the freshness of servers whose ip falls within
// one of targets
func (c *Core) ServerStatusesIn(ctx context.Context, targets []string) ([]*freshness.Status, error) {
	servers, err := c.registry.GetAllServersInNetworkTargets(ctx, targets)

	if err != nil {
		return nil, err
	}

	return c.classify(ctx, servers)
}

// RemoveServer drops a server from the registry. Unknown hostnames are
// ignored.
func (c *Core) RemoveServer(ctx context.Context, hostname string) error {
	if err := c.registry.RemoveServer(ctx, hostname); err != nil {
		return exception.NewRegistryError("remove", hostname, err)
	}

	c.log.Info().Str("hostname", hostname).Msg("removed server")

	return nil
}

func (c *Core) classify(ctx context.Context, servers []*server.Server) ([]*freshness.Status, error) {
	conf, err := c.configService.Get()

	if err != nil {
		return nil, err
	}

	files, err := c.inventory.GetAllFiles(ctx)

	if err != nil {
		return nil, err
	}

	classifier := freshness.NewClassifier(conf.MaxAge())

	return classifier.Report(servers, files, c.now()), nil
}

// freshness gauges describe the whole registry, so only full reports
// update them
func (c *Core) recordFreshness(statuses []*freshness.Status) {
	counts := map[string]int{
		string(freshness.Fresh):  0,
		string(freshness.Stale):  0,
		string(freshness.Absent): 0,
	}

	for _, s := range statuses {
		counts[string(s.Verdict)]++
	}

	c.metrics.SetFreshness(counts)
}

// Files returns the current file inventory
func (c *Core) Files(ctx context.Context) ([]*inventory.File, error) {
	return c.inventory.GetAllFiles(ctx)
}
