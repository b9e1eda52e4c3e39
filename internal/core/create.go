package core

import (
	"net"

	"github.com/robgonnella/backupcheck/internal/config"
	"github.com/robgonnella/backupcheck/internal/database"
	"github.com/robgonnella/backupcheck/internal/discovery"
	"github.com/robgonnella/backupcheck/internal/inventory"
	"github.com/robgonnella/backupcheck/internal/metrics"
	"github.com/robgonnella/backupcheck/internal/server"
	"github.com/robgonnella/backupcheck/internal/worker"
	"github.com/spf13/afero"
)

// CreateNewAppCore creates and returns a new instance of *core.Core backed
// by the json config at configFile and the sqlite database at dbFile
func CreateNewAppCore(configFile, dbFile string) (*Core, error) {
	configRepo := config.NewJSONRepo(configFile)
	configService := config.NewConfigService(configRepo)

	conf, err := configService.Get()

	if err != nil {
		return nil, err
	}

	db, err := database.OpenAndMigrate(dbFile)

	if err != nil {
		return nil, err
	}

	m := metrics.New()

	serverService := server.NewService(server.NewSqliteRepo(db))

	inventoryService := inventory.NewService(
		inventory.NewSqliteRepo(db),
		inventory.NewWalker(afero.NewOsFs()),
	)

	capability := discovery.NewNmapCapability()

	var resolver discovery.Resolver = net.DefaultResolver

	if conf.DNS.Server != "" {
		resolver = discovery.NewDNSResolver(conf.DNS.Server, conf.DNSTimeout())
	}

	prober := discovery.NewHostProber(
		capability,
		discovery.WithResolver(resolver),
		discovery.WithProbeTimeout(conf.ProbeTimeout()),
		discovery.WithLookupTimeout(conf.DNSTimeout()),
	)

	sweeper := discovery.NewSubnetSweeper(
		capability,
		prober,
		worker.NewPool(conf.Discovery.Workers),
		m,
	)

	scannerService := discovery.NewScannerService(
		capability,
		sweeper,
		serverService,
		m,
	)

	return New(
		configService,
		scannerService,
		serverService,
		inventoryService,
		m,
	), nil
}
