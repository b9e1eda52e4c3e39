package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/backupcheck/internal/config"
	"github.com/robgonnella/backupcheck/internal/core"
	"github.com/robgonnella/backupcheck/internal/discovery"
	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/freshness"
	"github.com/robgonnella/backupcheck/internal/inventory"
	"github.com/robgonnella/backupcheck/internal/metrics"
	mock_config "github.com/robgonnella/backupcheck/internal/mock/config"
	mock_discovery "github.com/robgonnella/backupcheck/internal/mock/discovery"
	mock_inventory "github.com/robgonnella/backupcheck/internal/mock/inventory"
	mock_server "github.com/robgonnella/backupcheck/internal/mock/server"
	"github.com/robgonnella/backupcheck/internal/server"
	"github.com/robgonnella/backupcheck/internal/test_util"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

type coreMocks struct {
	configRepo    *mock_config.MockRepo
	discovery     *mock_discovery.MockService
	registry      *mock_server.MockRegistry
	inventoryRepo *mock_inventory.MockRepo
}

func setupCore(ctrl *gomock.Controller, conf *config.Config, fs afero.Fs) (*core.Core, *coreMocks) {
	mocks := &coreMocks{
		configRepo:    mock_config.NewMockRepo(ctrl),
		discovery:     mock_discovery.NewMockService(ctrl),
		registry:      mock_server.NewMockRegistry(ctrl),
		inventoryRepo: mock_inventory.NewMockRepo(ctrl),
	}

	mocks.configRepo.EXPECT().Load().Return(conf, nil).AnyTimes()

	configService := config.NewConfigService(mocks.configRepo)

	inventoryService := inventory.NewService(mocks.inventoryRepo, inventory.NewWalker(fs))

	appCore := core.New(
		configService,
		mocks.discovery,
		mocks.registry,
		inventoryService,
		metrics.New(),
	)

	return appCore, mocks
}

func TestCore(t *testing.T) {
	ctx := context.Background()

	conf := config.Default()
	conf.SubnetsToScan = []string{"10.0.0.0/24", "10.0.1.0/24"}
	conf.DirectoriesToScan = []string{"/backups"}

	t.Run("discovers servers on configured subnets", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, mocks := setupCore(ctrl, conf, afero.NewMemMapFs())

		expected := &discovery.RunReport{ID: "run"}

		mocks.discovery.EXPECT().Run(ctx, conf.SubnetsToScan).Return(expected, nil)

		report, err := appCore.DiscoverServers(ctx)

		assert.NoError(st, err)
		assert.Equal(st, expected, report)
	})

	t.Run("rejects overlapping discovery runs", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, mocks := setupCore(ctrl, conf, afero.NewMemMapFs())

		started := make(chan struct{})
		release := make(chan struct{})

		mocks.discovery.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, []string) (*discovery.RunReport, error) {
				close(started)
				<-release
				return &discovery.RunReport{}, nil
			},
		)

		done := make(chan error)

		go func() {
			_, err := appCore.DiscoverServers(ctx)
			done <- err
		}()

		<-started

		_, err := appCore.DiscoverServers(ctx)

		assert.ErrorIs(st, err, core.ErrRunInProgress)

		close(release)

		assert.NoError(st, <-done)
	})

	t.Run("scans configured directories", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		fs := afero.NewMemMapFs()
		afero.WriteFile(fs, "/backups/web01.tar", []byte("x"), 0644)
		afero.WriteFile(fs, "/elsewhere/db01.tar", []byte("x"), 0644)

		appCore, mocks := setupCore(ctrl, conf, fs)

		mocks.inventoryRepo.EXPECT().ReplaceAll(ctx, gomock.Len(1)).Return(nil)

		report, err := appCore.ScanDirectories(ctx)

		assert.NoError(st, err)
		assert.Equal(st, 1, report.Total)
	})

	t.Run("classifies servers using configured max age", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		shortConf := *conf
		shortConf.Freshness.MaxAgeDays = 7

		appCore, mocks := setupCore(ctrl, &shortConf, afero.NewMemMapFs())

		servers := []*server.Server{
			{ID: 1, Hostname: "web01"},
			{ID: 2, Hostname: "db01", IP: test_util.StrPtr("10.0.0.7")},
			{ID: 3, Hostname: "mail01"},
		}

		files := []*inventory.File{
			{Filename: "web01.tar", LastModified: time.Now().Add(-24 * time.Hour)},
			{Filename: "10.0.0.7.sql", LastModified: time.Now().Add(-30 * 24 * time.Hour)},
		}

		mocks.registry.EXPECT().GetAllServers(ctx).Return(servers, nil)
		mocks.inventoryRepo.EXPECT().GetAllFiles(ctx).Return(files, nil)

		statuses, err := appCore.ServerStatuses(ctx)

		assert.NoError(st, err)
		assert.Len(st, statuses, 3)
		assert.Equal(st, freshness.Fresh, statuses[0].Verdict)
		assert.Equal(st, freshness.Stale, statuses[1].Verdict)
		assert.Equal(st, freshness.Absent, statuses[2].Verdict)
	})

	t.Run("returns registry errors from statuses", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, mocks := setupCore(ctrl, conf, afero.NewMemMapFs())

		mocks.registry.EXPECT().GetAllServers(ctx).Return(nil, errors.New("locked"))

		_, err := appCore.ServerStatuses(ctx)

		assert.Error(st, err)
	})

	t.Run("classifies servers within network targets", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, mocks := setupCore(ctrl, conf, afero.NewMemMapFs())

		targets := []string{"10.0.0.0/24"}

		servers := []*server.Server{
			{ID: 2, Hostname: "db01", IP: test_util.StrPtr("10.0.0.7")},
		}

		files := []*inventory.File{
			{Filename: "db01.sql", LastModified: time.Now()},
		}

		mocks.registry.EXPECT().GetAllServersInNetworkTargets(ctx, targets).Return(servers, nil)
		mocks.inventoryRepo.EXPECT().GetAllFiles(ctx).Return(files, nil)

		statuses, err := appCore.ServerStatusesIn(ctx, targets)

		assert.NoError(st, err)
		assert.Len(st, statuses, 1)
		assert.Equal(st, "db01", statuses[0].Server.Hostname)
		assert.Equal(st, freshness.Fresh, statuses[0].Verdict)
		assert.Equal(st, "db01.sql", statuses[0].Latest.Filename)
	})

	t.Run("removes servers", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, mocks := setupCore(ctrl, conf, afero.NewMemMapFs())

		mocks.registry.EXPECT().RemoveServer(ctx, "web01").Return(nil)

		err := appCore.RemoveServer(ctx, "web01")

		assert.NoError(st, err)
	})

	t.Run("wraps remove failures as registry errors", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, mocks := setupCore(ctrl, conf, afero.NewMemMapFs())

		mocks.registry.EXPECT().RemoveServer(ctx, "web01").Return(errors.New("locked"))

		err := appCore.RemoveServer(ctx, "web01")

		assert.True(st, exception.IsRegistryError(err))
	})

	t.Run("returns files", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, mocks := setupCore(ctrl, conf, afero.NewMemMapFs())

		files := []*inventory.File{{Filename: "web01.tar"}}

		mocks.inventoryRepo.EXPECT().GetAllFiles(ctx).Return(files, nil)

		found, err := appCore.Files(ctx)

		assert.NoError(st, err)
		assert.Equal(st, files, found)
	})

	t.Run("updates config", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, mocks := setupCore(ctrl, conf, afero.NewMemMapFs())

		mocks.configRepo.EXPECT().Save(gomock.Any()).Return(nil)

		updated, err := appCore.UpdateConfig(&config.Config{
			SubnetsToScan:     []string{"192.168.0.0/24"},
			DirectoriesToScan: []string{},
		})

		assert.NoError(st, err)
		assert.Equal(st, []string{"192.168.0.0/24"}, updated.SubnetsToScan)

		current, err := appCore.Conf()

		assert.NoError(st, err)
		assert.Equal(st, updated, current)
	})

	t.Run("schedule", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		defer ctrl.Finish()

		appCore, _ := setupCore(ctrl, conf, afero.NewMemMapFs())

		assert.Error(st, appCore.StartSchedule("not a schedule", ""))

		assert.NoError(st, appCore.StartSchedule("0 3 * * *", "30 2 * * *"))
		assert.Error(st, appCore.StartSchedule("0 3 * * *", ""))

		appCore.Stop()
		appCore.Stop()
	})
}
