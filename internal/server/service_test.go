package server_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/backupcheck/internal/exception"
	mock_server "github.com/robgonnella/backupcheck/internal/mock/server"
	"github.com/robgonnella/backupcheck/internal/server"
	"github.com/robgonnella/backupcheck/internal/test_util"
	"github.com/stretchr/testify/assert"
)

func TestServerService(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockRepo := mock_server.NewMockRepo(ctrl)

	service := server.NewService(mockRepo)

	ctx := context.Background()

	testServer := &server.Server{
		ID:        1,
		Hostname:  "hostname",
		IP:        test_util.StrPtr("192.168.1.10"),
		OS:        test_util.StrPtr("os"),
		Reachable: true,
	}

	t.Run("gets all servers", func(st *testing.T) {
		expectedServers := []*server.Server{testServer}

		mockRepo.EXPECT().GetAllServers(ctx).Return(expectedServers, nil)

		foundServers, err := service.GetAllServers(ctx)

		assert.NoError(st, err)
		assert.Equal(st, expectedServers, foundServers)
	})

	t.Run("wraps read errors in registry error", func(st *testing.T) {
		mockRepo.EXPECT().GetAllServers(ctx).Return(nil, errors.New("boom"))

		_, err := service.GetAllServers(ctx)

		assert.Error(st, err)
		assert.True(st, exception.IsRegistryError(err))
	})

	t.Run("gets all servers in network targets", func(st *testing.T) {
		targets := []string{"192.168.1.10", "172.16.1.1/24"}

		testServer1 := *testServer
		testServer2 := *testServer
		testServer3 := *testServer
		testServer4 := *testServer

		testServer2.IP = test_util.StrPtr("172.16.1.20")
		testServer3.IP = test_util.StrPtr("10.1.1.1")
		testServer4.IP = nil

		mockRepo.EXPECT().GetAllServers(ctx).Return(
			[]*server.Server{&testServer1, &testServer2, &testServer3, &testServer4},
			nil,
		)

		found, err := service.GetAllServersInNetworkTargets(ctx, targets)

		assert.NoError(st, err)
		assert.Equal(st, []*server.Server{&testServer1, &testServer2}, found)
	})

	t.Run("upsert stamps scan time and returns saved server", func(st *testing.T) {
		before := time.Now()

		mockRepo.EXPECT().UpsertServer(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s *server.Server) (*server.Server, error) {
				saved := *s
				saved.ID = 1
				return &saved, nil
			},
		)

		req := *testServer
		req.ID = 0

		saved, err := service.Upsert(ctx, &req)

		assert.NoError(st, err)
		assert.Equal(st, uint(1), saved.ID)
		assert.False(st, saved.ScanTime.Before(before))
		// request is not modified
		assert.True(st, req.ScanTime.IsZero())
	})

	t.Run("upsert rejects empty hostname", func(st *testing.T) {
		_, err := service.Upsert(ctx, &server.Server{})

		assert.Error(st, err)
		assert.True(st, exception.IsRegistryError(err))
	})

	t.Run("upsert wraps repo errors in registry error", func(st *testing.T) {
		repoErr := errors.New("database is locked")

		mockRepo.EXPECT().UpsertServer(ctx, gomock.Any()).Return(nil, repoErr)

		_, err := service.Upsert(ctx, testServer)

		assert.Error(st, err)

		var regErr *exception.RegistryError

		assert.ErrorAs(st, err, &regErr)
		assert.Equal(st, "hostname", regErr.Hostname)
		assert.ErrorIs(st, err, repoErr)
	})

	t.Run("upserts for one hostname never overlap", func(st *testing.T) {
		var mux sync.Mutex
		active := 0
		maxActive := 0

		mockRepo.EXPECT().UpsertServer(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s *server.Server) (*server.Server, error) {
				mux.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mux.Unlock()

				time.Sleep(2 * time.Millisecond)

				mux.Lock()
				active--
				mux.Unlock()

				return s, nil
			},
		).Times(10)

		wg := sync.WaitGroup{}

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				service.Upsert(ctx, testServer)
			}()
		}

		wg.Wait()

		assert.Equal(st, 1, maxActive)
		assert.Equal(st, 0, service.LockCount())
	})

	t.Run("upserts for different hostnames run concurrently", func(st *testing.T) {
		started := make(chan string, 2)
		release := make(chan struct{})

		mockRepo.EXPECT().UpsertServer(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s *server.Server) (*server.Server, error) {
				started <- s.Hostname
				<-release
				return s, nil
			},
		).Times(2)

		wg := sync.WaitGroup{}

		for _, hostname := range []string{"alpha", "bravo"} {
			req := *testServer
			req.Hostname = hostname

			wg.Add(1)
			go func() {
				defer wg.Done()
				service.Upsert(ctx, &req)
			}()
		}

		inFlight := []string{}
		timeout := time.After(time.Second)

	wait:
		for len(inFlight) < 2 {
			select {
			case hostname := <-started:
				inFlight = append(inFlight, hostname)
			case <-timeout:
				break wait
			}
		}

		close(release)
		wg.Wait()

		assert.ElementsMatch(st, []string{"alpha", "bravo"}, inFlight)
		assert.Equal(st, 0, service.LockCount())
	})

	t.Run("gets server by hostname", func(st *testing.T) {
		mockRepo.EXPECT().GetServerByHostname(ctx, "hostname").Return(testServer, nil)

		found, err := service.GetServer(ctx, "hostname")

		assert.NoError(st, err)
		assert.Equal(st, testServer, found)
	})

	t.Run("get server passes through not found", func(st *testing.T) {
		mockRepo.EXPECT().GetServerByHostname(ctx, "nope").Return(nil, exception.ErrRecordNotFound)

		_, err := service.GetServer(ctx, "nope")

		assert.ErrorIs(st, err, exception.ErrRecordNotFound)
		assert.False(st, exception.IsRegistryError(err))
	})

	t.Run("get server wraps read errors in registry error", func(st *testing.T) {
		mockRepo.EXPECT().GetServerByHostname(ctx, "hostname").Return(nil, errors.New("boom"))

		_, err := service.GetServer(ctx, "hostname")

		assert.True(st, exception.IsRegistryError(err))
	})

	t.Run("removes server by hostname", func(st *testing.T) {
		mockRepo.EXPECT().GetServerByHostname(ctx, "hostname").Return(testServer, nil)
		mockRepo.EXPECT().RemoveServer(ctx, uint(1)).Return(nil)

		err := service.RemoveServer(ctx, "hostname")

		assert.NoError(st, err)
	})

	t.Run("remove ignores unknown hostname", func(st *testing.T) {
		mockRepo.EXPECT().GetServerByHostname(ctx, "nope").Return(nil, exception.ErrRecordNotFound)

		err := service.RemoveServer(ctx, "nope")

		assert.NoError(st, err)
	})

	t.Run("remove reports lookup failures", func(st *testing.T) {
		mockRepo.EXPECT().GetServerByHostname(ctx, "hostname").Return(nil, errors.New("boom"))

		err := service.RemoveServer(ctx, "hostname")

		assert.True(st, exception.IsRegistryError(err))
	})
}
