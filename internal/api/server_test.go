package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/backupcheck/internal/api"
	"github.com/robgonnella/backupcheck/internal/config"
	"github.com/robgonnella/backupcheck/internal/core"
	"github.com/robgonnella/backupcheck/internal/discovery"
	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/freshness"
	"github.com/robgonnella/backupcheck/internal/inventory"
	"github.com/robgonnella/backupcheck/internal/metrics"
	mock_api "github.com/robgonnella/backupcheck/internal/mock/api"
	"github.com/robgonnella/backupcheck/internal/server"
	"github.com/robgonnella/backupcheck/internal/test_util"
	"github.com/stretchr/testify/assert"
)

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request

	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestAPIServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockApp := mock_api.NewMockApp(ctrl)

	handler := api.New(mockApp, metrics.New(), "").Handler()

	now := time.Now()

	statuses := []*freshness.Status{
		{
			Server: &server.Server{
				ID:        1,
				Hostname:  "alpha",
				IP:        test_util.StrPtr("10.0.0.5"),
				OS:        test_util.StrPtr("Linux 5.X"),
				Ports:     []server.Port{{ID: 22, Protocol: "tcp", Service: "ssh"}},
				Reachable: true,
				LastScan:  now,
				ScanTime:  now,
			},
			Verdict: freshness.Fresh,
			Latest: &inventory.File{
				Filename: "alpha-2024.tar",
				Filepath: "/backups/alpha-2024.tar",
			},
		},
		{
			Server: &server.Server{
				ID:       2,
				Hostname: "bravo",
				IP:       test_util.StrPtr("10.0.0.6"),
			},
			Verdict: freshness.Absent,
		},
	}

	t.Run("reports health", func(st *testing.T) {
		rec := do(handler, "GET", "/api/health", "")

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &api.HealthResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))
		assert.Equal(st, "healthy", res.Status)
	})

	t.Run("lists servers with backup status", func(st *testing.T) {
		mockApp.EXPECT().ServerStatuses(gomock.Any()).Return(statuses, nil)

		rec := do(handler, "GET", "/api/servers", "")

		assert.Equal(st, http.StatusOK, rec.Code)
		assert.Equal(st, "application/json", rec.Header().Get("Content-Type"))

		res := &api.ServersResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))

		assert.Equal(st, "success", res.Status)
		assert.Equal(st, 2, res.Count)

		alpha := res.Servers[0]
		assert.Equal(st, "alpha", alpha.Hostname)
		assert.Equal(st, "10.0.0.5", alpha.IPAddress)
		assert.Equal(st, "Linux 5.X", alpha.DetectedOS)
		assert.Equal(st, "22/tcp (ssh)", alpha.OpenPorts)
		assert.True(st, alpha.IsReachable)
		assert.Equal(st, "green", alpha.BackupStatus)
		assert.Equal(st, "fresh", alpha.Verdict)
		assert.Equal(st, "/backups/alpha-2024.tar", *alpha.LatestBackup)

		bravo := res.Servers[1]
		assert.Equal(st, "red", bravo.BackupStatus)
		assert.Equal(st, "absent", bravo.Verdict)
		assert.Nil(st, bravo.LatestBackup)
		assert.Equal(st, "", bravo.DetectedOS)
	})

	t.Run("sorts servers descending", func(st *testing.T) {
		mockApp.EXPECT().ServerStatuses(gomock.Any()).Return(statuses, nil)

		rec := do(handler, "GET", "/api/servers?sort=hostname&order=desc", "")

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &api.ServersResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))

		assert.Equal(st, "bravo", res.Servers[0].Hostname)
		assert.Equal(st, "alpha", res.Servers[1].Hostname)
	})

	t.Run("rejects unknown sort field", func(st *testing.T) {
		mockApp.EXPECT().ServerStatuses(gomock.Any()).Return(statuses, nil)

		rec := do(handler, "GET", "/api/servers?sort=password", "")

		assert.Equal(st, http.StatusBadRequest, rec.Code)

		res := &api.ErrorResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))
		assert.Equal(st, "error", res.Status)
		assert.Equal(st, "bad_request", res.Error)
	})

	t.Run("removes a server", func(st *testing.T) {
		mockApp.EXPECT().RemoveServer(gomock.Any(), "alpha").Return(nil)

		rec := do(handler, "DELETE", "/api/servers/alpha", "")

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &api.MessageResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))
		assert.Equal(st, "Server alpha removed", res.Message)
	})

	t.Run("lists files sorted by size", func(st *testing.T) {
		files := []*inventory.File{
			{ID: 1, Filename: "big.tar", Filepath: "/b/big.tar", Size: 300},
			{ID: 2, Filename: "small.tar", Filepath: "/b/small.tar", Size: 10},
			{ID: 3, Filename: "mid.tar", Filepath: "/b/mid.tar", Size: 100},
		}

		mockApp.EXPECT().Files(gomock.Any()).Return(files, nil)

		rec := do(handler, "GET", "/api/files?sort=size", "")

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &api.FilesResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))

		assert.Equal(st, 3, res.Count)
		assert.Equal(st, "small.tar", res.Files[0].Filename)
		assert.Equal(st, "mid.tar", res.Files[1].Filename)
		assert.Equal(st, "big.tar", res.Files[2].Filename)
	})

	t.Run("runs discovery", func(st *testing.T) {
		report := &discovery.RunReport{
			ID: "run-1",
			Servers: []*server.Server{
				{Hostname: "alpha"},
				{Hostname: "bravo"},
			},
			FailedSubnets: map[string]error{
				"10.1.0.0/24": errors.New("sweep failed"),
			},
		}

		mockApp.EXPECT().DiscoverServers(gomock.Any()).Return(report, nil)

		rec := do(handler, "POST", "/api/scan/servers", "")

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &api.ServerScanResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))

		assert.Equal(st, "run-1", res.RunID)
		assert.Equal(st, 2, res.Servers)
		assert.Contains(st, res.Message, "Found 2 servers")
		assert.Equal(st, "sweep failed", res.FailedSubnets["10.1.0.0/24"])
	})

	t.Run("empty discovery is not an error", func(st *testing.T) {
		mockApp.EXPECT().DiscoverServers(gomock.Any()).Return(&discovery.RunReport{ID: "run-2"}, nil)

		rec := do(handler, "POST", "/api/scan/servers", "")

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &api.ServerScanResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))

		assert.Equal(st, "success", res.Status)
		assert.Equal(st, "No servers found during scan", res.Message)
	})

	t.Run("maps errors to status codes", func(st *testing.T) {
		tests := []struct {
			name string
			err  error
			code int
		}{
			{
				name: "configuration",
				err:  exception.NewConfigurationError("subnets_to_scan", "no subnets configured", exception.ErrNoSubnets),
				code: http.StatusBadRequest,
			},
			{
				name: "privilege",
				err:  exception.NewPrivilegeError("root required", nil),
				code: http.StatusForbidden,
			},
			{
				name: "in progress",
				err:  core.ErrRunInProgress,
				code: http.StatusConflict,
			},
			{
				name: "registry",
				err:  exception.NewRegistryError("upsert", "alpha", errors.New("database is locked")),
				code: http.StatusServiceUnavailable,
			},
			{
				name: "unknown",
				err:  errors.New("boom"),
				code: http.StatusInternalServerError,
			},
		}

		for _, tt := range tests {
			mockApp.EXPECT().DiscoverServers(gomock.Any()).Return(nil, tt.err)

			rec := do(handler, "POST", "/api/scan/servers", "")

			assert.Equal(st, tt.code, rec.Code, tt.name)

			res := &api.ErrorResponse{}
			assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))
			assert.Equal(st, tt.err.Error(), res.Message, tt.name)
		}
	})

	t.Run("scans directories", func(st *testing.T) {
		mockApp.EXPECT().ScanDirectories(gomock.Any()).Return(&inventory.RescanReport{
			Directories: map[string]int{"/backups": 4, "/archive": 1},
			Total:       5,
		}, nil)

		rec := do(handler, "POST", "/api/scan/directories", "")

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &api.DirectoryScanResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))

		assert.Equal(st, 5, res.Files)
		assert.Equal(st, 4, res.Directories["/backups"])
		assert.Contains(st, res.Message, "Found 5 files")
	})

	t.Run("rejects wrong method", func(st *testing.T) {
		rec := do(handler, "GET", "/api/scan/servers", "")

		assert.Equal(st, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("returns config", func(st *testing.T) {
		conf := config.Default()
		conf.SubnetsToScan = []string{"10.0.0.0/24"}
		conf.DirectoriesToScan = []string{"/backups"}

		mockApp.EXPECT().Conf().Return(conf, nil)

		rec := do(handler, "GET", "/api/config", "")

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &config.Config{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))
		assert.Equal(st, conf, res)
	})

	t.Run("updates config", func(st *testing.T) {
		body := `{"subnets_to_scan":["10.0.0.0/24", ""],"directories_to_scan":["/backups"]}`

		mockApp.EXPECT().UpdateConfig(gomock.Any()).DoAndReturn(func(conf *config.Config) (*config.Config, error) {
			assert.Equal(st, []string{"10.0.0.0/24", ""}, conf.SubnetsToScan)
			assert.Equal(st, []string{"/backups"}, conf.DirectoriesToScan)
			return conf, nil
		})

		rec := do(handler, "PUT", "/api/config", body)

		assert.Equal(st, http.StatusOK, rec.Code)

		res := &api.MessageResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))
		assert.Equal(st, "Configuration updated successfully", res.Message)
	})

	t.Run("rejects malformed config", func(st *testing.T) {
		rec := do(handler, "PUT", "/api/config", `{"subnets_to_scan": "nope"`)

		assert.Equal(st, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects invalid config", func(st *testing.T) {
		mockApp.EXPECT().UpdateConfig(gomock.Any()).Return(
			nil,
			exception.NewConfigurationError("subnets_to_scan[0]", "must be a valid cidr", nil),
		)

		rec := do(handler, "PUT", "/api/config", `{"subnets_to_scan":["nope"],"directories_to_scan":[]}`)

		assert.Equal(st, http.StatusBadRequest, rec.Code)

		res := &api.ErrorResponse{}
		assert.NoError(st, json.Unmarshal(rec.Body.Bytes(), res))
		assert.Equal(st, "invalid_configuration", res.Error)
	})

	t.Run("serves metrics", func(st *testing.T) {
		rec := do(handler, "GET", "/metrics", "")

		assert.Equal(st, http.StatusOK, rec.Code)
		assert.Contains(st, rec.Body.String(), "go_goroutines")
	})

	t.Run("answers cors preflight", func(st *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/config", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "PUT")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(st, http.StatusOK, rec.Code)
		assert.Equal(st, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
