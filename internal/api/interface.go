// Package api serves the registry, the file inventory and backup freshness
// over http and lets clients trigger scans and edit the configuration.
package api

import (
	"context"
	"time"

	"github.com/robgonnella/backupcheck/internal/config"
	"github.com/robgonnella/backupcheck/internal/discovery"
	"github.com/robgonnella/backupcheck/internal/freshness"
	"github.com/robgonnella/backupcheck/internal/inventory"
	"github.com/robgonnella/backupcheck/internal/server"
)

//go:generate mockgen -destination=../mock/api/mock_api.go -package=mock_api . App

// App interface for the application operations exposed over http
type App interface {
	DiscoverServers(ctx context.Context) (*discovery.RunReport, error)
	ScanDirectories(ctx context.Context) (*inventory.RescanReport, error)
	ServerStatuses(ctx context.Context) ([]*freshness.Status, error)
	RemoveServer(ctx context.Context, hostname string) error
	Files(ctx context.Context) ([]*inventory.File, error)
	Conf() (*config.Config, error)
	UpdateConfig(conf *config.Config) (*config.Config, error)
}

// ServerResponse represents a server and its backup status
type ServerResponse struct {
	ID           uint          `json:"id"`
	Hostname     string        `json:"hostname"`
	IPAddress    string        `json:"ip_address"`
	DetectedOS   string        `json:"detected_os"`
	OpenPorts    string        `json:"open_ports"`
	Ports        []server.Port `json:"ports"`
	LastScan     time.Time     `json:"last_scan"`
	IsReachable  bool          `json:"is_reachable"`
	ScanTime     time.Time     `json:"scan_time"`
	BackupStatus string        `json:"backup_status"`
	Verdict      string        `json:"verdict"`
	LatestBackup *string       `json:"latest_backup"`
}

// FileResponse represents a single file in the inventory
type FileResponse struct {
	ID           uint      `json:"id"`
	Filename     string    `json:"filename"`
	Filepath     string    `json:"filepath"`
	LastModified time.Time `json:"last_modified"`
	Size         int64     `json:"size"`
	ScanTime     time.Time `json:"scan_time"`
}

// ServersResponse lists servers
type ServersResponse struct {
	Status  string            `json:"status"`
	Count   int               `json:"count"`
	Servers []*ServerResponse `json:"servers"`
}

// FilesResponse lists files
type FilesResponse struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Files  []*FileResponse `json:"files"`
}

// ServerScanResponse summarizes a discovery run
type ServerScanResponse struct {
	Status        string            `json:"status"`
	Message       string            `json:"message"`
	RunID         string            `json:"run_id"`
	Servers       int               `json:"servers"`
	FailedSubnets map[string]string `json:"failed_subnets,omitempty"`
}

// DirectoryScanResponse summarizes a directory scan
type DirectoryScanResponse struct {
	Status      string         `json:"status"`
	Message     string         `json:"message"`
	Files       int            `json:"files"`
	Directories map[string]int `json:"directories"`
}

// MessageResponse generic success response
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
