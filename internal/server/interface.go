package server

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -destination=../mock/server/mock_server.go -package=mock_server . Repo,Registry

// UnknownOS os value used when the probe could not fingerprint a host
const UnknownOS = "Unknown"

// Port represents a single open port found on a server
type Port struct {
	ID       uint16 `json:"port"`
	Protocol string `json:"protocol"`
	Service  string `json:"service"`
}

// String returns the display form of a port, e.g. "22/tcp (ssh)"
func (p Port) String() string {
	service := p.Service

	if service == "" {
		service = "unknown"
	}

	return fmt.Sprintf("%d/%s (%s)", p.ID, p.Protocol, service)
}

// FormatPorts joins ports into their display string. An empty slice
// produces an empty string.
func FormatPorts(ports []Port) string {
	parts := make([]string, 0, len(ports))

	for _, p := range ports {
		parts = append(parts, p.String())
	}

	return strings.Join(parts, ", ")
}

// Server represents a discovered host in the registry. Hostname is the
// natural key; ID is assigned by the registry and never changes.
type Server struct {
	ID        uint
	Hostname  string
	IP        *string
	OS        *string
	Ports     []Port
	Reachable bool
	LastScan  time.Time
	ScanTime  time.Time
}

// IPAddress returns the server's ip or an empty string when absent
func (s *Server) IPAddress() string {
	if s.IP == nil {
		return ""
	}

	return *s.IP
}

// DetectedOS returns the server's os or an empty string when absent
func (s *Server) DetectedOS() string {
	if s.OS == nil {
		return ""
	}

	return *s.OS
}

// OpenPorts returns the display string for the server's open ports
func (s *Server) OpenPorts() string {
	return FormatPorts(s.Ports)
}

// Repo interface representing access to stored servers
type Repo interface {
	GetAllServers(ctx context.Context) ([]*Server, error)
	GetServerByHostname(ctx context.Context, hostname string) (*Server, error)
	UpsertServer(ctx context.Context, server *Server) (*Server, error)
	RemoveServer(ctx context.Context, id uint) error
}

// Registry interface for reading and upserting servers keyed by hostname
type Registry interface {
	GetAllServers(ctx context.Context) ([]*Server, error)
	GetAllServersInNetworkTargets(ctx context.Context, targets []string) ([]*Server, error)
	GetServer(ctx context.Context, hostname string) (*Server, error)
	Upsert(ctx context.Context, server *Server) (*Server, error)
	RemoveServer(ctx context.Context, hostname string) error
}
