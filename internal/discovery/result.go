package discovery

import (
	"time"

	"github.com/robgonnella/backupcheck/internal/server"
)

// Fingerprint is what the capability learned about a single host
type Fingerprint struct {
	OS    string
	Ports []server.Port
}

// ProbeResult represents the outcome of probing one host. Err is set, and
// Reachable false, when the probe failed.
type ProbeResult struct {
	IP        string
	Hostname  string
	OS        string
	Ports     []server.Port
	Reachable bool
	ScannedAt time.Time
	Err       error
}

// Failed returns whether the probe failed
func (r *ProbeResult) Failed() bool {
	return r.Err != nil
}

// ToServer converts a successful probe into a registry record
func (r *ProbeResult) ToServer() *server.Server {
	srv := &server.Server{
		Hostname:  r.Hostname,
		Ports:     r.Ports,
		Reachable: r.Reachable,
		LastScan:  r.ScannedAt,
	}

	if r.IP != "" {
		ip := r.IP
		srv.IP = &ip
	}

	if r.OS != "" {
		detected := r.OS
		srv.OS = &detected
	}

	return srv
}

// SweepReport represents the outcome of sweeping one subnet
type SweepReport struct {
	Subnet string
	Live   []string
	Probed []*ProbeResult
	Failed []*ProbeResult
}

// RunReport represents the outcome of a discovery run across subnets
type RunReport struct {
	ID            string
	Servers       []*server.Server
	FailedSubnets map[string]error
	Subnets       []*SweepReport
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Empty returns whether the run wrote no servers
func (r *RunReport) Empty() bool {
	return len(r.Servers) == 0
}

// Duration returns how long the run took
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
