package discovery

import (
	"context"
)

//go:generate mockgen -destination=../mock/discovery/mock_discovery.go -package=mock_discovery . Capability,Resolver,Prober,Sweeper,Service

// Capability is the external tool used to find and fingerprint hosts
type Capability interface {
	// CheckPrivilege returns a *exception.PrivilegeError when the tool cannot
	// run with the privileges of the current process
	CheckPrivilege() error
	// LivenessSweep returns the addresses in cidr that respond
	LivenessSweep(ctx context.Context, cidr string) ([]string, error)
	// ProbeOSAndPorts fingerprints a single host
	ProbeOSAndPorts(ctx context.Context, ip string) (*Fingerprint, error)
}

// Resolver interface for reverse dns lookups. *net.Resolver satisfies it.
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// Prober interface for gathering identifying details about one host
type Prober interface {
	Probe(ctx context.Context, ip string) *ProbeResult
}

// Sweeper interface for finding and probing every live host in a subnet
type Sweeper interface {
	Sweep(ctx context.Context, cidr string, onResult func(*ProbeResult) error) (*SweepReport, error)
}

// Service interface for running discovery across subnets
type Service interface {
	Run(ctx context.Context, subnets []string) (*RunReport, error)
}
