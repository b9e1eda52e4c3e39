package discovery

import (
	"context"
	"net"
	"time"

	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/logger"
	"github.com/robgonnella/backupcheck/internal/server"
)

// DefaultProbeTimeout how long a single host probe may run
const DefaultProbeTimeout = 2 * time.Minute

// HostProber is an implementation of the Prober interface
type HostProber struct {
	capability Capability
	resolver   Resolver
	timeout    time.Duration
	lookup     time.Duration
	now        func() time.Time
	log        logger.Logger
}

// ProberOption configures a HostProber
type ProberOption func(p *HostProber)

// WithResolver sets the resolver used for reverse lookups
func WithResolver(resolver Resolver) ProberOption {
	return func(p *HostProber) {
		p.resolver = resolver
	}
}

// WithProbeTimeout sets the per probe timeout
func WithProbeTimeout(timeout time.Duration) ProberOption {
	return func(p *HostProber) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithLookupTimeout sets how long the reverse lookup may run once the host
// has been fingerprinted
func WithLookupTimeout(timeout time.Duration) ProberOption {
	return func(p *HostProber) {
		if timeout > 0 {
			p.lookup = timeout
		}
	}
}

// WithClock sets the clock used to stamp probe results
func WithClock(now func() time.Time) ProberOption {
	return func(p *HostProber) {
		p.now = now
	}
}

// NewHostProber returns a new instance of HostProber. Reverse lookups use
// net.DefaultResolver unless WithResolver is given.
func NewHostProber(capability Capability, opts ...ProberOption) *HostProber {
	p := &HostProber{
		capability: capability,
		resolver:   net.DefaultResolver,
		timeout:    DefaultProbeTimeout,
		lookup:     defaultDNSTimeout,
		now:        time.Now,
		log:        logger.New().Component("prober"),
	}

	for _, o := range opts {
		o(p)
	}

	return p
}

// Probe fingerprints ip and resolves its hostname. It never returns nil;
// failures are reported through the result's Err field.
func (p *HostProber) Probe(ctx context.Context, ip string) *ProbeResult {
	result := &ProbeResult{
		IP:        ip,
		Hostname:  ip,
		Ports:     []server.Port{},
		ScannedAt: p.now(),
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	fp, err := p.capability.ProbeOSAndPorts(probeCtx, ip)

	if err == nil && fp == nil {
		err = exception.ErrHostUnreachable
	}

	if err != nil {
		p.log.Debug().Err(err).Str("ip", ip).Msg("probe failed")
		result.Err = exception.NewProbeError(ip, err)
		return result
	}

	// lookup deadline is independent of the fingerprint deadline
	lookupCtx, cancelLookup := context.WithTimeout(ctx, p.lookup)
	defer cancelLookup()

	result.Hostname = resolveHostname(lookupCtx, p.resolver, ip)
	result.Reachable = true
	result.OS = fp.OS

	if result.OS == "" {
		result.OS = server.UnknownOS
	}

	if fp.Ports != nil {
		result.Ports = fp.Ports
	}

	p.log.Debug().
		Str("ip", ip).
		Str("hostname", result.Hostname).
		Str("os", result.OS).
		Int("ports", len(result.Ports)).
		Msg("probed host")

	return result
}
